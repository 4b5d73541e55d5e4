// Package extract pulls canonical subject and grade values out of
// free-text interview answers. Matching is a single generic pass over
// ordered (pattern, canonical) rules: first match wins, and a miss yields
// the empty string rather than an error — misclassification here is
// cosmetic, and generation must never block on it.
package extract

import (
	"fmt"
	"sort"
	"strings"
)

// Rule maps a keyword pattern to its canonical value.
type Rule struct {
	Pattern   string
	Canonical string
}

// firstMatch returns the canonical value of the first rule whose pattern
// occurs in text, case-insensitively.
func firstMatch(text string, rules []Rule) (string, bool) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if strings.Contains(lower, strings.ToLower(r.Pattern)) {
			return r.Canonical, true
		}
	}
	return "", false
}

// answerKeys returns the positional answer keys present in collected, in
// interview order (question_1_answer, question_2_answer, ...).
func answerKeys(collected map[string]string) []string {
	var keys []string
	seen := make(map[string]bool)
	for i := 1; i <= len(collected); i++ {
		k := fmt.Sprintf("question_%d_answer", i)
		if _, ok := collected[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	// Stragglers outside the contiguous numbering follow lexicographically,
	// so a gap never drops an answer from the scan.
	var rest []string
	for k := range collected {
		if seen[k] {
			continue
		}
		if strings.HasPrefix(k, "question_") && strings.HasSuffix(k, "_answer") {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// Subject returns the canonical subject for the collected answers.
// A direct "subject" field wins; otherwise the first answer is checked
// first, since it is conventionally the subject-naming turn, then the
// remaining answers in order. Returns "" when nothing matches.
func Subject(collected map[string]string) string {
	if s := collected["subject"]; s != "" {
		return s
	}

	for _, key := range answerKeys(collected) {
		answer := collected[key]
		if answer == "" {
			continue
		}
		if s, ok := firstMatch(answer, subjectRules); ok {
			return s
		}
	}
	return ""
}

// Grade returns the canonical grade for the collected answers, scanning
// the same way as Subject. Returns "" when nothing matches.
func Grade(collected map[string]string) string {
	if g := collected["grade"]; g != "" {
		return g
	}

	for _, key := range answerKeys(collected) {
		answer := collected[key]
		if answer == "" {
			continue
		}
		if g, ok := firstMatch(answer, gradeRules); ok {
			return g
		}
	}
	return ""
}
