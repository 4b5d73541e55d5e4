package llm

import (
	"encoding/json"
	"strings"
)

// StripCodeFence removes a leading/trailing triple-backtick fence, with an
// optional "json" language tag, from LLM output. Models without a native
// structured-output mode habitually wrap JSON in markdown fences.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}

	return strings.TrimSpace(s)
}

// CleanAndParseJSON strips any markdown fence from text and decodes it as a
// JSON object. Returns (nil, false) on malformed input; it never panics.
// Callers treat false as "generation unavailable", not as an empty object.
func CleanAndParseJSON(text string) (map[string]any, bool) {
	cleaned := StripCodeFence(text)

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return nil, false
	}
	return obj, true
}
