package questiongen

import "fmt"

// Completeness thresholds. At or above stopThreshold the interview ends;
// between continueThreshold and stopThreshold the data is described as
// basically complete but one more question is still worth asking.
const (
	stopThreshold     = 0.8
	continueThreshold = 0.6
)

// completenessWeights scores collected data by field importance. The
// weights sum to 1.0 so the score doubles as a rough percentage. Kept as
// an ordered slice so the floating-point sum is deterministic at the
// threshold boundaries.
var completenessWeights = []struct {
	key    string
	weight float64
}{
	{"subject", 0.2},
	{"grade", 0.2},
	{"topic", 0.2},
	{"duration_minutes", 0.1},
	{"teaching_method", 0.1},
	{"student_level", 0.1},
	{"learning_objectives", 0.1},
}

// Decision is the outcome of the continue-or-stop policy.
type Decision struct {
	ShouldContinue bool
	Reason         string
	Confidence     float64
}

// ShouldContinue decides whether the interview needs another question.
// The floor and ceiling are absolute: below minQuestions the interview
// always continues and at maxQuestions it always stops, regardless of how
// complete the data looks. Between the two, the completeness score of the
// collected fields drives the decision.
func ShouldContinue(collected map[string]string, questionsAsked, minQuestions, maxQuestions int) Decision {
	if questionsAsked < minQuestions {
		return Decision{
			ShouldContinue: true,
			Reason:         fmt.Sprintf("已提问 %d 个问题，少于最少 %d 个", questionsAsked, minQuestions),
			Confidence:     1.0,
		}
	}
	if questionsAsked >= maxQuestions {
		return Decision{
			ShouldContinue: false,
			Reason:         fmt.Sprintf("已达到最大提问数 %d", maxQuestions),
			Confidence:     1.0,
		}
	}

	score := Completeness(collected)
	switch {
	case score >= stopThreshold:
		return Decision{
			ShouldContinue: false,
			Reason:         "信息已足够完整，可以生成教案",
			Confidence:     score,
		}
	case score >= continueThreshold:
		return Decision{
			ShouldContinue: true,
			Reason:         "信息基本完整，但仍可补充细节",
			Confidence:     score,
		}
	default:
		return Decision{
			ShouldContinue: true,
			Reason:         "关键信息尚不完整，需要继续提问",
			Confidence:     score,
		}
	}
}

// Completeness sums the weights of the known fields present in collected
// with non-empty values, capped at 1.0. Fields outside the weight table
// contribute nothing.
func Completeness(collected map[string]string) float64 {
	score := 0.0
	for _, w := range completenessWeights {
		if v, ok := collected[w.key]; ok && v != "" {
			score += w.weight
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
