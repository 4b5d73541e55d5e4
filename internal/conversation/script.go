// Package conversation holds the static question script for fixed-mode
// lesson-design dialogues: a declarative step table and pure lookups over
// it. It has no side effects and no failure mode beyond "unknown step".
package conversation

// FinalizeStep is the sentinel next-step meaning "stop asking, generate".
const FinalizeStep = "finalize"

// StartStep is the first step of the fixed script.
const StartStep = "ask_subject"

// Step is one scripted question: what to ask, which options to offer,
// where to store the answer, and what comes next.
type Step struct {
	Question       string
	Options        []string
	AllowsFreeText bool
	KeyToSave      string
	NextStep       string
}

// QuestionCard is the question payload returned to the client, shared by
// the fixed script and the dynamic generator.
type QuestionCard struct {
	StepKey        string   `json:"step_key"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	AllowsFreeText bool     `json:"allows_free_text"`
}

// steps is the fixed interview: subject, grade, topic, duration, then
// finalize. Content is authored in Chinese for the target audience.
var steps = map[string]Step{
	"ask_subject": {
		Question:       "您好！我们来一起准备一堂新课。首先，这堂课是关于哪个学科的？",
		Options:        []string{"语文", "数学", "英语", "物理", "历史", "生物"},
		AllowsFreeText: true,
		KeyToSave:      "subject",
		NextStep:       "ask_grade",
	},
	"ask_grade": {
		Question: "好的，那么这堂课是针对哪个年级的学生？",
		Options: []string{
			"小学一年级", "小学二年级", "小学三年级", "小学四年级", "小学五年级", "小学六年级",
			"初中一年级", "初中二年级", "初中三年级",
			"高中一年级", "高中二年级", "高中三年级",
		},
		AllowsFreeText: true,
		KeyToSave:      "grade",
		NextStep:       "ask_topic",
	},
	"ask_topic": {
		Question:       "请告诉我这堂课的具体课题或主题是什么？",
		Options:        []string{}, // free input only
		AllowsFreeText: true,
		KeyToSave:      "topic",
		NextStep:       "ask_duration",
	},
	"ask_duration": {
		Question:       "这堂课预计需要多长时间？（单位：分钟）",
		Options:        []string{"30", "40", "45", "50", "60", "90"},
		AllowsFreeText: true,
		KeyToSave:      "duration_minutes",
		NextStep:       FinalizeStep,
	},
}

// StepConfig returns the configuration for stepKey.
// The second return is false for unknown steps.
func StepConfig(stepKey string) (Step, bool) {
	s, ok := steps[stepKey]
	return s, ok
}

// NextStep returns the step following stepKey, which may be FinalizeStep.
// The second return is false for unknown steps.
func NextStep(stepKey string) (string, bool) {
	s, ok := steps[stepKey]
	if !ok {
		return "", false
	}
	return s.NextStep, true
}

// IsFinalStep reports whether stepKey is the last question before
// finalization.
func IsFinalStep(stepKey string) bool {
	next, ok := NextStep(stepKey)
	return ok && next == FinalizeStep
}

// Card builds the client-facing question card for stepKey.
func Card(stepKey string) (QuestionCard, bool) {
	s, ok := steps[stepKey]
	if !ok {
		return QuestionCard{}, false
	}
	return QuestionCard{
		StepKey:        stepKey,
		Question:       s.Question,
		Options:        s.Options,
		AllowsFreeText: s.AllowsFreeText,
	}, true
}
