// Package questiongen synthesizes the next interview question from the
// answers collected so far, and decides when the interview has gathered
// enough to stop.
package questiongen

import (
	"context"
	"fmt"

	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/conversation"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/llm"
)

const (
	minOptions = 4
	maxOptions = 6
)

// Question is a validated LLM-generated follow-up question.
type Question struct {
	StepKey        string
	Question       string
	QuestionType   string
	KeyToSave      string
	Options        []string
	AllowsFreeText bool
	Priority       string
	Reasoning      string
}

// Card converts the question to the client-facing card shape shared with
// the fixed script.
func (q *Question) Card() conversation.QuestionCard {
	return conversation.QuestionCard{
		StepKey:        q.StepKey,
		Question:       q.Question,
		Options:        q.Options,
		AllowsFreeText: q.AllowsFreeText,
	}
}

// ErrInvalidQuestion reports LLM output that is not a usable question:
// unparseable, missing a required key, or carrying the wrong number of
// options. It is not retried; the caller finalizes early instead.
type ErrInvalidQuestion struct {
	Reason string
}

func (e *ErrInvalidQuestion) Error() string {
	return fmt.Sprintf("invalid generated question: %s", e.Reason)
}

// Config tunes question generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation defaults. Temperature is higher
// than plan synthesis: varied questions are a feature.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1000,
		Temperature: 0.8,
	}
}

// Generator produces follow-up questions through the LLM provider.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Generator.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// BootstrapCard is the hardcoded opening question for dynamic sessions.
// Asking the LLM for a first question before any data exists would be a
// wasted call.
func BootstrapCard() conversation.QuestionCard {
	return conversation.QuestionCard{
		StepKey:  "dynamic_question_1",
		Question: "您好！我们来一起准备一堂新课。请先简单描述您想准备的课程，比如学科、年级和主题。",
		Options: []string{
			"我想准备一堂数学课",
			"我想准备一堂语文课",
			"我想准备一堂英语课",
			"我想准备一堂科学课",
		},
		AllowsFreeText: true,
	}
}

// GenerateNext asks the LLM for the next most useful question given
// everything collected so far. Returns (nil, nil) once questionsAsked has
// reached maxQuestions — the ceiling consumes no LLM call. Provider
// failures and malformed output come back as errors; callers treat any
// nil question as "stop asking and finalize".
func (g *Generator) GenerateNext(ctx context.Context, collected map[string]string, questionsAsked, maxQuestions int) (*Question, error) {
	if questionsAsked >= maxQuestions {
		return nil, nil
	}

	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionPrompt(collected, questionsAsked, maxQuestions)},
		},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("question generation: %w", err)
	}

	// The prompt demands bare JSON but no schema is enforced provider-side
	// here, so clean and validate locally.
	obj, ok := llm.CleanAndParseJSON(string(resp.Content))
	if !ok {
		return nil, &ErrInvalidQuestion{Reason: "response is not valid JSON"}
	}

	q, verr := questionFrom(obj)
	if verr != nil {
		return nil, verr
	}

	q.StepKey = fmt.Sprintf("dynamic_question_%d", questionsAsked+1)
	return q, nil
}

// questionFrom validates the decoded object: the six required keys must
// be present and the option count must be within [4,6].
func questionFrom(obj map[string]any) (*Question, *ErrInvalidQuestion) {
	required := []string{"question", "question_type", "key_to_save", "options", "allows_free_text", "priority"}
	for _, key := range required {
		if _, ok := obj[key]; !ok {
			return nil, &ErrInvalidQuestion{Reason: fmt.Sprintf("missing key %q", key)}
		}
	}

	rawOptions, ok := obj["options"].([]any)
	if !ok {
		return nil, &ErrInvalidQuestion{Reason: "options is not an array"}
	}
	if len(rawOptions) < minOptions || len(rawOptions) > maxOptions {
		return nil, &ErrInvalidQuestion{Reason: fmt.Sprintf("want %d-%d options, got %d", minOptions, maxOptions, len(rawOptions))}
	}

	options := make([]string, 0, len(rawOptions))
	for _, o := range rawOptions {
		s, ok := o.(string)
		if !ok {
			return nil, &ErrInvalidQuestion{Reason: "options contains a non-string entry"}
		}
		options = append(options, s)
	}

	allowsFree, _ := obj["allows_free_text"].(bool)
	reasoning, _ := obj["reasoning"].(string)

	return &Question{
		Question:       stringField(obj, "question"),
		QuestionType:   stringField(obj, "question_type"),
		KeyToSave:      stringField(obj, "key_to_save"),
		Options:        options,
		AllowsFreeText: allowsFree,
		Priority:       stringField(obj, "priority"),
		Reasoning:      reasoning,
	}, nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
