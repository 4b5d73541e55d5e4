package plangen

import "fmt"

// Draft is a parsed-and-validated lesson plan that has not been persisted
// yet. Everything in it came from the LLM except SearchInfo.
type Draft struct {
	Title      string
	Objectives []string
	Outline    string
	Activities []Activity
	SearchInfo *SearchInfo
}

// Activity is one ordered segment of a draft plan.
type Activity struct {
	Order           int
	Name            string
	Description     string
	DurationMinutes int
}

// SearchInfo records how web search grounded the draft.
type SearchInfo struct {
	UsedWebSearch bool
	Query         string
	TotalSources  int
	Sources       []string
}

// ErrInvalidDraft reports a structurally unusable LLM plan: a required
// field is missing or an activity is malformed. Callers match it with
// errors.As and treat it as a generation failure.
type ErrInvalidDraft struct {
	Field string
	Err   error
}

func (e *ErrInvalidDraft) Error() string {
	return fmt.Sprintf("invalid lesson plan draft (%s): %v", e.Field, e.Err)
}

func (e *ErrInvalidDraft) Unwrap() error { return e.Err }
