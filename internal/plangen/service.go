package plangen

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/extract"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/llm"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/search"
)

const defaultDurationMinutes = 45

// Config tunes plan generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2000,
		Temperature: 0.7,
	}
}

// Service synthesizes a complete lesson plan from the data a finished
// interview collected.
type Service struct {
	provider llm.Provider
	searcher search.Client
	cfg      Config
}

// NewService creates a plan generation service. searcher may be nil when
// web search is not configured.
func NewService(provider llm.Provider, searcher search.Client, cfg Config) *Service {
	return &Service{provider: provider, searcher: searcher, cfg: cfg}
}

// draftOutput is the raw decoded LLM response before validation.
type draftOutput struct {
	Title              string           `json:"title"`
	LearningObjectives []string         `json:"learning_objectives"`
	TeachingOutline    string           `json:"teaching_outline"`
	Activities         []activityOutput `json:"activities"`
}

type activityOutput struct {
	Order       int    `json:"order"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
}

// Generate produces a validated lesson-plan draft. It returns a typed
// error for every failure path: provider errors pass through unchanged,
// structural problems surface as *ErrInvalidDraft. The caller decides
// what a failed generation means for the session.
func (s *Service) Generate(ctx context.Context, collected map[string]string, enableWebSearch bool) (*Draft, error) {
	ctx = llm.WithPurpose(ctx, "lesson-plan")

	in := PromptInput{
		Subject:         extract.Subject(collected),
		Grade:           extract.Grade(collected),
		Topic:           collected["topic"],
		DurationMinutes: durationFrom(collected),
		Collected:       collected,
	}

	info := &SearchInfo{}
	if enableWebSearch && s.searcher != nil && s.searcher.Enabled() {
		query := buildSearchQuery(in)
		if resp := s.searcher.Search(ctx, query, maxGroundingResults); resp != nil {
			in.SearchResults = resp.Results
			info = &SearchInfo{
				UsedWebSearch: true,
				Query:         resp.Metadata.Query,
				TotalSources:  resp.Metadata.TotalResults,
				Sources:       resp.Metadata.Sources,
			}
		}
	}

	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(in)},
		},
		Schema:      LessonPlanSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lesson plan generation: %w", err)
	}

	var out draftOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &ErrInvalidDraft{Field: "json", Err: err}
	}

	draft, err := buildDraft(out)
	if err != nil {
		return nil, err
	}
	draft.SearchInfo = info
	return draft, nil
}

// buildDraft validates the decoded output and converts it to a Draft.
func buildDraft(out draftOutput) (*Draft, error) {
	if out.Title == "" {
		return nil, &ErrInvalidDraft{Field: "title", Err: fmt.Errorf("missing or empty")}
	}
	if len(out.LearningObjectives) == 0 {
		return nil, &ErrInvalidDraft{Field: "learning_objectives", Err: fmt.Errorf("missing or empty")}
	}
	if out.TeachingOutline == "" {
		return nil, &ErrInvalidDraft{Field: "teaching_outline", Err: fmt.Errorf("missing or empty")}
	}
	if len(out.Activities) == 0 {
		return nil, &ErrInvalidDraft{Field: "activities", Err: fmt.Errorf("missing or empty")}
	}

	activities := make([]Activity, len(out.Activities))
	for i, a := range out.Activities {
		if a.Name == "" {
			return nil, &ErrInvalidDraft{
				Field: fmt.Sprintf("activities[%d].name", i),
				Err:   fmt.Errorf("missing or empty"),
			}
		}
		if a.Order <= 0 {
			return nil, &ErrInvalidDraft{
				Field: fmt.Sprintf("activities[%d].order", i),
				Err:   fmt.Errorf("must be positive, got %d", a.Order),
			}
		}
		activities[i] = Activity{
			Order:           a.Order,
			Name:            a.Name,
			Description:     a.Description,
			DurationMinutes: a.Duration,
		}
	}

	// Present activities in a stable, contiguous order regardless of how
	// the model numbered them.
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Order < activities[j].Order
	})
	for i := range activities {
		activities[i].Order = i + 1
	}

	return &Draft{
		Title:      out.Title,
		Objectives: out.LearningObjectives,
		Outline:    out.TeachingOutline,
		Activities: activities,
	}, nil
}

func buildSearchQuery(in PromptInput) string {
	query := in.Subject + " " + in.Grade + " " + in.Topic + " 教学设计"
	if in.Topic == "" {
		// Dynamic interviews may never name a topic directly; fall back to
		// the first free-text answer.
		query = in.Subject + " " + in.Grade + " " + in.Collected["question_1_answer"] + " 教学设计"
	}
	return query
}

// durationFrom parses the requested session length, defaulting to 45.
func durationFrom(collected map[string]string) int {
	if v := collected["duration_minutes"]; v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultDurationMinutes
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
