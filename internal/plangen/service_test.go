package plangen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/llm"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/search"
)

const validPlanJSON = `{
	"title": "光合作用探究课",
	"learning_objectives": ["理解光合作用的条件", "掌握对照实验设计"],
	"teaching_outline": "导入、实验探究、总结",
	"activities": [
		{"order": 2, "name": "实验探究", "description": "分组验证光照条件", "duration": 25},
		{"order": 1, "name": "情境导入", "description": "展示绿叶与黄叶", "duration": 10},
		{"order": 3, "name": "总结提升", "description": "归纳反应式", "duration": 10}
	]
}`

// stubSearcher is a canned search.Client for tests.
type stubSearcher struct {
	resp    *search.Response
	queries []string
}

func (s *stubSearcher) Search(_ context.Context, query string, _ int) *search.Response {
	s.queries = append(s.queries, query)
	return s.resp
}

func (s *stubSearcher) Enabled() bool { return true }

func TestGenerate_Valid(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(validPlanJSON)},
	)
	svc := NewService(mock, nil, DefaultConfig())

	collected := map[string]string{
		"subject":          "生物",
		"grade":            "初中二年级",
		"topic":            "光合作用",
		"duration_minutes": "45",
	}
	draft, err := svc.Generate(context.Background(), collected, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Title != "光合作用探究课" {
		t.Fatalf("title = %q", draft.Title)
	}
	if len(draft.Objectives) != 2 {
		t.Fatalf("got %d objectives", len(draft.Objectives))
	}
	// Activities are re-sorted and renumbered contiguously.
	wantOrder := []string{"情境导入", "实验探究", "总结提升"}
	for i, a := range draft.Activities {
		if a.Name != wantOrder[i] {
			t.Fatalf("activity %d = %q, want %q", i, a.Name, wantOrder[i])
		}
		if a.Order != i+1 {
			t.Fatalf("activity %d order = %d, want %d", i, a.Order, i+1)
		}
	}
	if draft.SearchInfo == nil || draft.SearchInfo.UsedWebSearch {
		t.Fatal("expected search info marked unused")
	}

	// The prompt carries the course facts.
	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 LLM call, got %d", len(mock.Calls))
	}
	prompt := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"生物", "初中二年级", "光合作用", "45"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if mock.Calls[0].Schema == nil {
		t.Fatal("expected schema-enforced request")
	}
}

func TestGenerate_WebSearchGrounding(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(validPlanJSON)},
	)
	searcher := &stubSearcher{
		resp: &search.Response{
			Results: []search.Result{
				{Title: "光合作用教学设计", URL: "https://example.com/a", Content: strings.Repeat("光", 300)},
			},
			Metadata: search.Metadata{
				Query:        "生物 初中二年级 光合作用 教学设计",
				TotalResults: 1,
				Sources:      []string{"https://example.com/a"},
			},
		},
	}
	svc := NewService(mock, searcher, DefaultConfig())

	collected := map[string]string{"subject": "生物", "grade": "初中二年级", "topic": "光合作用"}
	draft, err := svc.Generate(context.Background(), collected, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !draft.SearchInfo.UsedWebSearch {
		t.Fatal("expected web search recorded")
	}
	if draft.SearchInfo.TotalSources != 1 {
		t.Fatalf("total sources = %d", draft.SearchInfo.TotalSources)
	}
	if len(searcher.queries) != 1 || !strings.Contains(searcher.queries[0], "教学设计") {
		t.Fatalf("unexpected queries: %v", searcher.queries)
	}

	// Long source content is truncated to keep the prompt bounded.
	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "光合作用教学设计") {
		t.Fatal("prompt missing grounding title")
	}
	if strings.Contains(prompt, strings.Repeat("光", 250)) {
		t.Fatal("grounding content was not truncated")
	}
}

func TestGenerate_SearchFailureDegrades(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(validPlanJSON)},
	)
	// A nil response means every search attempt failed.
	svc := NewService(mock, &stubSearcher{resp: nil}, DefaultConfig())

	draft, err := svc.Generate(context.Background(), map[string]string{"subject": "生物"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.SearchInfo.UsedWebSearch {
		t.Fatal("failed search must not be recorded as used")
	}
}

func TestGenerate_InvalidDraft(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty title", `{"title":"","learning_objectives":["a"],"teaching_outline":"o","activities":[{"order":1,"name":"n","duration":5}]}`},
		{"no objectives", `{"title":"t","learning_objectives":[],"teaching_outline":"o","activities":[{"order":1,"name":"n","duration":5}]}`},
		{"no activities", `{"title":"t","learning_objectives":["a"],"teaching_outline":"o","activities":[]}`},
		{"activity without name", `{"title":"t","learning_objectives":["a"],"teaching_outline":"o","activities":[{"order":1,"name":"","duration":5}]}`},
		{"non-positive order", `{"title":"t","learning_objectives":["a"],"teaching_outline":"o","activities":[{"order":0,"name":"n","duration":5}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := llm.NewMockProvider(
				llm.MockResponse{Content: json.RawMessage(tc.content)},
			)
			svc := NewService(mock, nil, DefaultConfig())

			_, err := svc.Generate(context.Background(), map[string]string{"subject": "生物"}, false)
			var invalid *ErrInvalidDraft
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ErrInvalidDraft, got %v", err)
			}
		})
	}
}

func TestGenerate_ProviderErrorPassesThrough(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	svc := NewService(mock, nil, DefaultConfig())

	_, err := svc.Generate(context.Background(), map[string]string{"subject": "生物"}, false)
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestDurationFrom(t *testing.T) {
	if got := durationFrom(map[string]string{"duration_minutes": "40"}); got != 40 {
		t.Fatalf("got %d", got)
	}
	if got := durationFrom(map[string]string{"duration_minutes": "四十"}); got != defaultDurationMinutes {
		t.Fatalf("got %d", got)
	}
	if got := durationFrom(map[string]string{}); got != defaultDurationMinutes {
		t.Fatalf("got %d", got)
	}
}
