package teaching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/llm"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/plangen"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/questiongen"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/store"
)

const planJSON = `{
	"title": "光合作用探究课",
	"learning_objectives": ["理解光合作用的条件", "掌握对照实验设计"],
	"teaching_outline": "导入、实验探究、总结",
	"activities": [
		{"order": 1, "name": "情境导入", "description": "展示绿叶与黄叶", "duration": 10},
		{"order": 2, "name": "实验探究", "description": "分组验证光照条件", "duration": 25},
		{"order": 3, "name": "总结提升", "description": "归纳反应式", "duration": 10}
	]
}`

const questionJSON = `{
	"question": "您希望采用哪种教学方法？",
	"question_type": "single_choice",
	"key_to_save": "teaching_method",
	"options": ["讲授法", "实验探究", "小组讨论", "项目式学习"],
	"allows_free_text": true,
	"priority": "high",
	"reasoning": "教学方法尚未确定"
}`

func newTestService(t *testing.T, provider llm.Provider) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	svc := NewService(
		st.Sessions(),
		st.LessonPlans(),
		questiongen.New(provider, questiongen.DefaultConfig()),
		plangen.NewService(provider, nil, plangen.DefaultConfig()),
	)
	return svc, st
}

func TestFixedFlow_EndToEnd(t *testing.T) {
	ctx := context.Background()
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(planJSON)},
	)
	svc, st := newTestService(t, mock)

	turn, err := svc.Start(ctx, "teacher-1", store.ModeFixed)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if turn.Card == nil || turn.Card.StepKey != "ask_subject" {
		t.Fatalf("unexpected first card: %+v", turn.Card)
	}
	sessionID := turn.Session.SessionID

	answers := []struct {
		answer   string
		nextStep string
	}{
		{"生物", "ask_grade"},
		{"初中二年级", "ask_topic"},
		{"光合作用", "ask_duration"},
	}
	for _, step := range answers {
		turn, err = svc.Answer(ctx, "teacher-1", sessionID, step.answer)
		if err != nil {
			t.Fatalf("answer %q: %v", step.answer, err)
		}
		if turn.Card == nil || turn.Card.StepKey != step.nextStep {
			t.Fatalf("after %q expected step %q, got %+v", step.answer, step.nextStep, turn.Card)
		}
	}

	// The duration answer is the last question; it triggers finalization.
	turn, err = svc.Answer(ctx, "teacher-1", sessionID, "45")
	if err != nil {
		t.Fatalf("final answer: %v", err)
	}
	if turn.Card != nil {
		t.Fatal("expected no card after finalization")
	}
	if turn.Session.Status != store.StatusCompleted {
		t.Fatalf("status = %s, want completed", turn.Session.Status)
	}
	if turn.Session.LessonPlanID == nil {
		t.Fatal("expected lesson plan id on completed session")
	}
	if got := turn.Session.CollectedData["subject"]; got != "生物" {
		t.Fatalf("collected subject = %q", got)
	}
	if len(turn.Session.History) != 4 {
		t.Fatalf("history length = %d, want 4", len(turn.Session.History))
	}

	plan, err := st.LessonPlans().Get(ctx, *turn.Session.LessonPlanID, "teacher-1")
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}
	if plan.Subject != "生物" || plan.Grade != "初中二年级" {
		t.Fatalf("plan subject/grade = %q/%q", plan.Subject, plan.Grade)
	}
	if plan.Title != "光合作用探究课" {
		t.Fatalf("plan title = %q", plan.Title)
	}
	if len(plan.Activities) != 3 || plan.Activities[0].Name != "情境导入" {
		t.Fatalf("unexpected activities: %+v", plan.Activities)
	}

	// Completed sessions disappear from the active list.
	active, err := svc.ListActive(ctx, "teacher-1")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active sessions, got %d", len(active))
	}
}

func TestDynamicFlow_EndToEnd(t *testing.T) {
	ctx := context.Background()
	// Four generated follow-ups, then the plan; the fifth answer hits the
	// question ceiling and finalizes.
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(questionJSON)},
		llm.MockResponse{Content: json.RawMessage(questionJSON)},
		llm.MockResponse{Content: json.RawMessage(questionJSON)},
		llm.MockResponse{Content: json.RawMessage(questionJSON)},
		llm.MockResponse{Content: json.RawMessage(planJSON)},
	)
	svc, _ := newTestService(t, mock)

	turn, err := svc.Start(ctx, "teacher-1", store.ModeDynamic)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if turn.Card == nil || turn.Card.StepKey != "dynamic_question_1" {
		t.Fatalf("unexpected bootstrap card: %+v", turn.Card)
	}
	bootstrapQuestion := turn.Card.Question
	sessionID := turn.Session.SessionID

	answers := []string{
		"我想给初中二年级的学生讲生物的光合作用",
		"45分钟",
		"实验探究为主",
		"学生基础中等",
	}
	for i, answer := range answers {
		turn, err = svc.Answer(ctx, "teacher-1", sessionID, answer)
		if err != nil {
			t.Fatalf("answer %d: %v", i+1, err)
		}
		wantStep := fmt.Sprintf("dynamic_question_%d", i+2)
		if turn.Card == nil || turn.Card.StepKey != wantStep {
			t.Fatalf("after answer %d expected %q, got %+v", i+1, wantStep, turn.Card)
		}
	}

	turn, err = svc.Answer(ctx, "teacher-1", sessionID, "希望课堂气氛活跃")
	if err != nil {
		t.Fatalf("final answer: %v", err)
	}
	if turn.Session.Status != store.StatusCompleted {
		t.Fatalf("status = %s, want completed", turn.Session.Status)
	}
	if turn.Session.QuestionsAsked != 5 {
		t.Fatalf("questions asked = %d, want 5", turn.Session.QuestionsAsked)
	}
	if len(turn.Session.History) != 5 {
		t.Fatalf("history length = %d, want 5", len(turn.Session.History))
	}
	if turn.Session.History[0].Question != bootstrapQuestion {
		t.Fatalf("history[0].Question = %q", turn.Session.History[0].Question)
	}
	for i := 1; i <= 5; i++ {
		key := fmt.Sprintf("question_%d_answer", i)
		if turn.Session.CollectedData[key] == "" {
			t.Fatalf("missing collected answer %q", key)
		}
	}
	// All five LLM interactions happened: four questions plus the plan.
	if mock.CallCount() != 5 {
		t.Fatalf("LLM calls = %d, want 5", mock.CallCount())
	}
}

func TestDynamicFlow_GeneratorFailureFinalizesEarly(t *testing.T) {
	ctx := context.Background()
	// Two good follow-ups, then unusable output: the session should
	// finalize with what it has instead of failing.
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(questionJSON)},
		llm.MockResponse{Content: json.RawMessage(questionJSON)},
		llm.MockResponse{Content: json.RawMessage(`抱歉，我无法继续提问。`)},
		llm.MockResponse{Content: json.RawMessage(planJSON)},
	)
	svc, _ := newTestService(t, mock)

	turn, err := svc.Start(ctx, "teacher-1", store.ModeDynamic)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	sessionID := turn.Session.SessionID

	for _, answer := range []string{"生物课", "初二", "光合作用"} {
		turn, err = svc.Answer(ctx, "teacher-1", sessionID, answer)
		if err != nil {
			t.Fatalf("answer %q: %v", answer, err)
		}
	}

	if turn.Session.Status != store.StatusCompleted {
		t.Fatalf("status = %s, want completed", turn.Session.Status)
	}
	if turn.Session.QuestionsAsked != 3 {
		t.Fatalf("questions asked = %d, want 3", turn.Session.QuestionsAsked)
	}
}

func TestFinalize_GenerationFailure(t *testing.T) {
	ctx := context.Background()
	// Empty mock: the plan generation call finds no canned response and
	// the provider reports unavailable.
	mock := llm.NewMockProvider()
	svc, st := newTestService(t, mock)

	turn, err := svc.Start(ctx, "teacher-1", store.ModeFixed)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	sessionID := turn.Session.SessionID

	for _, answer := range []string{"生物", "初中二年级", "光合作用"} {
		if _, err := svc.Answer(ctx, "teacher-1", sessionID, answer); err != nil {
			t.Fatalf("answer %q: %v", answer, err)
		}
	}

	_, err = svc.Answer(ctx, "teacher-1", sessionID, "45")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}

	sess, err := svc.Get(ctx, "teacher-1", sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.Status != store.StatusFailed {
		t.Fatalf("status = %s, want failed", sess.Status)
	}
	if sess.LessonPlanID != nil {
		t.Fatalf("LessonPlanID = %d, want nil after failed generation", *sess.LessonPlanID)
	}

	// No partial plan row survives the failure.
	plans, err := st.LessonPlans().List(ctx, "teacher-1")
	if err != nil {
		t.Fatalf("list plans: %v", err)
	}
	if len(plans) != 0 {
		t.Fatalf("got %d lesson plans, want none", len(plans))
	}

	// Failure is terminal.
	_, err = svc.Answer(ctx, "teacher-1", sessionID, "再试一次")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

// statusCheckProvider records the session status visible in the store at
// the moment of the generation call.
type statusCheckProvider struct {
	inner     llm.Provider
	sessions  store.SessionRepo
	sessionID string
	observed  store.SessionStatus
}

func (p *statusCheckProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if sess, err := p.sessions.Get(ctx, p.sessionID); err == nil {
		p.observed = sess.Status
	}
	return p.inner.Generate(ctx, req)
}

func (p *statusCheckProvider) ModelID() string { return p.inner.ModelID() }

func TestFinalize_CommitsProcessingBeforeGeneration(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	checker := &statusCheckProvider{
		inner:    llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(planJSON)}),
		sessions: st.Sessions(),
	}
	svc := NewService(
		st.Sessions(),
		st.LessonPlans(),
		questiongen.New(checker, questiongen.DefaultConfig()),
		plangen.NewService(checker, nil, plangen.DefaultConfig()),
	)

	turn, err := svc.Start(ctx, "teacher-1", store.ModeFixed)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	checker.sessionID = turn.Session.SessionID

	for _, answer := range []string{"生物", "初中二年级", "光合作用", "45"} {
		if _, err := svc.Answer(ctx, "teacher-1", turn.Session.SessionID, answer); err != nil {
			t.Fatalf("answer %q: %v", answer, err)
		}
	}

	if checker.observed != store.StatusProcessing {
		t.Fatalf("status during generation = %s, want processing", checker.observed)
	}
}

func TestAnswer_SessionNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, llm.NewMockProvider())

	if _, err := svc.Answer(ctx, "teacher-1", "no-such-session", "生物"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	// Another user's session is indistinguishable from a missing one.
	turn, err := svc.Start(ctx, "teacher-1", store.ModeFixed)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Answer(ctx, "teacher-2", turn.Session.SessionID, "生物"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, "teacher-2", turn.Session.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAnswer_InvalidStep(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t, llm.NewMockProvider())

	turn, err := svc.Start(ctx, "teacher-1", store.ModeFixed)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	turn.Session.CurrentStep = "ask_nothing"
	if err := st.Sessions().Save(ctx, turn.Session); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := svc.Answer(ctx, "teacher-1", turn.Session.SessionID, "生物"); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, llm.NewMockProvider())

	turn, err := svc.Start(ctx, "teacher-1", store.ModeFixed)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := svc.Delete(ctx, "teacher-2", turn.Session.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for other user, got %v", err)
	}
	if err := svc.Delete(ctx, "teacher-1", turn.Session.SessionID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, "teacher-1", turn.Session.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestStart_UnknownMode(t *testing.T) {
	svc, _ := newTestService(t, llm.NewMockProvider())
	if _, err := svc.Start(context.Background(), "teacher-1", "freestyle"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
