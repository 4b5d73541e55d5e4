// Package teaching orchestrates lesson-creation sessions: it walks the
// fixed script or the LLM-driven dynamic interview, and hands the
// collected answers to plan synthesis when the dialogue ends.
package teaching

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/conversation"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/extract"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/plangen"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/questiongen"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/store"
)

const (
	defaultMaxQuestions = 5
	minQuestions        = 3
)

// Turn is the outcome of starting a session or answering a question. Card
// is nil once the session has finalized; the session itself carries the
// terminal status and, on success, the lesson plan id.
type Turn struct {
	Session *store.Session
	Card    *conversation.QuestionCard
}

// Service drives session state. All mutations go through the session
// repo; the service itself is stateless and safe for concurrent use.
type Service struct {
	sessions  store.SessionRepo
	plans     store.LessonPlanRepo
	questions *questiongen.Generator
	planner   *plangen.Service
}

// NewService wires the orchestrator.
func NewService(sessions store.SessionRepo, plans store.LessonPlanRepo, questions *questiongen.Generator, planner *plangen.Service) *Service {
	return &Service{
		sessions:  sessions,
		plans:     plans,
		questions: questions,
		planner:   planner,
	}
}

// Start creates a session in the given mode and returns its first
// question. Dynamic sessions open with a hardcoded bootstrap question so
// no LLM call happens before the user has said anything.
func (s *Service) Start(ctx context.Context, userID string, mode store.SessionMode) (*Turn, error) {
	var card conversation.QuestionCard
	switch mode {
	case store.ModeFixed:
		c, ok := conversation.Card(conversation.StartStep)
		if !ok {
			return nil, fmt.Errorf("conversation script has no start step")
		}
		card = c
	case store.ModeDynamic:
		card = questiongen.BootstrapCard()
	default:
		return nil, fmt.Errorf("unknown session mode %q", mode)
	}

	sess := &store.Session{
		SessionID:       uuid.NewString(),
		UserID:          userID,
		Status:          store.StatusInProgress,
		Mode:            mode,
		CurrentStep:     card.StepKey,
		CurrentQuestion: card.Question,
		MaxQuestions:    defaultMaxQuestions,
		CollectedData:   map[string]string{},
		History:         []store.HistoryEntry{},
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &Turn{Session: sess, Card: &card}, nil
}

// Answer records the user's answer to the current question and either
// advances the dialogue or finalizes the session into a lesson plan.
func (s *Service) Answer(ctx context.Context, userID, sessionID, answer string) (*Turn, error) {
	sess, err := s.load(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if sess.Status != store.StatusInProgress {
		return nil, fmt.Errorf("%w: session is %s", ErrInvalidState, sess.Status)
	}

	if sess.Mode == store.ModeDynamic {
		return s.answerDynamic(ctx, sess, answer)
	}
	return s.answerFixed(ctx, sess, answer)
}

// answerFixed advances the static script by one step.
func (s *Service) answerFixed(ctx context.Context, sess *store.Session, answer string) (*Turn, error) {
	step, ok := conversation.StepConfig(sess.CurrentStep)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStep, sess.CurrentStep)
	}

	sess.CollectedData[step.KeyToSave] = answer
	sess.History = append(sess.History, store.HistoryEntry{
		Step:     sess.CurrentStep,
		Question: step.Question,
		Answer:   answer,
		Index:    len(sess.History) + 1,
	})

	if conversation.IsFinalStep(sess.CurrentStep) {
		return s.finalize(ctx, sess)
	}

	next, _ := conversation.NextStep(sess.CurrentStep)
	card, ok := conversation.Card(next)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStep, next)
	}
	sess.CurrentStep = next
	sess.CurrentQuestion = card.Question
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &Turn{Session: sess, Card: &card}, nil
}

// answerDynamic stores the answer under a positional key, asks the policy
// whether to continue, and either generates the next question or
// finalizes. A generator failure is not an error to the caller: the
// session finalizes early with whatever was collected.
func (s *Service) answerDynamic(ctx context.Context, sess *store.Session, answer string) (*Turn, error) {
	sess.History = append(sess.History, store.HistoryEntry{
		Step:     sess.CurrentStep,
		Question: sess.CurrentQuestion,
		Answer:   answer,
		Index:    sess.QuestionsAsked + 1,
	})
	sess.CollectedData[fmt.Sprintf("question_%d_answer", sess.QuestionsAsked+1)] = answer
	sess.QuestionsAsked++

	decision := questiongen.ShouldContinue(sess.CollectedData, sess.QuestionsAsked, minQuestions, sess.MaxQuestions)
	if !decision.ShouldContinue {
		return s.finalize(ctx, sess)
	}

	q, err := s.questions.GenerateNext(ctx, sess.CollectedData, sess.QuestionsAsked, sess.MaxQuestions)
	if err != nil || q == nil {
		return s.finalize(ctx, sess)
	}

	card := q.Card()
	sess.CurrentStep = q.StepKey
	sess.CurrentQuestion = q.Question
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &Turn{Session: sess, Card: &card}, nil
}

// finalize runs plan synthesis. The processing status is committed before
// the LLM call so a crash mid-generation leaves the session visibly stuck
// in processing rather than silently reopened.
func (s *Service) finalize(ctx context.Context, sess *store.Session) (*Turn, error) {
	sess.Status = store.StatusProcessing
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	draft, err := s.planner.Generate(ctx, sess.CollectedData, true)
	if err != nil {
		return s.fail(ctx, sess, err)
	}

	plan := &store.LessonPlan{
		UserID:     sess.UserID,
		Title:      draft.Title,
		Subject:    extract.Subject(sess.CollectedData),
		Grade:      extract.Grade(sess.CollectedData),
		Objectives: draft.Objectives,
		Outline:    draft.Outline,
	}
	for _, a := range draft.Activities {
		plan.Activities = append(plan.Activities, store.LessonPlanActivity{
			Name:            a.Name,
			Description:     a.Description,
			DurationMinutes: a.DurationMinutes,
			OrderIndex:      a.Order,
		})
	}
	if draft.SearchInfo != nil {
		info := store.WebSearchInfo{
			UsedWebSearch: draft.SearchInfo.UsedWebSearch,
			Query:         draft.SearchInfo.Query,
			TotalSources:  draft.SearchInfo.TotalSources,
			Sources:       draft.SearchInfo.Sources,
		}
		if err := plan.SetWebSearchInfo(info); err != nil {
			return s.fail(ctx, sess, err)
		}
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		return s.fail(ctx, sess, err)
	}

	sess.Status = store.StatusCompleted
	sess.LessonPlanID = &plan.ID
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &Turn{Session: sess}, nil
}

// fail marks the session failed and reports the terminal error.
func (s *Service) fail(ctx context.Context, sess *store.Session, cause error) (*Turn, error) {
	sess.Status = store.StatusFailed
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save failed session: %w", err)
	}
	return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, cause)
}

// Get returns the user's session.
func (s *Service) Get(ctx context.Context, userID, sessionID string) (*store.Session, error) {
	return s.load(ctx, sessionID, userID)
}

// ListActive returns the user's in-progress sessions.
func (s *Service) ListActive(ctx context.Context, userID string) ([]store.Session, error) {
	return s.sessions.ListActive(ctx, userID)
}

// Delete removes the user's session. The lesson plan produced by a
// completed session is not touched.
func (s *Service) Delete(ctx context.Context, userID, sessionID string) error {
	err := s.sessions.Delete(ctx, sessionID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}

func (s *Service) load(ctx context.Context, sessionID, userID string) (*store.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, ErrSessionNotFound
	}
	if sess.CollectedData == nil {
		sess.CollectedData = map[string]string{}
	}
	return sess, nil
}
