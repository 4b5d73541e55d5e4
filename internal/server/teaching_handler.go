package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/conversation"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/store"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/teaching"
)

// TeachingHandler exposes the session dialogue over HTTP.
type TeachingHandler struct {
	svc *teaching.Service
}

func NewTeachingHandler(svc *teaching.Service) *TeachingHandler {
	return &TeachingHandler{svc: svc}
}

type startSessionRequest struct {
	Mode string `json:"mode"`
}

type answerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// turnResponse is the wire shape for both starting a session and
// answering a question. Card is absent once the session has finalized.
type turnResponse struct {
	SessionID      string                     `json:"sessionId"`
	Status         store.SessionStatus        `json:"status"`
	Mode           store.SessionMode          `json:"mode"`
	CurrentStep    string                     `json:"currentStep"`
	QuestionsAsked int                        `json:"questionsAsked"`
	MaxQuestions   int                        `json:"maxQuestions"`
	Card           *conversation.QuestionCard `json:"card,omitempty"`
	LessonPlanID   *int64                     `json:"lessonPlanId,omitempty"`
}

func turnResponseFrom(turn *teaching.Turn) turnResponse {
	return turnResponse{
		SessionID:      turn.Session.SessionID,
		Status:         turn.Session.Status,
		Mode:           turn.Session.Mode,
		CurrentStep:    turn.Session.CurrentStep,
		QuestionsAsked: turn.Session.QuestionsAsked,
		MaxQuestions:   turn.Session.MaxQuestions,
		Card:           turn.Card,
		LessonPlanID:   turn.Session.LessonPlanID,
	}
}

func (h *TeachingHandler) Start(c *gin.Context) {
	var req startSessionRequest
	// Missing body defaults to fixed mode.
	_ = c.ShouldBindJSON(&req)

	mode := store.SessionMode(req.Mode)
	if req.Mode == "" {
		mode = store.ModeFixed
	}
	if mode != store.ModeFixed && mode != store.ModeDynamic {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be fixed or dynamic"})
		return
	}

	turn, err := h.svc.Start(c.Request.Context(), currentUserID(c), mode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}

	recordSessionStarted(string(mode))
	c.JSON(http.StatusCreated, turnResponseFrom(turn))
}

func (h *TeachingHandler) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer is required"})
		return
	}

	turn, err := h.svc.Answer(c.Request.Context(), currentUserID(c), c.Param("id"), req.Answer)
	if err != nil {
		writeTeachingError(c, err)
		return
	}

	if turn.Session.Status == store.StatusCompleted {
		recordPlanGeneration(true)
	}
	c.JSON(http.StatusOK, turnResponseFrom(turn))
}

func (h *TeachingHandler) Get(c *gin.Context) {
	sess, err := h.svc.Get(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeTeachingError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *TeachingHandler) ListActive(c *gin.Context) {
	sessions, err := h.svc.ListActive(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *TeachingHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		writeTeachingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeTeachingError maps orchestrator errors to HTTP status and a
// stable machine-readable code.
func writeTeachingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, teaching.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": "SESSION_NOT_FOUND", "error": "session not found"})
	case errors.Is(err, teaching.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"code": "INVALID_STATE", "error": err.Error()})
	case errors.Is(err, teaching.ErrInvalidStep):
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_STEP", "error": err.Error()})
	case errors.Is(err, teaching.ErrGenerationFailed):
		recordPlanGeneration(false)
		c.JSON(http.StatusBadGateway, gin.H{"code": "GENERATION_FAILED", "error": "lesson plan generation failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
