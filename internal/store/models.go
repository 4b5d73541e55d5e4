package store

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// SessionStatus is the lifecycle state of a lesson-creation session.
// PROCESSING is entered exactly once when finalization begins; COMPLETED
// and FAILED are terminal.
type SessionStatus string

const (
	StatusInProgress SessionStatus = "in_progress"
	StatusProcessing SessionStatus = "processing"
	StatusCompleted  SessionStatus = "completed"
	StatusFailed     SessionStatus = "failed"
)

// SessionMode selects how the next question is chosen.
type SessionMode string

const (
	// ModeFixed walks the static conversation script.
	ModeFixed SessionMode = "fixed"
	// ModeDynamic asks the LLM to synthesize each follow-up question.
	ModeDynamic SessionMode = "dynamic"
)

// HistoryEntry is one asked-and-answered turn, kept for audit and for
// telling the question generator what was already covered.
type HistoryEntry struct {
	Step     string `json:"step"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Index    int    `json:"index"`
}

// Session is the durable record of one teacher-facing dialogue.
// CurrentQuestion carries the text of the question awaiting an answer;
// dynamic sessions need it to record history, and fixed sessions keep it
// populated for symmetry.
type Session struct {
	SessionID       string            `gorm:"primaryKey;size:36" json:"sessionId"`
	UserID          string            `gorm:"size:64;not null;index" json:"userId"`
	Status          SessionStatus     `gorm:"size:20;not null;index" json:"status"`
	Mode            SessionMode       `gorm:"size:20;not null" json:"mode"`
	CurrentStep     string            `gorm:"size:50" json:"currentStep"`
	CurrentQuestion string            `gorm:"type:text" json:"currentQuestion,omitempty"`
	QuestionsAsked  int               `gorm:"not null;default:0" json:"questionsAsked"`
	MaxQuestions    int               `gorm:"not null;default:5" json:"maxQuestions"`
	CollectedData   map[string]string `gorm:"serializer:json" json:"collectedData"`
	History         []HistoryEntry    `gorm:"serializer:json" json:"history"`
	LessonPlanID    *int64            `json:"lessonPlanId"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func (Session) TableName() string {
	return "lesson_creation_sessions"
}

// LessonPlan is a finalized, immutable teaching plan owned by a user.
// It may outlive the session that produced it.
type LessonPlan struct {
	ID            int64                `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        string               `gorm:"size:64;not null;index" json:"userId"`
	Title         string               `gorm:"size:255;not null" json:"title"`
	Subject       string               `gorm:"size:100;not null" json:"subject"`
	Grade         string               `gorm:"size:100;not null" json:"grade"`
	Objectives    []string             `gorm:"serializer:json" json:"objectives"`
	Outline       string               `gorm:"type:text" json:"outline"`
	WebSearchInfo datatypes.JSON       `json:"webSearchInfo,omitempty"`
	Activities    []LessonPlanActivity `gorm:"foreignKey:LessonPlanID;constraint:OnDelete:CASCADE" json:"activities"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

func (LessonPlan) TableName() string {
	return "lesson_plans"
}

// LessonPlanActivity is one ordered segment of a lesson plan.
type LessonPlanActivity struct {
	ID              int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	LessonPlanID    int64  `gorm:"not null;index" json:"lessonPlanId"`
	Name            string `gorm:"size:255;not null" json:"name"`
	Description     string `gorm:"type:text" json:"description"`
	DurationMinutes int    `gorm:"not null" json:"durationMinutes"`
	OrderIndex      int    `gorm:"not null" json:"orderIndex"`
}

func (LessonPlanActivity) TableName() string {
	return "lesson_plan_activities"
}

// WebSearchInfo records whether and how web search grounded a plan.
type WebSearchInfo struct {
	UsedWebSearch bool     `json:"usedWebSearch"`
	Query         string   `json:"query,omitempty"`
	TotalSources  int      `json:"totalSources,omitempty"`
	Sources       []string `json:"sources,omitempty"`
}

// SetWebSearchInfo marshals info into the plan's JSON column.
func (p *LessonPlan) SetWebSearchInfo(info WebSearchInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return err
	}
	p.WebSearchInfo = datatypes.JSON(raw)
	return nil
}

// GetWebSearchInfo decodes the plan's search metadata. The second return
// is false when no metadata was recorded.
func (p *LessonPlan) GetWebSearchInfo() (WebSearchInfo, bool) {
	if len(p.WebSearchInfo) == 0 {
		return WebSearchInfo{}, false
	}
	var info WebSearchInfo
	if err := json.Unmarshal(p.WebSearchInfo, &info); err != nil {
		return WebSearchInfo{}, false
	}
	return info, true
}

// LLMRequestEvent is an audit row for one outbound LLM call.
type LLMRequestEvent struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Provider     string    `gorm:"size:100"`
	Model        string    `gorm:"size:100"`
	Purpose      string    `gorm:"size:50;index"`
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	CostUSD      float64
	Success      bool
	ErrorMessage string    `gorm:"type:text"`
	CreatedAt    time.Time
}

func (LLMRequestEvent) TableName() string {
	return "llm_request_events"
}
