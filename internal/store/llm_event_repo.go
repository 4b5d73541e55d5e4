package store

import (
	"context"

	"gorm.io/gorm"
)

// LLMRequestEventData captures one outbound LLM call for auditing.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	CostUSD      float64
	Success      bool
	ErrorMessage string
}

// LLMEventRepo appends LLM request audit events.
type LLMEventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

type llmEventRepo struct {
	db *gorm.DB
}

func (r *llmEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	event := LLMRequestEvent{
		Provider:     data.Provider,
		Model:        data.Model,
		Purpose:      data.Purpose,
		InputTokens:  data.InputTokens,
		OutputTokens: data.OutputTokens,
		LatencyMs:    data.LatencyMs,
		CostUSD:      data.CostUSD,
		Success:      data.Success,
		ErrorMessage: data.ErrorMessage,
	}
	return r.db.WithContext(ctx).Create(&event).Error
}
