package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an
// audit row: purpose, latency, token usage and estimated cost.
type LoggingProvider struct {
	inner  Provider
	name   string
	events store.LLMEventRepo
}

// WithLogging wraps a Provider with request auditing. name is the
// configured provider name ("openrouter", "anthropic", ...).
func WithLogging(p Provider, name string, events store.LLMEventRepo) Provider {
	return &LoggingProvider{inner: p, name: name, events: events}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.name,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if c := LookupCost(resp.Model); c != nil {
			data.CostUSD = c.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)
		}
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Auditing failures must not fail the request itself.
	if logErr := l.events.AppendLLMRequest(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record LLM request event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
