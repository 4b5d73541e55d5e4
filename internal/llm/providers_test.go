package llm

import (
	"context"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"google.golang.org/genai"
)

func TestNewAnthropicProvider(t *testing.T) {
	if _, err := NewAnthropicProvider(AnthropicConfig{}, 0); err == nil {
		t.Fatal("expected error for missing API key")
	}

	p, err := NewAnthropicProvider(AnthropicConfig{
		APIKey: "test-key",
		Model:  "claude-haiku",
	}, 30*time.Second)
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}
	if got := p.ModelID(); got != "claude-haiku-4-5-20251001" {
		t.Errorf("ModelID() = %q, want resolved haiku ID", got)
	}
}

func TestNewGeminiProvider(t *testing.T) {
	ctx := context.Background()

	if _, err := NewGeminiProvider(ctx, GeminiConfig{}, 0); err == nil {
		t.Fatal("expected error for missing API key")
	}

	p, err := NewGeminiProvider(ctx, GeminiConfig{
		APIKey: "test-key",
		Model:  "gemini-flash",
	}, 30*time.Second)
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	if got := p.ModelID(); got != "gemini-2.5-flash" {
		t.Errorf("ModelID() = %q, want gemini-2.5-flash", got)
	}
}

func TestGeminiTruncation(t *testing.T) {
	truncated := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: "MAX_TOKENS"}},
	}
	if !geminiTruncated(truncated) {
		t.Error("MAX_TOKENS finish should read as truncated")
	}
	if got := mapGeminiStopReason(truncated); got != "max_tokens" {
		t.Errorf("stop reason = %q, want max_tokens", got)
	}

	done := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: "STOP"}},
	}
	if geminiTruncated(done) {
		t.Error("STOP finish should not read as truncated")
	}

	empty := &genai.GenerateContentResponse{}
	if got := mapGeminiStopReason(empty); got != "end" {
		t.Errorf("stop reason for empty response = %q, want end", got)
	}
}

func TestExtractAnthropicContent_StripsFences(t *testing.T) {
	msg := &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: "```json\n{\"subject\": \"生物\"}\n```"},
		},
	}

	content, err := extractAnthropicContent(msg)
	if err != nil {
		t.Fatalf("extractAnthropicContent: %v", err)
	}
	if string(content) != `{"subject": "生物"}` {
		t.Errorf("content = %s, want fences stripped", content)
	}

	if _, err := extractAnthropicContent(&anthropic.Message{}); err == nil {
		t.Fatal("expected error for message without text content")
	}
}
