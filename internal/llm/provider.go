package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single point of contact with a chat-completion backend.
// The teaching services never talk to a vendor SDK directly; they build a
// Request and receive structured JSON through this interface.
type Provider interface {
	// Generate sends one conversation turn to the LLM and waits for the
	// response. When the request carries a Schema, the provider asks for
	// native structured output and the returned Content is the validated
	// JSON document. Transport and rate-limit failures surface as the
	// typed errors in errors.go.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the model this provider is configured to use.
	ModelID() string
}

// Request describes a single chat-completion call.
type Request struct {
	// System sets the assistant's role, e.g. "experienced lesson designer".
	System string

	// Messages is the conversation to send. Question generation and plan
	// synthesis are both single-turn, so this usually holds one user message.
	Messages []Message

	// Schema, when set, requests JSON output conforming to the given
	// JSON Schema. When nil the response is free text.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature in [0,1]. Plan synthesis uses 0.7, question generation 0.8.
	Temperature float64
}

// Message is one turn of the conversation sent to the provider.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names and defines the JSON document expected back from the LLM.
type Schema struct {
	// Name identifies the schema, kebab-case ("lesson-plan", "follow-up-question").
	Name string

	// Description tells the LLM what the document represents.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the provider's answer to a Request.
type Response struct {
	// Content is the generated output. With a Schema in the request this is
	// the schema-validated JSON document; otherwise raw text.
	Content json.RawMessage

	// Usage reports token consumption for this call.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token counts for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
