// Package llm wraps the chat-completion provider behind a small interface so the
// analysis flow can be driven by a real client, an instrumented one, or a test double.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the provider answers without any content.
var ErrEmptyCompletion = errors.New("no analysis returned from model")

// Roles used in Message.Role.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes a single completion call.
type Request struct {
	// Purpose labels the call in logs and metrics ("structured", "section", "synthesis").
	Purpose     string
	Messages    []Message
	Temperature float64
	// MaxTokens caps the completion length. 0 uses the client default.
	MaxTokens int
	// JSON asks the provider for a JSON object response.
	JSON bool
}

// TokenUsage reports provider token accounting.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the first choice of a completion.
type Response struct {
	Content      string
	Model        string
	FinishReason string
	Usage        TokenUsage
}

// Client issues completion calls.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}
