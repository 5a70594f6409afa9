// Package llm provides interfaces and implementations for LLM-backed coaching.
package llm

import (
	"context"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is the model transport the coach speaks through. A nil Client is
// valid everywhere coaching is optional.
type Client interface {
	// Chat sends messages to the model and returns the free-text response.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatJSON sends messages and parses the response as JSON into result.
	// The coach uses it to obtain structured suggestion lists.
	ChatJSON(ctx context.Context, messages []Message, result any) error
}
