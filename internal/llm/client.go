// Package llm provides the chat-session abstraction over LLM providers and
// its Gemini implementation.
package llm

import (
	"context"
	"fmt"
)

// Role identifies the author of a conversation turn, using the provider's
// wire vocabulary.
type Role string

// Conversation roles.
const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one prior exchange in a conversation: literal user or assistant
// text only, never the internal grounding block.
type Turn struct {
	Role Role
	Text string
}

// Client creates chat sessions against an LLM provider.
type Client interface {
	// StartChat opens a fresh session carrying the fixed behavioral contract
	// (system instruction, temperature) and the given prior turns.
	StartChat(history []Turn) Session
	// Close releases any resources held by the client.
	Close() error
}

// Session is a single model conversation. Sessions are created per request
// and not reused.
type Session interface {
	// SendStream submits a message and returns the model's reply as an
	// ordered stream of text fragments. Each call is one-shot; the returned
	// stream is not restartable.
	SendStream(ctx context.Context, message string) Stream
}

// Stream yields model output fragments in emission order. Next returns
// io.EOF once the model signals completion, or a *ProviderError on upstream
// failure.
type Stream interface {
	Next() (string, error)
}

// NewClient creates a client for the configured provider.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
}
