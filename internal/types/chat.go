// Package types provides the wire types shared between the HTTP server and
// its clients.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string          `json:"message" validate:"required,min=1"`
	History []GeminiMessage `json:"history" validate:"omitempty,dive"`
}

// GeminiMessage is one prior conversation turn in the provider's wire
// format: a role plus one or more text parts.
type GeminiMessage struct {
	Role  string        `json:"role" validate:"required,oneof=user model"`
	Parts []MessagePart `json:"parts" validate:"required,min=1,dive"`
}

// MessagePart carries a fragment of a turn's text.
type MessagePart struct {
	Text string `json:"text"`
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Text returns the message's parts joined into a single string.
func (m *GeminiMessage) Text() string {
	if len(m.Parts) == 1 {
		return m.Parts[0].Text
	}
	var b strings.Builder
	for _, part := range m.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// NewUserMessage builds a single-part user turn.
func NewUserMessage(text string) GeminiMessage {
	return GeminiMessage{Role: "user", Parts: []MessagePart{{Text: text}}}
}

// NewModelMessage builds a single-part model turn.
func NewModelMessage(text string) GeminiMessage {
	return GeminiMessage{Role: "model", Parts: []MessagePart{{Text: text}}}
}
