// Package client implements the conversation controller used by the
// terminal chat command: it keeps the visible transcript, appends a
// placeholder turn before each request, fills it as chunks arrive, and
// replaces it with an error message on failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/reece-davies/trampoline-coach-ai/internal/types"
)

// State is the controller's submission state.
type State int

// Controller states. Only one submission may be in flight, so any state
// other than Idle rejects new submissions.
const (
	StateIdle State = iota
	StateSending
	StateStreaming
)

// Turn is one visible transcript entry.
type Turn struct {
	Role string // "user" or "model"
	Text string
	// Failed marks a model turn that was overwritten with an error message.
	Failed bool
}

// Controller drives one conversation against a running server.
// It is not safe for concurrent use; the chat REPL is single-threaded.
type Controller struct {
	serverURL  string
	httpClient *http.Client
	transcript []Turn
	state      State
}

// New creates a controller for the server at the given base URL.
func New(serverURL string) *Controller {
	return &Controller{
		serverURL:  strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{},
		state:      StateIdle,
	}
}

// State returns the current submission state.
func (c *Controller) State() State {
	return c.state
}

// Transcript returns a copy of the visible transcript.
func (c *Controller) Transcript() []Turn {
	out := make([]Turn, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Send submits one message and streams the reply into the transcript.
// onChunk, when non-nil, observes each fragment as it arrives. On failure
// the placeholder turn is overwritten with an error message and the error
// is returned; the controller is Idle again either way.
func (c *Controller) Send(ctx context.Context, message string, onChunk func(string)) error {
	if c.state != StateIdle {
		return fmt.Errorf("a submission is already in flight")
	}
	c.state = StateSending
	defer func() { c.state = StateIdle }()

	// History carries the turns completed before this submission: neither
	// the in-flight question nor the placeholder appended below.
	history := make([]types.GeminiMessage, 0, len(c.transcript))
	for _, turn := range c.transcript {
		history = append(history, types.GeminiMessage{
			Role:  turn.Role,
			Parts: []types.MessagePart{{Text: turn.Text}},
		})
	}

	c.transcript = append(c.transcript, Turn{Role: "user", Text: message})
	c.transcript = append(c.transcript, Turn{Role: "model"})
	placeholder := &c.transcript[len(c.transcript)-1]

	if err := c.stream(ctx, message, history, placeholder, onChunk); err != nil {
		placeholder.Text = fmt.Sprintf("Sorry, I encountered an error: %v", err)
		placeholder.Failed = true
		return err
	}
	return nil
}

func (c *Controller) stream(ctx context.Context, message string, history []types.GeminiMessage, placeholder *Turn, onChunk func(string)) error {
	body, err := json.Marshal(types.ChatRequest{Message: message, History: history})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errText, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("API error: %d %s - %s", resp.StatusCode, resp.Status, strings.TrimSpace(string(errText)))
	}

	c.state = StateStreaming

	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			placeholder.Text += chunk
			if onChunk != nil {
				onChunk(chunk)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("stream interrupted: %w", err)
		}
	}
}
