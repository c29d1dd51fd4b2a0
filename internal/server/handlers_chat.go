package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/reece-davies/trampoline-coach-ai/internal/grounding"
	"github.com/reece-davies/trampoline-coach-ai/internal/llm"
	"github.com/reece-davies/trampoline-coach-ai/internal/types"
)

// handleChat answers one chat message, streaming the model's reply as a
// chunked text/plain body.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), "Invalid request: "+err.Error())
		return
	}

	ctx := r.Context()

	result, err := s.matcher.Match(ctx, req.Message)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	stream, err := NewStreamWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Grounding gate: a question that matches nothing and asks for no broad
	// analysis gets the fixed refusal without ever reaching the model.
	if err := grounding.Gate(result); err != nil {
		var gateErr *grounding.ErrNoRelevantSkills
		if errors.As(err, &gateErr) {
			if writeErr := stream.WriteChunk(gateErr.Refusal()); writeErr != nil {
				log.Printf("Error writing refusal: %v", writeErr)
			}
			return
		}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	grounded := grounding.Compose(result.Skills, req.Message)

	// History carries only literal user/assistant text; the grounded message
	// exists for this request alone.
	session := s.llmClient.StartChat(historyTurns(req.History))
	fragments := session.SendStream(ctx, grounded)

	for {
		text, err := fragments.Next()
		if err == io.EOF {
			// Make sure even an empty reply produces a valid 200 response.
			if !stream.Started() {
				_ = stream.WriteChunk("")
			}
			return
		}
		if err != nil {
			// Before the first byte the failure can still become a JSON 500.
			// Mid-stream, the bytes already sent stand; terminate the body so
			// the client observes the truncation.
			if !stream.Started() {
				s.errorResponse(w, HTTPStatus(err), err.Error())
			} else {
				log.Printf("Provider error mid-stream: %v", err)
				panic(http.ErrAbortHandler)
			}
			return
		}
		if err := stream.WriteChunk(text); err != nil {
			// Client went away; abandon upstream fragment production.
			log.Printf("Client disconnected mid-stream: %v", err)
			return
		}
	}
}

// historyTurns maps wire-format history onto bridge turns.
func historyTurns(history []types.GeminiMessage) []llm.Turn {
	turns := make([]llm.Turn, 0, len(history))
	for i := range history {
		turns = append(turns, llm.Turn{
			Role: llm.Role(history[i].Role),
			Text: history[i].Text(),
		})
	}
	return turns
}
