package llm

import (
	"context"
	"fmt"
	"io"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// StartChat opens a chat session with the fixed behavioral contract and the
// given prior turns.
func (c *GeminiClient) StartChat(history []Turn) Session {
	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(c.config.Temperature)
	if c.config.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(c.config.SystemInstruction)},
		}
	}

	cs := model.StartChat()
	cs.History = make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		cs.History = append(cs.History, &genai.Content{
			Role:  string(turn.Role),
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}

	return &geminiSession{cs: cs}
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

type geminiSession struct {
	cs *genai.ChatSession
}

func (s *geminiSession) SendStream(ctx context.Context, message string) Stream {
	return &geminiStream{iter: s.cs.SendMessageStream(ctx, genai.Text(message))}
}

type geminiStream struct {
	iter *genai.GenerateContentResponseIterator
}

// Next returns the next non-empty text fragment, io.EOF at completion, or a
// *ProviderError on upstream failure.
func (s *geminiStream) Next() (string, error) {
	for {
		resp, err := s.iter.Next()
		if err == iterator.Done {
			return "", io.EOF
		}
		if err != nil {
			return "", asProviderError(err)
		}
		if text := responseText(resp); text != "" {
			return text, nil
		}
		// Chunks without text parts (e.g. safety metadata) are skipped.
	}
}

// responseText joins the text parts of a streamed response chunk.
func responseText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var out string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	return out
}
