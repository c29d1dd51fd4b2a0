package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/reece-davies/trampoline-coach-ai/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamServer streams the given fragments for every chat request and
// records the request bodies it saw.
func streamServer(t *testing.T, fragments []string, requests *[]types.ChatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if requests != nil {
			*requests = append(*requests, req)
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		flusher := w.(http.Flusher)
		for _, fragment := range fragments {
			_, _ = w.Write([]byte(fragment))
			flusher.Flush()
		}
	}))
}

func TestController_SendAppendsTurnsAndStreams(t *testing.T) {
	ts := streamServer(t, []string{"A Rudy is ", "a front somersault."}, nil)
	defer ts.Close()

	c := New(ts.URL)
	var chunks []string
	err := c.Send(context.Background(), "What is a Rudy?", func(chunk string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)

	transcript := c.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, Turn{Role: "user", Text: "What is a Rudy?"}, transcript[0])
	assert.Equal(t, "model", transcript[1].Role)
	assert.Equal(t, "A Rudy is a front somersault.", transcript[1].Text)
	assert.False(t, transcript[1].Failed)
	assert.NotEmpty(t, chunks)
	assert.Equal(t, StateIdle, c.State())
}

func TestController_HistoryExcludesInFlightTurns(t *testing.T) {
	var requests []types.ChatRequest
	ts := streamServer(t, []string{"reply"}, &requests)
	defer ts.Close()

	c := New(ts.URL)
	require.NoError(t, c.Send(context.Background(), "first question", nil))
	require.NoError(t, c.Send(context.Background(), "second question", nil))

	require.Len(t, requests, 2)
	assert.Empty(t, requests[0].History)

	// Second request carries the completed first exchange, nothing more.
	require.Len(t, requests[1].History, 2)
	assert.Equal(t, "user", requests[1].History[0].Role)
	assert.Equal(t, "first question", requests[1].History[0].Text())
	assert.Equal(t, "model", requests[1].History[1].Role)
	assert.Equal(t, "reply", requests[1].History[1].Text())
	assert.Equal(t, "second question", requests[1].Message)
}

func TestController_ErrorStatusOverwritesPlaceholder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"provider error 429: quota exceeded"}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	err := c.Send(context.Background(), "What is a Rudy?", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	transcript := c.Transcript()
	require.Len(t, transcript, 2)
	assert.True(t, transcript[1].Failed)
	assert.Contains(t, transcript[1].Text, "Sorry, I encountered an error")
	assert.Equal(t, StateIdle, c.State())
}

func TestController_NetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close() // nothing listening

	c := New(ts.URL)
	err := c.Send(context.Background(), "hello", nil)
	require.Error(t, err)

	transcript := c.Transcript()
	require.Len(t, transcript, 2)
	assert.True(t, transcript[1].Failed)
}

func TestController_RejectsConcurrentSubmission(t *testing.T) {
	c := New("http://localhost:0")
	c.state = StateStreaming

	err := c.Send(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in flight")
	assert.Empty(t, c.Transcript())
}

func TestController_PartialStreamKeepsSentBytes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		flusher := w.(http.Flusher)
		_, _ = w.Write([]byte("partial "))
		flusher.Flush()
		panic(http.ErrAbortHandler)
	}))
	defer ts.Close()

	c := New(ts.URL)
	err := c.Send(context.Background(), "What is a Rudy?", nil)
	require.Error(t, err)

	transcript := c.Transcript()
	require.Len(t, transcript, 2)
	assert.True(t, transcript[1].Failed)
	assert.Contains(t, transcript[1].Text, "Sorry, I encountered an error")
}
