package server

import (
	"fmt"
	"net/http"
)

// StreamWriter writes a chunked plain-text response, flushing after every
// chunk so fragments reach the client as they arrive.
type StreamWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
}

// NewStreamWriter creates a stream writer over the response. The response
// headers are not written until the first chunk.
func NewStreamWriter(w http.ResponseWriter) (*StreamWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}
	return &StreamWriter{w: w, flusher: flusher}, nil
}

// WriteChunk writes one text fragment and flushes it to the client.
func (s *StreamWriter) WriteChunk(text string) error {
	if !s.started {
		s.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		s.w.Header().Set("Cache-Control", "no-cache")
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}
	if _, err := fmt.Fprint(s.w, text); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Started reports whether any chunk has been written. Once true, the status
// code is already on the wire and errors can no longer become a 500 body.
func (s *StreamWriter) Started() bool {
	return s.started
}
