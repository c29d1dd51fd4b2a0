// Package server provides the HTTP API for the trampoline coach assistant.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/reece-davies/trampoline-coach-ai/internal/llm"
	"github.com/reece-davies/trampoline-coach-ai/internal/prompts"
	"github.com/reece-davies/trampoline-coach-ai/internal/skills"
)

//go:embed web
var webFiles embed.FS

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	store      *skills.Store
	matcher    *skills.Matcher
	llmClient  llm.Client
	dbSource   *skills.DBSource
}

// Config holds server configuration.
type Config struct {
	Port        int
	APIKey      string
	Dataset     string
	DatabaseURL string
	Model       string
	Temperature float32
}

// New creates a new server instance. The skill dataset is loaded eagerly so
// an unreadable backing resource fails startup instead of the first request.
func New(ctx context.Context, cfg Config) (*Server, error) {
	s := &Server{}

	// Pick the skill source: Postgres when a database URL is configured,
	// the CSV file otherwise.
	var source skills.Source
	if cfg.DatabaseURL != "" {
		dbSource, err := skills.NewDBSource(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s.dbSource = dbSource
		source = dbSource
	} else {
		source = skills.FileSource{Path: cfg.Dataset}
	}

	s.store = skills.NewStore(source)
	s.matcher = skills.NewMatcher(s.store)

	loaded, err := s.store.Load(ctx)
	if err != nil {
		s.closeDB()
		return nil, fmt.Errorf("failed to load skill dataset: %w", err)
	}
	log.Printf("Loaded %d skills", len(loaded))

	llmConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		llmConfig.Model = cfg.Model
	}
	if cfg.Temperature > 0 {
		llmConfig.Temperature = cfg.Temperature
	}
	llmConfig.SystemInstruction = prompts.SystemInstruction()

	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		s.closeDB()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	s.llmClient = client

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /health", s.handleHealth)

	webRoot, err := fs.Sub(webFiles, "web")
	if err != nil {
		return nil, fmt.Errorf("failed to mount web assets: %w", err)
	}
	mux.Handle("GET /", http.FileServerFS(webRoot))

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     s.withLogging(s.withCORS(mux)),
		ReadTimeout: 30 * time.Second,
		// No WriteTimeout: model streams can legitimately run for minutes.
		IdleTimeout: 60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.llmClient.Close(); err != nil {
		log.Printf("Error closing LLM client: %v", err)
	}
	s.closeDB()
	log.Println("Server stopped")
	return nil
}

func (s *Server) closeDB() {
	if s.dbSource != nil {
		s.dbSource.Close()
	}
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging with a per-request ID.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()[:8]
		start := time.Now()
		log.Printf("[%s] %s %s %s", requestID, r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s completed in %v", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
