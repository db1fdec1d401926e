// Package server provides the HTTP REST API for the CV builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/render"
	"github.com/jonathan/cv-builder/internal/server/middleware"
	"github.com/jonathan/cv-builder/internal/session"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	machine    *session.Machine
	renderer   render.Renderer
	client     llm.Client
	memStore   *session.MemoryStore // nil when Postgres-backed
	database   *db.DB               // nil when in-memory
	jwtService *JWTService          // nil when auth is disabled
	sweepEvery time.Duration
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	QuestionCap int
	BatchSize   int
	SessionTTL  time.Duration
}

// New creates a new server instance. Sessions live in Postgres when a
// database URL is configured and in memory otherwise. Authentication is
// enabled when JWT_SECRET is set: session routes then require the access
// token issued at session creation.
func New(cfg Config) (*Server, error) {
	client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	s := &Server{
		client:     client,
		renderer:   render.NewBuiltinRenderer(),
		sweepEvery: time.Minute,
	}

	var store session.Store
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(context.Background()); err != nil {
			database.Close()
			return nil, err
		}
		s.database = database
		store = database
	} else {
		s.memStore = session.NewMemoryStore(cfg.SessionTTL)
		store = s.memStore
	}

	s.machine = session.NewMachine(llm.NewService(client), store, session.MachineConfig{
		QuestionCap: cfg.QuestionCap,
		BatchSize:   cfg.BatchSize,
	})

	if os.Getenv("JWT_SECRET") != "" {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
	}

	// Create HTTP server
	mux := s.routes()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for extraction and finalization
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.Handle("GET /sessions/{id}", s.protect(s.handleGetSession))
	mux.Handle("DELETE /sessions/{id}", s.protect(s.handleDeleteSession))
	mux.Handle("POST /sessions/{id}/questions", s.protect(s.handleNextQuestions))
	mux.Handle("POST /sessions/{id}/answers", s.protect(s.handleSubmitAnswer))
	mux.Handle("POST /sessions/{id}/finalize", s.protect(s.handleFinalize))
	mux.Handle("GET /sessions/{id}/document", s.protect(s.handleGetDocument))
	return mux
}

// Start begins listening for requests and blocks until shutdown. The listener,
// the expired-session janitor and the signal watcher run as one errgroup so
// a failure in any of them tears the server down cleanly.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(s.sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case now := <-ticker.C:
				if n := s.sweepExpired(now); n > 0 {
					log.Printf("Removed %d expired sessions", n)
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if s.database != nil {
		s.database.Close()
	}
	if s.client != nil {
		_ = s.client.Close()
	}
	log.Println("Server stopped")
	return err
}

// sweepExpired removes idle sessions from whichever store is active
func (s *Server) sweepExpired(now time.Time) int {
	if s.memStore != nil {
		return s.memStore.Sweep(now)
	}
	if s.database != nil {
		sweepCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		n, err := s.database.DeleteExpired(sweepCtx, 24*time.Hour)
		if err != nil {
			log.Printf("Error sweeping expired sessions: %v", err)
			return 0
		}
		return int(n)
	}
	return 0
}

// protect wraps a handler with token validation when auth is enabled
func (s *Server) protect(handler http.HandlerFunc) http.Handler {
	if s.jwtService == nil {
		return handler
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(handler)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
