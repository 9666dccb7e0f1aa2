// Package web provides the HTTP server and routing.
package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/blockedby/hiretrack/internal/web/handlers"
)

// Config holds server configuration
type Config struct {
	Port int

	// rate limiting for application submissions
	SubmitRatePerSec float64
	SubmitBurst      int
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	config     *Config
	listener   net.Listener
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config, jobRoles *handlers.JobRolesHandler, applications *handlers.ApplicationsHandler) *Server {
	router := chi.NewRouter()

	srv := &Server{
		router: router,
		config: cfg,
	}

	srv.setupMiddleware()
	srv.setupRoutes(jobRoles, applications)

	return srv
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes(jobRoles *handlers.JobRolesHandler, applications *handlers.ApplicationsHandler) {
	// Health endpoint
	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			_ = err // Client disconnected
		}
	})

	submitLimiter := NewIPRateLimiter(s.config.SubmitRatePerSec, s.config.SubmitBurst)

	s.router.Route("/api/job-roles", func(r chi.Router) {
		r.Get("/", jobRoles.List)
		r.Post("/", jobRoles.Create)
		r.Get("/status/{status}", jobRoles.ListByStatus)
		r.Get("/{id}", jobRoles.GetByID)
		r.Put("/{id}", jobRoles.Update)
		r.Delete("/{id}", jobRoles.Delete)
		r.Get("/{id}/applications", applications.ListByJobRole)
	})

	s.router.Route("/api/applications", func(r chi.Router) {
		r.With(submitLimiter.Middleware).Post("/", applications.Create)
		r.Get("/user/{userId}", applications.ListByUser)
		r.Get("/{id}", applications.GetByID)
		r.Put("/{id}/hire", applications.Hire)
		r.Put("/{id}/reject", applications.Reject)
		r.Delete("/{id}", applications.Delete)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s.httpServer.Serve(listener)
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// BaseURL returns the server's base URL
func (s *Server) BaseURL() string {
	if s.listener != nil {
		return fmt.Sprintf("http://%s", s.listener.Addr().String())
	}
	return fmt.Sprintf("http://localhost:%d", s.config.Port)
}

// Router exposes the chi router for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
