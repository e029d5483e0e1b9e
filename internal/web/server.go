// Package web wires the HTTP API around the recognition engine.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rollmark/rollmark/internal/recognition"
	"github.com/rollmark/rollmark/internal/storage"
	"github.com/rollmark/rollmark/internal/web/handlers"
	"github.com/rollmark/rollmark/internal/web/middleware"
)

// Deps are the collaborators the API serves.
type Deps struct {
	Pipeline   *recognition.Pipeline
	Registry   *recognition.Registry
	Encoder    handlers.Encoder
	Students   storage.StudentStore
	Attendance storage.AttendanceStore
}

// Server represents the web server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
}

// NewServer creates a new web server.
func NewServer(host string, port int, deps Deps) *Server {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(30 * time.Second))
	r.Use(middleware.CORS())

	s := &Server{router: r}
	s.setupRoutes(deps)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes(deps Deps) {
	recognizeHandler := handlers.NewRecognizeHandler(deps.Pipeline, deps.Encoder)
	studentsHandler := handlers.NewStudentsHandler(deps.Registry, deps.Students, deps.Encoder)
	attendanceHandler := handlers.NewAttendanceHandler(deps.Attendance)

	s.router.Get("/api/v1/health", handlers.HealthCheck)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/recognize", recognizeHandler.Recognize)
		r.Post("/students", studentsHandler.Enroll)
		r.Get("/students", studentsHandler.List)
		r.Get("/attendance", attendanceHandler.List)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down web server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
