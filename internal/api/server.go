package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kago96/character-worker/internal/broker"
	"github.com/kago96/character-worker/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	store   store.Store
	publish broker.PublishFunc
	planTTL time.Duration
	router  chi.Router
	port    int
}

func NewServer(s store.Store, publish broker.PublishFunc, planTTL time.Duration, port int) *Server {
	srv := &Server{
		store:   s,
		publish: publish,
		planTTL: planTTL,
		port:    port,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "POST only")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", srv.handleHealth)
		r.Post("/characters", srv.handleCreateCharacter)
		r.Post("/scenes/validate", srv.handleValidateScenes)
		r.Post("/timeline", srv.handleBuildTimeline)
		r.Post("/engine/prepare", srv.handlePrepareEngine)
		r.Post("/generate", srv.handleGenerate)
	})

	srv.router = r
	return srv
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("starting HTTP API", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if err := s.store.Ping(r.Context()); err != nil {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  status,
		"service": "character-worker",
	})
}

// notify emits a downstream event. Publish failures never fail the request.
func (s *Server) notify(subject string, data []byte) {
	if s.publish == nil {
		return
	}
	if err := s.publish(subject, data); err != nil {
		slog.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
