// Package api exposes the quality-gate engine and artifact store over
// HTTP REST endpoints.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/hugo-lorenzo-mato/docgate/internal/checklist"
	"github.com/hugo-lorenzo-mato/docgate/internal/history"
	"github.com/hugo-lorenzo-mato/docgate/internal/logging"
	"github.com/hugo-lorenzo-mato/docgate/internal/store"
)

// Server wires the domain components into an HTTP handler.
type Server struct {
	router    chi.Router
	checklist *checklist.Loader
	store     *store.Store
	history   *history.DB
	logger    *logging.Logger
	origins   []string
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *logging.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithHistory attaches an execution history database. Without one,
// validation requests are still served but not recorded.
func WithHistory(db *history.DB) ServerOption {
	return func(s *Server) {
		s.history = db
	}
}

// WithAllowedOrigins sets the CORS origin allowlist.
func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		s.origins = origins
	}
}

// NewServer creates an API server over the given loader and store.
func NewServer(loader *checklist.Loader, st *store.Store, opts ...ServerOption) *Server {
	s := &Server{
		checklist: loader,
		store:     st,
		logger:    logging.NewNop(),
		origins:   []string{"http://localhost:*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.setupRouter()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	r.Use(c.Handler)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/checklists", s.handleListChecklists)
		r.Get("/checklists/{name}", s.handleGetChecklist)
		r.Post("/validate", s.handleValidate)

		r.Get("/artifacts", s.handleListArtifacts)
		r.Get("/artifacts/*", s.handleGetArtifact)
		r.Put("/artifacts/*", s.handlePutArtifact)
		r.Delete("/artifacts/*", s.handleDeleteArtifact)

		r.Get("/meta", s.handleGetMeta)
		r.Put("/phase", s.handlePutPhase)

		r.Get("/history", s.handleGetHistory)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String())
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
