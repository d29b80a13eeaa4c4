// Package server exposes a publish target over HTTP so that recipes can be
// published to a remote recipr instance.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/VoxDroid/recipr/internal/logging"
	"github.com/VoxDroid/recipr/internal/publish"
)

// Config holds server configuration.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// AllowedOrigins enables CORS for browser clients when non-empty.
	AllowedOrigins []string
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{Addr: ":8080", ReadTimeout: 30 * time.Second, WriteTimeout: 30 * time.Second}
}

// Server stores published scripts through a publish.Publisher.
type Server struct {
	cfg     Config
	router  *chi.Mux
	pub     publish.Publisher
	httpSrv *http.Server
}

// New creates a Server backed by pub.
func New(cfg Config, pub publish.Publisher) *Server {
	s := &Server{cfg: cfg, router: chi.NewRouter(), pub: pub}
	s.router.Use(middleware.Recoverer)
	if len(cfg.AllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
	s.setupRoutes()
	s.httpSrv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.health)
	s.router.Route("/recipes", func(r chi.Router) {
		r.Post("/publish", s.publishRecipe)
	})
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured address until the server is shut down.
func (s *Server) Start() error {
	logging.Info().Str("addr", s.cfg.Addr).Msg("publish server listening")
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"healthy": true})
}

func (s *Server) publishRecipe(w http.ResponseWriter, r *http.Request) {
	var body publish.WireRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, publish.ErrCodeInvalidRequest, "invalid request body")
		return
	}
	req := publish.Request{
		DirectoryName: strings.TrimSpace(body.DirectoryName),
		FileName:      strings.TrimSpace(body.FileName),
		Overwrite:     body.Overwrite,
	}
	if req.DirectoryName == "" || req.FileName == "" {
		writeError(w, http.StatusBadRequest, publish.ErrCodeInvalidRequest, "directory name and file name are required")
		return
	}

	res, err := s.pub.Publish(r.Context(), req, body.Commands)
	var verr *publish.ValidationError
	switch {
	case err == nil:
		logging.Info().Str("path", res.FilePath).Bool("overwrite", req.Overwrite).Msg("stored recipe")
		writeJSON(w, http.StatusCreated, res)
	case errors.Is(err, publish.ErrFileExists):
		writeError(w, http.StatusConflict, publish.ErrCodeFileExists, "File already exists")
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, publish.ErrCodeInvalidRequest, verr.Error())
	default:
		logging.Error().Err(err).Msg("store recipe")
		writeError(w, http.StatusInternalServerError, publish.ErrCodeInternalError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, publish.ErrorResponse{Error: publish.ErrorDetail{Code: code, Message: message}})
}
