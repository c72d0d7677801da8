// Package health exposes the stateless liveness endpoint. It carries
// no session state and is never coupled to bot internals.
package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clipfetch/clipfetch/core/buildinfo"
	"github.com/clipfetch/clipfetch/core/logger"
)

// Config holds liveness endpoint settings.
type Config struct {
	Enabled bool   `yaml:"enabled" envconfig:"HEALTH_ENABLED"`
	Listen  string `yaml:"listen" envconfig:"HEALTH_LISTEN"`
	Port    int    `yaml:"port" envconfig:"HEALTH_PORT"`
}

// Server serves the liveness routes.
type Server struct {
	srv *http.Server
}

// NewServer builds the HTTP server around a chi router.
func NewServer(cfg Config) *Server {
	port := cfg.Port
	if port == 0 {
		port = 8080
	}

	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Bot is running!")
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","version":%q}`, buildinfo.Version)
	})

	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Listen, port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves in a background goroutine and returns immediately.
func (s *Server) Start() {
	go func() {
		logger.Info(logger.Background(), "health", "listen.start",
			slog.String("addr", s.srv.Addr),
		)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(logger.Background(), "health", "listen.fail",
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
