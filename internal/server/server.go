// Package server exposes a built tile-type registry over a read-only HTTP
// API.
//
//	GET /healthz
//	GET /tiletypes
//	GET /tiletypes/{name}
//	GET /tiletypes/{name}/dot
//	GET /normalize?tile=&x=&y=&wire=
//	GET /classify?wire=
//
// Responses are JSON except the DOT export. Errors are reported as
// {"code": ..., "error": ...} with a status derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nexusfab/tiletopo/pkg/pipeline"
)

// Server serves one pipeline result.
type Server struct {
	result *pipeline.Result
	logger *log.Logger
	router chi.Router
}

// New creates a server for result. A nil logger uses log.Default().
func New(result *pipeline.Result, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{result: result, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/tiletypes", func(r chi.Router) {
		r.Get("/", s.handleTileTypes)
		r.Get("/{name}", s.handleTileType)
		r.Get("/{name}/dot", s.handleTileTypeDOT)
	})
	r.Get("/normalize", s.handleNormalize)
	r.Get("/classify", s.handleClassify)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr,
			"family", s.result.Registry.Family,
			"device", s.result.Registry.Device)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
