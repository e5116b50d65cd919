// Package server exposes barcode rendering over HTTP.
//
// Routes:
//
//	GET /healthz            liveness and build version
//	GET /v1/formats         supported symbologies
//	GET /v1/barcode.svg     SVG image; props come from the query string
//	GET /v1/barcode.json    geometry as JSON
//	GET /v1/live            WebSocket; each text frame is a JSON props object
//	GET /metrics            Prometheus metrics
//
// Render defaults come from the loaded configuration and can be swapped at
// runtime with [Server.UpdateConfig].
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/barsvg/internal/config"
	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/sink"
	"github.com/matzehuels/barsvg/pkg/symbology"
)

// Server renders barcodes for HTTP and WebSocket clients.
type Server struct {
	logger   *log.Logger
	registry *symbology.Registry

	mu  sync.RWMutex
	cfg config.Config
}

// New creates a server from cfg. A nil logger discards output.
func New(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{
		logger:   logger,
		registry: symbology.Builtin(),
		cfg:      cfg,
	}
}

// UpdateConfig swaps render defaults and limits. Listen address and
// timeouts only take effect on the next ListenAndServe.
func (s *Server) UpdateConfig(cfg config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.logger.Info("configuration reloaded", "format", cfg.Render.Format, "height", cfg.Render.Height)
}

func (s *Server) config() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// defaults returns the current render defaults.
func (s *Server) defaults() barcode.Props {
	return s.config().Render.Props()
}

func (s *Server) svgOptions() []sink.SVGOption {
	r := s.config().Render
	return []sink.SVGOption{sink.WithFontSize(r.FontSize), sink.WithFontFamily(r.FontFamily)}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	cfg := s.config()

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(corsMiddleware(cfg.Server.CORSOrigin))
	r.Use(metricsMiddleware(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/formats", s.handleFormats)
		r.Get("/barcode.svg", s.handleSVG)
		r.Get("/barcode.json", s.handleJSON)
		r.Get("/live", s.handleLive)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	cfg := s.config().Server
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadTimeout:       cfg.ReadTimeout(),
		ReadHeaderTimeout: cfg.ReadTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
