// Package server exposes the view events and facade metrics to browsers:
// a websocket stream of every bus event plus a Prometheus scrape endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"parttrack/modules/platform/config"
	"parttrack/modules/platform/eventbus"
	"parttrack/modules/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP server of the websocket bridge
type Server struct {
	cfg      config.ServerConfig
	hub      *WSHub
	gatherer prometheus.Gatherer
	log      *logger.Logger
	started  time.Time
}

// NewServer creates a server. A nil gatherer disables the metrics route.
func NewServer(cfg *config.ServerConfig, bus *eventbus.Bus, gatherer prometheus.Gatherer, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	c := config.DefaultServerConfig()
	if cfg != nil {
		if cfg.Listen != "" {
			c.Listen = cfg.Listen
		}
		if cfg.MetricsPath != "" {
			c.MetricsPath = cfg.MetricsPath
		}
		if cfg.WSPath != "" {
			c.WSPath = cfg.WSPath
		}
	}
	return &Server{
		cfg:      *c,
		hub:      NewWSHub(bus, log.With("ws")),
		gatherer: gatherer,
		log:      log,
		started:  time.Now(),
	}
}

// Hub returns the websocket hub
func (s *Server) Hub() *WSHub { return s.hub }

// Handler returns the routes of the bridge
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET "+s.cfg.WSPath, s.hub.ServeWS)
	if s.gatherer != nil {
		mux.Handle("GET "+s.cfg.MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

// Serve runs the hub and the HTTP server on l until ctx is done
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	hubCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.hub.Run(hubCtx)

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()
	s.log.Info("bridge listening on %s (ws %s, metrics %s)", l.Addr(), s.cfg.WSPath, s.cfg.MetricsPath)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		return srv.Shutdown(shutdownCtx)
	}
}

// ListenAndServe listens on the configured address and calls Serve
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"clients": s.hub.ClientCount(),
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}
