package server

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/basecamp/visit-recorder/internal/metrics"
	"github.com/basecamp/visit-recorder/internal/store"
)

const (
	shutdownTimeout = 10 * time.Second
)

type Server struct {
	config          *Config
	visits          store.VisitLog
	clock           func() time.Time
	health          *StoreHealth
	healthCheck     *StoreHealthCheck
	httpListener    net.Listener
	httpServer      *http.Server
	metricsListener net.Listener
	metricsServer   *http.Server
}

func NewServer(config *Config, visits store.VisitLog) *Server {
	return &Server{
		config: config,
		visits: visits,
		clock:  time.Now,
		health: NewStoreHealth(),
	}
}

func (s *Server) Start() error {
	err := s.startMetricsServer()
	if err != nil {
		return err
	}

	err = s.startHTTPServer()
	if err != nil {
		s.stopMetricsServer(context.Background())
		return err
	}

	s.startHealthCheck()

	slog.Info("Server started", "http", s.HttpPort(), "store", s.config.Store, "render", s.config.Render)
	return nil
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.healthCheck.Close()
	s.httpServer.Shutdown(ctx)
	s.stopMetricsServer(ctx)

	err := s.visits.Close()
	if err != nil {
		slog.Error("Failed to close store", "error", err)
	}

	slog.Info("Server stopped")
}

func (s *Server) HttpPort() int {
	return s.httpListener.Addr().(*net.TCPAddr).Port
}

func (s *Server) MetricsPort() int {
	if s.metricsListener == nil {
		return 0
	}
	return s.metricsListener.Addr().(*net.TCPAddr).Port
}

// Private

func (s *Server) startHTTPServer() error {
	httpAddr := fmt.Sprintf("%s:%d", s.config.Bind, s.config.HttpPort)

	handler := s.buildHandler()

	l, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return err
	}
	s.httpListener = l
	s.httpServer = &http.Server{
		Addr:    httpAddr,
		Handler: handler,
	}

	go s.httpServer.Serve(s.httpListener)

	return nil
}

func (s *Server) startMetricsServer() error {
	if s.config.MetricsPort == 0 {
		return nil
	}

	metricsAddr := fmt.Sprintf("%s:%d", s.config.Bind, s.config.MetricsPort)

	l, err := net.Listen("tcp", metricsAddr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics.Enable())

	s.metricsListener = l
	s.metricsServer = &http.Server{
		Addr:    metricsAddr,
		Handler: mux,
	}

	go s.metricsServer.Serve(s.metricsListener)

	slog.Info("Metrics enabled", "port", s.MetricsPort())
	return nil
}

func (s *Server) stopMetricsServer(ctx context.Context) {
	if s.metricsServer == nil {
		return
	}

	s.metricsServer.Shutdown(ctx)
	metrics.Disable()
}

func (s *Server) startHealthCheck() {
	interval := cmp.Or(s.config.HealthCheckInterval, DefaultHealthCheckInterval)
	timeout := cmp.Or(s.config.HealthCheckTimeout, DefaultHealthCheckTimeout)

	s.healthCheck = NewStoreHealthCheck(s.health, s.visits, interval, timeout)
}

func (s *Server) buildHandler() http.Handler {
	audience := ""
	if s.config.AudienceEnabled {
		audience = LoadAudienceLabel(s.config.AudienceFile)
	}

	recorder := NewVisitRecorder(s.visits, VisitRecorderOptions{
		Render:          s.config.Render,
		TimestampFormat: s.config.TimestampFormat,
		Audience:        audience,
		FutureEnabled:   s.config.FutureEnabled,
		Atomic:          s.config.Atomic,
		Debug:           s.config.Debug,
		Clock:           s.clock,
	})

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", s.route("home", recorder))
	mux.Handle("GET /up", s.route("up", s.health))
	if s.config.FutureEnabled {
		mux.Handle("GET /future", s.route("future", NewFutureHandler(s.config.Render)))
	}

	var handler http.Handler

	handler = mux
	handler = WithLoggingMiddleware(slog.Default(), s.config.HttpPort, handler)
	handler = WithRequestIDMiddleware(handler)

	return handler
}

func (s *Server) route(name string, handler http.Handler) http.Handler {
	return WithMetricsMiddleware(name, WithErrorPageMiddleware(handler))
}
