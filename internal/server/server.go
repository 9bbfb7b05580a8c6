package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"navmenu/internal/metric"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = 8080

	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the grace period for in-flight requests on shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxHeaderBytes caps request header size.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB
)

// ReadinessChecker reports whether the server can answer menu requests.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

type route struct {
	pattern string
	handler http.Handler
}

// Server serves the menu API, probes and metrics.
type Server struct {
	port            int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	maxHeaderBytes  int

	routes   []route
	registry *prometheus.Registry
	requests *metric.RequestCounter
	log      *zap.Logger
	mux      *http.ServeMux

	mu      sync.RWMutex
	running bool
	addr    net.Addr
}

// Option is a functional option for configuring the Server.
type Option func(*Server)

// WithPort sets the port number. Zero picks a free port.
func WithPort(port int) Option {
	return func(s *Server) { s.port = port }
}

// WithReadTimeout sets the maximum duration for reading the entire request.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) { s.readTimeout = d }
}

// WithWriteTimeout sets the maximum duration before timing out writes of the response.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) { s.writeTimeout = d }
}

// WithIdleTimeout sets the keep-alive idle timeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) { s.idleTimeout = d }
}

// WithShutdownTimeout sets the maximum duration to wait for graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// WithLogger sets the server logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRegistry replaces the per-server prometheus registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithHandler registers a handler for pattern. Requests are counted by pattern.
func WithHandler(pattern string, handler http.Handler) Option {
	return func(s *Server) {
		s.routes = append(s.routes, route{pattern: pattern, handler: handler})
	}
}

// WithSimpleHealth adds GET /healthz that always answers "ok".
func WithSimpleHealth() Option {
	return WithHandler("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
}

// WithReadiness adds GET /readyz backed by checker.
func WithReadiness(checker ReadinessChecker) Option {
	return WithHandler("GET /readyz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := checker.Ready(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(err.Error()))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
}

// WithPrometheusMetrics exposes the server registry at GET /metrics.
func WithPrometheusMetrics() Option {
	return func(s *Server) {
		s.routes = append(s.routes, route{pattern: "GET /metrics"})
	}
}

// New creates a server. Routes are mounted once all options are applied.
func New(opts ...Option) *Server {
	s := &Server{
		port:            DefaultPort,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
		registry:        prometheus.NewRegistry(),
		log:             zap.NewNop(),
		mux:             http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.requests = metric.NewRequestCounter(s.registry)

	for _, r := range s.routes {
		h := r.handler
		if h == nil {
			h = metric.Handler(s.registry)
		}
		s.mux.Handle(r.pattern, s.instrument(r.pattern, h))
	}

	s.log.Info("server initialized",
		zap.Int("port", s.port),
		zap.Duration("read_timeout", s.readTimeout),
		zap.Duration("write_timeout", s.writeTimeout),
	)

	return s
}

// Registry returns the registry served at /metrics.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// IsRunning reports whether the server is accepting connections.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the bound address while running.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Serve listens and blocks until ctx is canceled, then shuts down gracefully.
// It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", s.port),
		Handler:        s.mux,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		ErrorLog:       zap.NewStdLog(s.log),
	}

	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.log.Info("starting server", zap.String("addr", listener.Addr().String()))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.mu.Lock()
		s.running = true
		s.addr = listener.Addr()
		s.mu.Unlock()

		defer func() {
			s.mu.Lock()
			s.running = false
			s.addr = nil
			s.mu.Unlock()
		}()

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.log.Info("shutting down server", zap.Duration("grace_period", s.shutdownTimeout))
		start := time.Now()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("server shutdown error", zap.Error(err))
		}

		s.log.Info("server shutdown complete", zap.Duration("duration", time.Since(start)))
		return nil
	})

	return g.Wait()
}

// statusWriter remembers the response code for the request counter.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.requests.Observe(pattern, sw.code)
	})
}
