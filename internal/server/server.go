package server

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vyrodovalexey/devproxy/internal/config"
	"github.com/vyrodovalexey/devproxy/internal/middleware"
	"github.com/vyrodovalexey/devproxy/internal/observability"
	"github.com/vyrodovalexey/devproxy/internal/proxy"
	"github.com/vyrodovalexey/devproxy/internal/router"
)

// metricsPath is served locally and never enters the proxy pipeline.
const metricsPath = "/metrics"

// Server is the devproxy HTTP server.
type Server struct {
	cfg       config.ServerConfig
	holder    *RuleHolder
	forwarder proxy.Forwarder
	logger    observability.Logger
	server    *http.Server
	addr      atomic.Value
	running   atomic.Bool
}

// Option is a functional option for configuring the server.
type Option func(*Server)

// WithLogger sets the logger for the server.
func WithLogger(logger observability.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithForwarder sets the forwarder used for proxied requests.
func WithForwarder(forwarder proxy.Forwarder) Option {
	return func(s *Server) {
		s.forwarder = forwarder
	}
}

// New creates a server for the given configuration and initial rule
// set.
func New(cfg config.ServerConfig, rules *router.RuleSet, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		holder: NewRuleHolder(rules),
		logger: observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.forwarder == nil {
		s.forwarder = proxy.NewTransport(proxy.WithTransportLogger(s.logger))
	}

	return s
}

// Rules returns the holder for the active rule set, for live reloads.
func (s *Server) Rules() *RuleHolder {
	return s.holder
}

// Handler builds the full middleware chain.
func (s *Server) Handler() http.Handler {
	pipeline := middleware.Chain(
		s.fallbackHandler(),
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logging(s.logger),
		middleware.Metrics(),
		middleware.Proxy(s.holder, s.forwarder, s.logger),
	)

	mux := http.NewServeMux()
	mux.Handle(metricsPath, observability.MetricsHandler())
	mux.Handle("/", pipeline)
	return mux
}

// fallbackHandler is the local handler proxied requests fall through
// to: a static file server when a directory is configured, 404
// otherwise.
func (s *Server) fallbackHandler() http.Handler {
	if s.cfg.Static != "" {
		return http.FileServer(http.Dir(s.cfg.Static))
	}
	return http.NotFoundHandler()
}

// Start begins serving. It returns once the listener is bound; the
// accept loop runs until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}

	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		s.running.Store(false)
		return err
	}
	s.addr.Store(ln.Addr().String())

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	s.logger.Info("devproxy listening",
		observability.String("addr", ln.Addr().String()),
		observability.Int("rules", s.holder.Len()),
		observability.String("static", s.cfg.Static),
	)

	go func() {
		if serveErr := s.server.Serve(ln); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("server stopped", observability.Error(serveErr))
		}
	}()

	return nil
}

// Addr returns the bound listen address, or "" before Start.
func (s *Server) Addr() string {
	if v, ok := s.addr.Load().(string); ok {
		return v
	}
	return ""
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	s.logger.Info("shutting down devproxy")
	return s.server.Shutdown(ctx)
}
