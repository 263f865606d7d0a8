package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vreconcile/internal/watch"
	"github.com/vango-dev/vreconcile/pkg/middleware"
	"github.com/vango-dev/vreconcile/pkg/reconcile"
	"github.com/vango-dev/vreconcile/pkg/scenario"
)

// Server serves scenario reports.
type Server struct {
	config     *ServerConfig
	source     scenario.Source
	runner     *scenario.Runner
	logger     *slog.Logger
	tracer     trace.Tracer
	registry   *prometheus.Registry
	hub        *Hub
	upgrader   websocket.Upgrader
	handler    http.Handler
	httpServer *http.Server
	engineOpts []reconcile.Option
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry sets the registry metrics are registered with and served
// from. The default is a fresh registry with the Go and process
// collectors.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithTracer sets the tracer for request and pass spans. The default is the
// global provider's.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) {
		s.tracer = t
	}
}

// WithEngineOptions appends options for the engines scenario runs create.
func WithEngineOptions(opts ...reconcile.Option) Option {
	return func(s *Server) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// New creates a server over source. A nil config uses DefaultServerConfig.
func New(source scenario.Source, config *ServerConfig, opts ...Option) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	s := &Server{
		config: config,
		source: source,
		logger: slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	engineOpts := []reconcile.Option{
		reconcile.WithMetrics(reconcile.NewMetrics(
			reconcile.WithRegistry(s.registry),
			reconcile.WithNamespace(config.MetricsNamespace),
		)),
	}
	if s.tracer != nil {
		engineOpts = append(engineOpts, reconcile.WithTracer(s.tracer))
	}
	s.runner = scenario.NewRunner(
		scenario.WithLogger(s.logger),
		scenario.WithEngineOptions(append(engineOpts, s.engineOpts...)...),
	)

	s.hub = NewHub(s.logger)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  config.ReadBufferSize,
		WriteBufferSize: config.WriteBufferSize,
		CheckOrigin:     config.CheckOrigin,
	}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Tracing(middleware.WithTracer(s.tracer), middleware.WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
	})))
	r.Use(middleware.Prometheus(
		middleware.WithRegistry(s.registry),
		middleware.WithNamespace(s.config.MetricsNamespace),
	))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Route("/scenarios", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Get("/{name}", s.handleRun)
		r.Get("/{name}/html", s.handleHTML)
		r.Get("/{name}/ws", s.handleStream)
	})
	r.Get("/events", s.hub.HandleWebSocket(s.upgrader))
	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Hub returns the change feed.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Watch polls dir and announces scenario changes on the event feed until
// ctx is done.
func (s *Server) Watch(ctx context.Context, dir string) error {
	w := watch.New(watch.Config{Dir: dir})
	w.OnChange(func(c watch.Change) {
		s.logger.Info("scenario changed", "scenario", c.Name, "op", c.Op.String())
		s.hub.Broadcast(Notice{Type: c.Op.String(), Scenario: c.Name})
	})
	return w.Start(ctx)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes event feeds and gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.hub.Close()
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}
