package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/vyrodovalexey/avrouter/internal/config"
	"github.com/vyrodovalexey/avrouter/internal/middleware"
	"github.com/vyrodovalexey/avrouter/internal/observability"
	"github.com/vyrodovalexey/avrouter/internal/router"
	"github.com/vyrodovalexey/avrouter/internal/util"
)

// Server serves HTTP traffic through the routing engine.
type Server struct {
	cfg     *config.Config
	logger  observability.Logger
	metrics *observability.Metrics
	router  *router.Router

	httpServer    *http.Server
	metricsServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger observability.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics sets the request metrics. When unset, request metrics
// are not recorded.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a server: it builds the router from the configured route
// table and assembles the middleware chain. Registration errors are
// returned here, before any traffic is accepted.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, util.NewConfigError("", "nil configuration")
	}

	s := &Server{
		cfg:    cfg,
		logger: observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.router = router.New(
		router.WithLogger(s.logger),
		router.WithCacheCapacity(cfg.Cache.Capacity),
	)

	if err := registerRoutes(s.router, cfg); err != nil {
		return nil, err
	}

	handler := s.dispatch()
	handler = middleware.Logging(s.logger)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.Recovery(s.logger)(handler)

	s.httpServer = &http.Server{
		Addr:              cfg.Listener.Address,
		Handler:           handler,
		ReadTimeout:       cfg.Listener.ReadTimeout.Duration(),
		ReadHeaderTimeout: cfg.Listener.ReadHeaderTimeout.Duration(),
		WriteTimeout:      cfg.Listener.WriteTimeout.Duration(),
	}

	if cfg.Listener.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", observability.MetricsHandler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})

		s.metricsServer = &http.Server{
			Addr:              cfg.Listener.MetricsAddress,
			Handler:           mux,
			ReadTimeout:       cfg.Listener.ReadTimeout.Duration(),
			ReadHeaderTimeout: cfg.Listener.ReadHeaderTimeout.Duration(),
			WriteTimeout:      cfg.Listener.WriteTimeout.Duration(),
		}
	}

	return s, nil
}

// registerRoutes turns the route table into registration calls. This
// is the publish point between the registration and serving phases:
// the router is fully populated before Start returns control.
func registerRoutes(r *router.Router, cfg *config.Config) error {
	for _, rt := range cfg.Routes {
		handler := newStaticHandler(rt.Response)
		for _, method := range rt.Methods {
			var err error
			switch {
			case rt.Exact != "":
				err = r.AddExactRoute(method, rt.Exact, handler)
			case rt.Pattern != "":
				err = r.AddRoute(method, rt.Pattern, handler)
			case rt.Prefix != "":
				err = r.AddPrefixRoute(method, rt.Prefix, handler)
			case rt.Contains != "":
				err = r.AddContainsRoute(method, rt.Contains, handler)
			default:
				err = util.NewConfigError("routes", "no match field set")
			}
			if err != nil {
				return util.WrapError(err, "route "+rt.Name)
			}
		}
	}

	for _, fb := range cfg.Fallbacks {
		handler := newStaticHandler(fb.Response)
		for _, method := range fb.Methods {
			if err := r.SetFallback(method, handler); err != nil {
				return util.WrapError(err, "fallback")
			}
		}
	}

	return nil
}

// Router returns the underlying routing engine.
func (s *Server) Router() *router.Router {
	return s.router
}

// Handler returns the assembled handler chain, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving. It returns once the listeners are running.
func (s *Server) Start(_ context.Context) error {
	stats := s.router.Stats()
	s.logger.Info("starting server",
		observability.String("address", s.cfg.Listener.Address),
		observability.Int("exact_routes", stats.ExactRoutes),
		observability.Int("templated_routes", stats.TemplatedRoutes),
		observability.Int("prefix_routes", stats.PrefixRoutes),
		observability.Int("contains_routes", stats.ContainsRoutes),
		observability.Int("fallbacks", stats.Fallbacks),
	)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", observability.Error(err))
		}
	}()

	if s.metricsServer != nil {
		s.logger.Info("starting metrics server",
			observability.String("address", s.cfg.Listener.MetricsAddress))
		go func() {
			if err := s.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("metrics server error", observability.Error(err))
			}
		}()
	}

	return nil
}

// Stop gracefully shuts the listeners down.
func (s *Server) Stop(ctx context.Context) error {
	var errs []error

	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	s.logger.Info("server stopped")

	return errors.Join(errs...)
}
