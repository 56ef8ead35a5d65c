package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	verbosity "github.com/verbosity-dev/verbosity"
	"github.com/verbosity-dev/verbosity/pkg/router"
)

// Server is the HTTP/WebSocket server hosting one App per browser session.
type Server struct {
	config   *ServerConfig
	factory  AppFactory
	appOpts  []verbosity.Option
	sessions *SessionManager
	upgrader websocket.Upgrader

	metrics    *Metrics
	gatherer   prometheus.Gatherer
	middleware []func(http.Handler) http.Handler

	shell      []byte
	httpServer *http.Server
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Session loggers derive from it.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAppOptions adds options passed to every App the factory builds.
func WithAppOptions(opts ...verbosity.Option) Option {
	return func(s *Server) {
		s.appOpts = append(s.appOpts, opts...)
	}
}

// WithMiddleware adds HTTP middleware, run after request id, real IP and
// panic recovery.
func WithMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(s *Server) {
		s.middleware = append(s.middleware, mw...)
	}
}

// WithPrometheus registers session and router metrics with reg and serves
// reg at ServerConfig.MetricsPath when that is set.
func WithPrometheus(reg *prometheus.Registry, namespace string) Option {
	return func(s *Server) {
		if namespace == "" {
			namespace = "verbosity"
		}
		s.metrics = NewMetrics(WithNamespace(namespace), WithRegistry(reg))
		routerMetrics := router.NewMetrics(router.WithNamespace(namespace), router.WithRegistry(reg))
		s.appOpts = append(s.appOpts, verbosity.WithRouterOptions(router.WithMetrics(routerMetrics)))
		s.gatherer = reg
	}
}

// New creates a Server that builds each session's App with factory.
func New(config *ServerConfig, factory AppFactory, opts ...Option) (*Server, error) {
	if factory == nil {
		return nil, errors.New("server: nil AppFactory")
	}
	config = config.withDefaults()

	s := &Server{
		config:  config,
		factory: factory,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")

	shell, err := renderShell(config.Title, config.Mounts)
	if err != nil {
		return nil, fmt.Errorf("server: rendering shell: %w", err)
	}
	s.shell = shell

	s.sessions = NewSessionManager(s.metrics, s.logger)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  config.ReadBufferSize,
		WriteBufferSize: config.WriteBufferSize,
		CheckOrigin:     config.CheckOrigin,
	}
	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.middleware...)

	r.Get(WebSocketPath, s.HandleWebSocket)
	r.Get(ThinClientPath, s.serveThinClient)
	r.Head(ThinClientPath, s.serveThinClient)

	if s.config.MetricsPath != "" && s.gatherer != nil {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.With(handlers.CompressHandler).Get("/*", s.serveShell)
	r.With(handlers.CompressHandler).Head("/*", s.serveShell)
	return r
}

// HandleWebSocket upgrades the connection and starts a session. The App is
// built when the client says hello.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(conn, s.config.SessionConfig, s.factory, s.logger)
	sess.metrics = s.metrics
	sess.appOpts = s.appOpts
	s.sessions.Add(sess)

	sess.logger.Info("session started",
		"remote_addr", r.RemoteAddr,
		"request_id", middleware.GetReqID(r.Context()))
	sess.Start()
}

// Run starts the HTTP server and blocks until ctx is done, an interrupt or
// SIGTERM arrives, or the server fails.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.config.Address,
		Handler: s.Handler(),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes all sessions and gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.sessions.CloseAll()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}
