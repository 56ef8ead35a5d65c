package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	verbosity "github.com/verbosity-dev/verbosity"
	"github.com/verbosity-dev/verbosity/internal/config"
	"github.com/verbosity-dev/verbosity/pkg/dom"
	"github.com/verbosity-dev/verbosity/pkg/middleware"
	"github.com/verbosity-dev/verbosity/pkg/router"
	"github.com/verbosity-dev/verbosity/pkg/server"
)

func serveCmd(configPath *string) *cobra.Command {
	var (
		port     int
		host     string
		logLevel string
		jsonLogs bool
		envFile  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the application",
		Long: `Serve the application declared in verbosity.json.

Every path serves the shell page; the browser client connects
over WebSocket and the server mounts the matching view.

Settings from verbosity.json can be overridden by VERBOSITY_HOST,
VERBOSITY_PORT and VERBOSITY_METRICS, read from the environment
or the --env-file, and then by flags.

Examples:
  verbosity serve
  verbosity serve --port=8080
  verbosity serve -c ./site --log-level=debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if err := loadEnvFile(envFile); err != nil {
				return err
			}
			if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(logLevel, jsonLogs)
			srv, err := newServer(cfg, logger)
			if err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "Serving %s on http://%s", cfg.Name, cfg.Address())
			return srv.Run(serveContext(cmd.Context()))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from verbosity.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from verbosity.json)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&jsonLogs, "json", false, "Write logs as JSON")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file to load if present")

	return cmd
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func newLogger(level string, json bool) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newServer builds a server hosting cfg's application.
func newServer(cfg *config.Config, logger *slog.Logger) (*server.Server, error) {
	serverCfg := &server.ServerConfig{
		Address: cfg.Address(),
		Title:   cfg.Name,
		Mounts:  []dom.Element{navMount, dom.Element(cfg.Router.MountID)},
		SessionConfig: &server.SessionConfig{
			ReadTimeout:       cfg.ReadTimeout(),
			WriteTimeout:      cfg.WriteTimeout(),
			HeartbeatInterval: cfg.HeartbeatInterval(),
		},
	}

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithAppOptions(verbosity.WithRouterOptions(
			router.WithTracer(otel.Tracer(cfg.Router.TracerName)),
		)),
		server.WithMiddleware(middleware.OpenTelemetry(
			middleware.WithTracerName(cfg.Router.TracerName),
			middleware.WithFilter(func(r *http.Request) bool {
				return r.URL.Path != cfg.Metrics.Path
			}),
		)),
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		serverCfg.MetricsPath = cfg.Metrics.Path
		opts = append(opts,
			server.WithPrometheus(reg, cfg.Metrics.Namespace),
			server.WithMiddleware(middleware.Prometheus(
				middleware.WithRegistry(reg),
				middleware.WithNamespace(cfg.Metrics.Namespace),
			)),
		)
	}

	factory := func(s *server.Session, appOpts ...verbosity.Option) (*verbosity.App, error) {
		return newApp(cfg, s, s, appOpts...), nil
	}
	return server.New(serverCfg, factory, opts...)
}

// serveContext is the context serve runs under when cobra provides none.
func serveContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
