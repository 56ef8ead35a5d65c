package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/verbosity-dev/verbosity/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "verbosity.json"

	// TOMLConfigFileName is the TOML alternative to ConfigFileName, used
	// when no JSON config exists.
	TOMLConfigFileName = "verbosity.toml"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultMountID is the element routed views mount into.
	DefaultMountID = "page-mount"

	// DefaultMaxRedirects bounds guard redirect chains.
	DefaultMaxRedirects = 16

	// DefaultTracerName is the OpenTelemetry tracer name for navigation spans.
	DefaultTracerName = "github.com/verbosity-dev/verbosity/pkg/router"

	// DefaultMetricsNamespace is the Prometheus namespace.
	DefaultMetricsNamespace = "verbosity"

	// DefaultMetricsPath is where metrics are served when enabled.
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete verbosity.json configuration.
type Config struct {
	// Name is the project name, used as the page title.
	Name string `json:"name,omitempty" toml:"name,omitempty"`

	// Server contains HTTP and session settings.
	Server ServerConfig `json:"server,omitempty" toml:"server,omitempty"`

	// Router contains navigation settings.
	Router RouterConfig `json:"router,omitempty" toml:"router,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty" toml:"metrics,omitempty"`

	// Routes declares the application's routes.
	Routes []RouteConfig `json:"routes,omitempty" toml:"routes,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains server settings. Durations are Go duration strings.
type ServerConfig struct {
	// Host is the interface to listen on.
	Host string `json:"host,omitempty" toml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" toml:"port,omitempty"`

	// ReadTimeout is how long a session waits for a client message or pong.
	ReadTimeout string `json:"readTimeout,omitempty" toml:"readTimeout,omitempty"`

	// WriteTimeout bounds each message write.
	WriteTimeout string `json:"writeTimeout,omitempty" toml:"writeTimeout,omitempty"`

	// HeartbeatInterval is the time between pings.
	HeartbeatInterval string `json:"heartbeatInterval,omitempty" toml:"heartbeatInterval,omitempty"`
}

// RouterConfig contains navigation settings.
type RouterConfig struct {
	// MountID is the element id routed views mount into.
	MountID string `json:"mountId,omitempty" toml:"mountId,omitempty"`

	// MaxRedirects bounds guard redirect chains.
	MaxRedirects int `json:"maxRedirects,omitempty" toml:"maxRedirects,omitempty"`

	// TracerName names the OpenTelemetry tracer.
	TracerName string `json:"tracerName,omitempty" toml:"tracerName,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled turns on session and router metrics.
	Enabled bool `json:"enabled,omitempty" toml:"enabled,omitempty"`

	// Namespace is the metric namespace.
	Namespace string `json:"namespace,omitempty" toml:"namespace,omitempty"`

	// Path is where metrics are served.
	Path string `json:"path,omitempty" toml:"path,omitempty"`
}

// RouteConfig declares one route.
type RouteConfig struct {
	// Pattern is the route pattern, e.g. "/users/:id".
	Pattern string `json:"pattern" toml:"pattern"`

	// Title is the heading of the route's page.
	Title string `json:"title,omitempty" toml:"title,omitempty"`

	// Redirect, when set, makes the route always redirect there.
	Redirect string `json:"redirect,omitempty" toml:"redirect,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              DefaultHost,
			Port:              DefaultPort,
			ReadTimeout:       "60s",
			WriteTimeout:      "10s",
			HeartbeatInterval: "30s",
		},
		Router: RouterConfig{
			MountID:      DefaultMountID,
			MaxRedirects: DefaultMaxRedirects,
			TracerName:   DefaultTracerName,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
			Path:      DefaultMetricsPath,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for verbosity.json, then verbosity.toml, in the directory.
func Load(dir string) (*Config, error) {
	tomlPath := filepath.Join(dir, TOMLConfigFileName)
	if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); os.IsNotExist(err) {
		if _, err := os.Stat(tomlPath); err == nil {
			return LoadFile(tomlPath)
		}
	}
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from a specific file path. Files ending in
// .toml are parsed as TOML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E400").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				WithSuggestion("Create verbosity.json or pass --config")
		}
		return nil, errors.New("E401").Wrap(err)
	}

	cfg := New()
	if filepath.Ext(path) == ".toml" {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E401").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid TOML")
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E401").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E401").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E401").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in zero values cleared by the loaded file.
func (c *Config) applyDefaults() {
	defaults := New()
	if c.Name == "" {
		c.Name = "verbosity"
	}
	if c.Server.Host == "" {
		c.Server.Host = defaults.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Server.Port
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = defaults.Server.WriteTimeout
	}
	if c.Server.HeartbeatInterval == "" {
		c.Server.HeartbeatInterval = defaults.Server.HeartbeatInterval
	}
	if c.Router.MountID == "" {
		c.Router.MountID = defaults.Router.MountID
	}
	if c.Router.MaxRedirects == 0 {
		c.Router.MaxRedirects = defaults.Router.MaxRedirects
	}
	if c.Router.TracerName == "" {
		c.Router.TracerName = defaults.Router.TracerName
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = defaults.Metrics.Namespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = defaults.Metrics.Path
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E402").
			WithDetailf("port %d is out of range", c.Server.Port)
	}

	durations := []struct {
		field, value string
	}{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
		{"server.heartbeatInterval", c.Server.HeartbeatInterval},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		if v, err := time.ParseDuration(d.value); err != nil || v <= 0 {
			return errors.New("E401").
				WithDetailf("%s: %q is not a positive duration", d.field, d.value).
				WithSuggestion(`Use a Go duration such as "30s" or "2m"`)
		}
	}

	if c.Router.MaxRedirects < 0 {
		return errors.New("E401").WithDetail("router.maxRedirects must not be negative")
	}

	for i, r := range c.Routes {
		if r.Pattern == "" || r.Pattern[0] != '/' {
			return errors.New("E401").
				WithDetailf("routes[%d]: pattern %q must start with /", i, r.Pattern)
		}
		if r.Redirect != "" && r.Redirect[0] != '/' {
			return errors.New("E401").
				WithDetailf("routes[%d]: redirect %q must start with /", i, r.Redirect)
		}
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ReadTimeout returns the parsed server read timeout, or zero if unset.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout)
}

// WriteTimeout returns the parsed server write timeout, or zero if unset.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout)
}

// HeartbeatInterval returns the parsed heartbeat interval, or zero if unset.
func (c *Config) HeartbeatInterval() time.Duration {
	return parseDuration(c.Server.HeartbeatInterval)
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, TOMLConfigFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing verbosity.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E400").
				WithDetail("No verbosity.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// Environment variables read by ApplyEnv.
const (
	EnvHost    = "VERBOSITY_HOST"
	EnvPort    = "VERBOSITY_PORT"
	EnvMetrics = "VERBOSITY_METRICS"
)

// ApplyEnv overrides server and metrics settings from environment variables.
// lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvHost); ok && v != "" {
		c.Server.Host = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("E402").WithDetailf("%s=%q is not a number", EnvPort, v)
		}
		c.Server.Port = port
	}
	if v, ok := lookup(EnvMetrics); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("E401").WithDetailf("%s=%q is not a boolean", EnvMetrics, v)
		}
		c.Metrics.Enabled = enabled
	}
	return c.Validate()
}
