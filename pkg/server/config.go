package server

import (
	"net/http"
	"time"

	"github.com/verbosity-dev/verbosity/pkg/dom"
	"golang.org/x/time/rate"
)

// SessionConfig holds configuration for individual sessions.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a message or pong from the
	// client. Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between heartbeat pings. It must be
	// shorter than ReadTimeout. Default: 30 seconds.
	HeartbeatInterval time.Duration

	// MaxEventQueue is the size of the event channel buffer.
	// Default: 64.
	MaxEventQueue int

	// MessageRate is how many client frames per second a session accepts
	// on average; MessageBurst is how many it accepts at once. Frames over
	// the limit are answered with an E303 error and dropped. A negative
	// MessageRate disables the limit. Default: 20 per second, bursts of 40.
	MessageRate  float64
	MessageBurst int
}

// limiter returns the client frame limiter for c.
func (c *SessionConfig) limiter() *rate.Limiter {
	if c.MessageRate < 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(c.MessageRate), c.MessageBurst)
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxEventQueue:     64,
		MessageRate:       20,
		MessageBurst:      40,
	}
}

// Clone returns a copy of the SessionConfig.
func (c *SessionConfig) Clone() *SessionConfig {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// ServerConfig holds configuration for the HTTP/WebSocket server.
type ServerConfig struct {
	// Address is the TCP address to listen on. Default: ":8080".
	Address string

	// Title is the shell page title.
	Title string

	// Mounts are the element ids the shell page provides, in document
	// order. Default: dom.PageMount.
	Mounts []dom.Element

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the Origin header of WebSocket upgrades.
	// Default: same-origin only (gorilla/websocket behavior).
	CheckOrigin func(r *http.Request) bool

	// SessionConfig is applied to every session.
	// Default: DefaultSessionConfig().
	SessionConfig *SessionConfig

	// MetricsPath, when set, serves Prometheus metrics at that path.
	MetricsPath string

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:         ":8080",
		Title:           "verbosity",
		Mounts:          []dom.Element{dom.PageMount},
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		SessionConfig:   DefaultSessionConfig(),
		ShutdownTimeout: 30 * time.Second,
	}
}

// withDefaults returns a copy of c with unset fields filled in.
func (c *ServerConfig) withDefaults() *ServerConfig {
	defaults := DefaultServerConfig()
	if c == nil {
		return defaults
	}
	cfg := *c
	if cfg.Address == "" {
		cfg.Address = defaults.Address
	}
	if cfg.Title == "" {
		cfg.Title = defaults.Title
	}
	if len(cfg.Mounts) == 0 {
		cfg.Mounts = defaults.Mounts
	}
	if cfg.ReadBufferSize == 0 {
		cfg.ReadBufferSize = defaults.ReadBufferSize
	}
	if cfg.WriteBufferSize == 0 {
		cfg.WriteBufferSize = defaults.WriteBufferSize
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}

	session := defaults.SessionConfig
	if cfg.SessionConfig != nil {
		session = cfg.SessionConfig.Clone()
		if session.ReadTimeout == 0 {
			session.ReadTimeout = defaults.SessionConfig.ReadTimeout
		}
		if session.WriteTimeout == 0 {
			session.WriteTimeout = defaults.SessionConfig.WriteTimeout
		}
		if session.HeartbeatInterval == 0 {
			session.HeartbeatInterval = defaults.SessionConfig.HeartbeatInterval
		}
		if session.MaxEventQueue == 0 {
			session.MaxEventQueue = defaults.SessionConfig.MaxEventQueue
		}
		if session.MessageRate == 0 {
			session.MessageRate = defaults.SessionConfig.MessageRate
		}
		if session.MessageBurst == 0 {
			session.MessageBurst = defaults.SessionConfig.MessageBurst
		}
	}
	cfg.SessionConfig = session
	return &cfg
}
