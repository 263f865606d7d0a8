package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/vreconcile/internal/errors"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	// Address is the listen address (e.g. "127.0.0.1:7070").
	Address string

	// ReadHeaderTimeout bounds reading request headers.
	// Default: 10 seconds.
	ReadHeaderTimeout time.Duration

	// IdleTimeout closes idle keep-alive connections.
	// Default: 2 minutes.
	IdleTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// WriteWait bounds each WebSocket message write.
	// Default: 10 seconds.
	WriteWait time.Duration

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the Origin of WebSocket upgrades.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// MetricsNamespace prefixes the server's metrics.
	// Default: "vreconcile".
	MetricsNamespace string
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           "127.0.0.1:7070",
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ShutdownTimeout:   10 * time.Second,
		WriteWait:         10 * time.Second,
		ReadBufferSize:    1024,
		WriteBufferSize:   4096,
		CheckOrigin:       SameOriginCheck,
		MetricsNamespace:  "vreconcile",
	}
}

// WithAddress sets the server address and returns the config for chaining.
func (c *ServerConfig) WithAddress(addr string) *ServerConfig {
	c.Address = addr
	return c
}

// WithMetricsNamespace sets the metrics namespace and returns the config
// for chaining.
func (c *ServerConfig) WithMetricsNamespace(ns string) *ServerConfig {
	c.MetricsNamespace = ns
	return c
}

// Clone returns a copy of the ServerConfig.
func (c *ServerConfig) Clone() *ServerConfig {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// Validate checks the configuration.
func (c *ServerConfig) Validate() error {
	if c.Address == "" {
		return errors.New("E403").WithDetail("server address is empty")
	}
	if c.ShutdownTimeout < 0 || c.WriteWait < 0 {
		return errors.New("E403").WithDetail("timeouts must not be negative")
	}
	return nil
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
// Requests without an Origin header (curl, other tools) are accepted.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}
