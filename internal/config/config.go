package config

import (
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/vango-dev/vreconcile/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vreconcile.json"

	// DefaultPort is the default inspector server port.
	DefaultPort = 7070

	// DefaultHost is the default inspector server host.
	DefaultHost = "localhost"

	// DefaultScenariosDir is the default directory scenario files are read from.
	DefaultScenariosDir = "scenarios"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "vreconcile"

	// DefaultMaxDeferred is the default bound on queued component updates.
	DefaultMaxDeferred = 64
)

// Config represents the complete vreconcile.json configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error (default: info).
	LogLevel string `json:"logLevel,omitempty"`

	// LogFormat is text or json (default: text).
	LogFormat string `json:"logFormat,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Server contains inspector server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Scenarios says where scenario files come from.
	Scenarios ScenariosConfig `json:"scenarios,omitempty"`

	// Engine contains reconciler settings.
	Engine EngineConfig `json:"engine,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`
}

// ServerConfig contains inspector server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// ScenariosConfig says where scenario files come from. When Bucket is set,
// scenarios are read from S3 and Dir is ignored.
type ScenariosConfig struct {
	// Dir is the directory holding *.yaml scenario files.
	Dir string `json:"dir,omitempty"`

	// Bucket is an S3 bucket holding scenario files.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the key prefix inside Bucket.
	Prefix string `json:"prefix,omitempty"`

	// Region is the AWS region of Bucket. Empty uses the SDK default chain.
	Region string `json:"region,omitempty"`
}

// EngineConfig contains reconciler settings.
type EngineConfig struct {
	// MaxDeferred bounds component updates queued behind a running pass.
	MaxDeferred int `json:"maxDeferred,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory.
// It looks for vreconcile.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E401").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path))
		}
		return nil, errors.New("E402").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E402").
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

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E402").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E402").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	// Logging
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}

	// Metrics
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}

	// Scenarios
	if c.Scenarios.Dir == "" {
		c.Scenarios.Dir = DefaultScenariosDir
	}

	// Engine
	if c.Engine.MaxDeferred == 0 {
		c.Engine.MaxDeferred = DefaultMaxDeferred
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := parseLevel(c.LogLevel); !ok {
		return errors.New("E403").
			WithDetailf("logLevel %q is not one of debug, info, warn, error", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.New("E403").
			WithDetailf("logFormat %q is not text or json", c.LogFormat)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E403").
			WithDetail("Port must be between 0 and 65535")
	}
	if c.Engine.MaxDeferred < 0 {
		return errors.New("E403").
			WithDetail("engine.maxDeferred must not be negative")
	}
	return nil
}

// Address returns the host:port the inspector server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ScenariosPath returns the absolute path to the scenarios directory.
func (c *Config) ScenariosPath() string {
	path := c.Scenarios.Dir
	if path == "" {
		path = DefaultScenariosDir
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// UseS3 reports whether scenarios are read from S3.
func (c *Config) UseS3() bool {
	return c.Scenarios.Bucket != ""
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the directory holding
// vreconcile.json.
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
			return "", errors.New("E401").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or its nearest parent holding a config file.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
