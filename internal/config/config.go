// Package config provides configuration management for the Clipforge Agent.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// Default values
	DefaultPort     = 8790
	DefaultLogLevel = "info"
	DefaultDataDir  = ".clipforge"

	// Environment variable names
	EnvPort     = "CLIPFORGE_PORT"
	EnvLogLevel = "CLIPFORGE_LOG_LEVEL"
	EnvDataDir  = "CLIPFORGE_DATA_DIR"

	// Renderer environment variable names
	EnvRendererURL     = "CLIPFORGE_RENDERER_URL"
	EnvRendererToken   = "CLIPFORGE_RENDERER_TOKEN"
	EnvPollIntervalS   = "CLIPFORGE_POLL_INTERVAL_S"
	EnvMaxPollAttempts = "CLIPFORGE_MAX_POLL_ATTEMPTS"

	// Snapshot cache environment variable names
	EnvSnapshotTTLS = "CLIPFORGE_SNAPSHOT_TTL_S"

	// Style presets file path
	EnvStylePresets = "CLIPFORGE_STYLE_PRESETS"

	// Database filename
	DBFilename = "clipforge.db"

	// Polling defaults: 60 checks 5 seconds apart bounds a render wait
	// at 5 minutes.
	DefaultPollIntervalS   = 5
	DefaultMaxPollAttempts = 60

	// Snapshot cache defaults
	DefaultSnapshotTTLS = 300
)

// Config defines the application configuration interface
type Config interface {
	Port() int
	LogLevel() string
	DataDir() string
	DBPath() string
	RendererURL() string
	RendererToken() string
	PollInterval() time.Duration
	MaxPollAttempts() int
	SnapshotTTL() time.Duration
	StylePresetsPath() string
}

// EnvConfig reads configuration from environment variables
type EnvConfig struct {
	port            int
	logLevel        string
	dataDir         string
	rendererURL     string
	rendererToken   string
	pollIntervalS   int
	maxPollAttempts int
	snapshotTTLS    int
	stylePresets    string
}

// New creates a new EnvConfig with defaults and environment variable overrides
func New() (*EnvConfig, error) {
	cfg := &EnvConfig{
		port:            DefaultPort,
		logLevel:        DefaultLogLevel,
		dataDir:         defaultDataDir(),
		pollIntervalS:   DefaultPollIntervalS,
		maxPollAttempts: DefaultMaxPollAttempts,
		snapshotTTLS:    DefaultSnapshotTTLS,
	}

	// Override port from environment
	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: port must be between 1 and 65535", EnvPort)
		}
		cfg.port = port
	}

	// Override log level from environment
	if ll := os.Getenv(EnvLogLevel); ll != "" {
		cfg.logLevel = ll
	}

	// Override data directory from environment
	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	cfg.rendererURL = os.Getenv(EnvRendererURL)
	cfg.rendererToken = os.Getenv(EnvRendererToken)
	cfg.stylePresets = os.Getenv(EnvStylePresets)

	if v := os.Getenv(EnvPollIntervalS); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid %s: must be a positive integer", EnvPollIntervalS)
		}
		cfg.pollIntervalS = n
	}

	if v := os.Getenv(EnvMaxPollAttempts); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid %s: must be a positive integer", EnvMaxPollAttempts)
		}
		cfg.maxPollAttempts = n
	}

	if v := os.Getenv(EnvSnapshotTTLS); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid %s: must be a positive integer", EnvSnapshotTTLS)
		}
		cfg.snapshotTTLS = n
	}

	return cfg, nil
}

// Port returns the HTTP server port
func (c *EnvConfig) Port() int {
	return c.port
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *EnvConfig) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory path
func (c *EnvConfig) DataDir() string {
	return c.dataDir
}

// DBPath returns the full path to the SQLite database file
func (c *EnvConfig) DBPath() string {
	return filepath.Join(c.dataDir, DBFilename)
}

// RendererURL returns the base URL of the external render service.
// Empty means no renderer is configured and submissions fall back to
// the simulated render path.
func (c *EnvConfig) RendererURL() string {
	return c.rendererURL
}

// RendererToken returns the bearer token for the render service
func (c *EnvConfig) RendererToken() string {
	return c.rendererToken
}

// PollInterval returns the delay between render status checks
func (c *EnvConfig) PollInterval() time.Duration {
	return time.Duration(c.pollIntervalS) * time.Second
}

// MaxPollAttempts returns the status-check budget for one render job
func (c *EnvConfig) MaxPollAttempts() int {
	return c.maxPollAttempts
}

// SnapshotTTL returns how long a cached pipeline snapshot stays valid
func (c *EnvConfig) SnapshotTTL() time.Duration {
	return time.Duration(c.snapshotTTLS) * time.Second
}

// StylePresetsPath returns the path to the optional YAML style presets file
func (c *EnvConfig) StylePresetsPath() string {
	return c.stylePresets
}

// defaultDataDir returns the default data directory path
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
