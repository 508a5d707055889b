// Package config provides application configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultLogLevel        = "INFO"
	DefaultSearchLimit     = 5
	DefaultSearchThreshold = 0.3
	DefaultEndpointTimeout = 60 * time.Second
	DefaultEndpointRetries = 5
	DefaultEndpointDelay   = 2 * time.Second
	DefaultEndpointBackoff = 2.0
	DefaultModelSubdir     = "models"
	DefaultEmbeddingModel  = "text-embedding-3-small"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// Endpoint configures an OpenAI-compatible embedding endpoint.
type Endpoint struct {
	baseURL       string
	model         string
	apiKey        string
	timeout       time.Duration
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
}

// BaseURL returns the endpoint base URL.
func (e Endpoint) BaseURL() string { return e.baseURL }

// Model returns the embedding model identifier.
func (e Endpoint) Model() string { return e.model }

// APIKey returns the API key.
func (e Endpoint) APIKey() string { return e.apiKey }

// Timeout returns the request timeout.
func (e Endpoint) Timeout() time.Duration { return e.timeout }

// MaxRetries returns the maximum retry count.
func (e Endpoint) MaxRetries() int { return e.maxRetries }

// InitialDelay returns the initial retry delay.
func (e Endpoint) InitialDelay() time.Duration { return e.initialDelay }

// BackoffFactor returns the retry backoff multiplier.
func (e Endpoint) BackoffFactor() float64 { return e.backoffFactor }

// Configured reports whether the endpoint has enough settings to be
// usable. An empty base URL means the provider's default API host.
func (e Endpoint) Configured() bool {
	return e.apiKey != ""
}

// AppConfig is the immutable application configuration.
type AppConfig struct {
	dataDir           string
	modelDir          string
	dbURL             string
	logLevel          string
	logFormat         LogFormat
	httpCacheDir      string
	searchLimit       int
	searchThreshold   float64
	embeddingEndpoint Endpoint
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// ModelDir returns the directory that holds local embedding models.
func (c AppConfig) ModelDir() string {
	if c.modelDir != "" {
		return c.modelDir
	}
	return filepath.Join(c.dataDir, DefaultModelSubdir)
}

// DBURL returns the database connection URL, if any.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// HTTPCacheDir returns the HTTP response cache directory, if any.
func (c AppConfig) HTTPCacheDir() string { return c.httpCacheDir }

// SearchLimit returns the default search result limit.
func (c AppConfig) SearchLimit() int { return c.searchLimit }

// SearchThreshold returns the default similarity threshold.
func (c AppConfig) SearchThreshold() float64 { return c.searchThreshold }

// EmbeddingEndpoint returns the embedding endpoint configuration.
func (c AppConfig) EmbeddingEndpoint() Endpoint { return c.embeddingEndpoint }

// WithLogLevel returns a copy of the config with the log level replaced.
func (c AppConfig) WithLogLevel(level string) AppConfig {
	c.logLevel = level
	return c
}

// EnsureDataDir creates the data directory if it does not exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// DefaultDataDir returns the default data directory (~/.sfind).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sfind"
	}
	return filepath.Join(home, ".sfind")
}

func normalizeLogFormat(s string) LogFormat {
	if strings.EqualFold(s, string(LogFormatJSON)) {
		return LogFormatJSON
	}
	return LogFormatPretty
}
