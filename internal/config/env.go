package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Variables are read without a prefix; nested structs use an underscore
// delimiter (e.g. EMBEDDING_ENDPOINT_BASE_URL).
type EnvConfig struct {
	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.sfind
	DataDir string `envconfig:"DATA_DIR"`

	// ModelDir overrides the directory that holds local embedding models.
	// Env: MODEL_DIR
	// Default: {data_dir}/models
	ModelDir string `envconfig:"MODEL_DIR"`

	// DBURL is the database connection URL for saved indexes.
	// Env: DB_URL (e.g. sqlite:///path/to/sfind.db or postgres://...)
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// HTTPCacheDir is the directory for caching HTTP responses to disk.
	// When set, POST request/response pairs are cached to avoid repeated
	// embedding API calls for identical inputs.
	// Env: HTTP_CACHE_DIR
	HTTPCacheDir string `envconfig:"HTTP_CACHE_DIR"`

	// SearchLimit is the default search result limit.
	// Env: SEARCH_LIMIT (default: 5)
	SearchLimit int `envconfig:"SEARCH_LIMIT" default:"5"`

	// SearchThreshold is the default similarity threshold.
	// Env: SEARCH_THRESHOLD (default: 0.3)
	SearchThreshold float64 `envconfig:"SEARCH_THRESHOLD" default:"0.3"`

	// EmbeddingEndpoint configures the remote embedding service.
	EmbeddingEndpoint EndpointEnv `envconfig:"EMBEDDING_ENDPOINT"`
}

// EndpointEnv holds environment configuration for the embedding endpoint.
type EndpointEnv struct {
	// BaseURL is the base URL for the endpoint.
	// Env: EMBEDDING_ENDPOINT_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Model is the embedding model identifier.
	// Env: EMBEDDING_ENDPOINT_MODEL (default: text-embedding-3-small)
	Model string `envconfig:"MODEL" default:"text-embedding-3-small"`

	// APIKey is the API key for authentication.
	// Env: EMBEDDING_ENDPOINT_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// Timeout is the request timeout in seconds.
	// Env: EMBEDDING_ENDPOINT_TIMEOUT (default: 60)
	Timeout float64 `envconfig:"TIMEOUT" default:"60"`

	// MaxRetries is the maximum number of retries.
	// Env: EMBEDDING_ENDPOINT_MAX_RETRIES (default: 5)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"5"`

	// InitialDelay is the initial retry delay in seconds.
	// Env: EMBEDDING_ENDPOINT_INITIAL_DELAY (default: 2.0)
	InitialDelay float64 `envconfig:"INITIAL_DELAY" default:"2.0"`

	// BackoffFactor is the retry backoff multiplier.
	// Env: EMBEDDING_ENDPOINT_BACKOFF_FACTOR (default: 2.0)
	BackoffFactor float64 `envconfig:"BACKOFF_FACTOR" default:"2.0"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts the environment configuration into an AppConfig,
// filling in defaults for anything unset.
func (e EnvConfig) ToAppConfig() AppConfig {
	dataDir := e.DataDir
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}

	limit := e.SearchLimit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	return AppConfig{
		dataDir:         dataDir,
		modelDir:        e.ModelDir,
		dbURL:           e.DBURL,
		logLevel:        e.LogLevel,
		logFormat:       normalizeLogFormat(e.LogFormat),
		httpCacheDir:    e.HTTPCacheDir,
		searchLimit:     limit,
		searchThreshold: e.SearchThreshold,
		embeddingEndpoint: Endpoint{
			baseURL:       e.EmbeddingEndpoint.BaseURL,
			model:         e.EmbeddingEndpoint.Model,
			apiKey:        e.EmbeddingEndpoint.APIKey,
			timeout:       secondsToDuration(e.EmbeddingEndpoint.Timeout, DefaultEndpointTimeout),
			maxRetries:    e.EmbeddingEndpoint.MaxRetries,
			initialDelay:  secondsToDuration(e.EmbeddingEndpoint.InitialDelay, DefaultEndpointDelay),
			backoffFactor: e.EmbeddingEndpoint.BackoffFactor,
		},
	}
}

func secondsToDuration(seconds float64, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds * float64(time.Second))
}
