package sfind

import (
	"log/slog"

	"github.com/sourcefield/sfind/infrastructure/provider"
	"github.com/sourcefield/sfind/internal/config"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	embedder     provider.Embedder
	openai       *provider.OpenAIConfig
	modelDir     string
	dbURL        string
	httpCacheDir string
	logger       *slog.Logger
}

func newClientConfig() *clientConfig {
	return &clientConfig{}
}

// Option configures a Client.
type Option func(*clientConfig)

// WithEmbedder supplies a ready-made embedding provider, bypassing
// provider resolution.
func WithEmbedder(e provider.Embedder) Option {
	return func(c *clientConfig) { c.embedder = e }
}

// WithOpenAIConfig configures a remote OpenAI-compatible embedding
// endpoint.
func WithOpenAIConfig(cfg provider.OpenAIConfig) Option {
	return func(c *clientConfig) { c.openai = &cfg }
}

// WithEndpoint configures the remote endpoint from application config.
func WithEndpoint(ep config.Endpoint) Option {
	return func(c *clientConfig) {
		c.openai = &provider.OpenAIConfig{
			APIKey:        ep.APIKey(),
			BaseURL:       ep.BaseURL(),
			Model:         ep.Model(),
			Timeout:       ep.Timeout(),
			MaxRetries:    ep.MaxRetries(),
			InitialDelay:  ep.InitialDelay(),
			BackoffFactor: ep.BackoffFactor(),
		}
	}
}

// WithModelDir sets the directory searched for local embedding models.
func WithModelDir(dir string) Option {
	return func(c *clientConfig) { c.modelDir = dir }
}

// WithDatabaseURL enables saved indexes backed by the given database.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) { c.dbURL = url }
}

// WithHTTPCacheDir caches embedding API responses on disk under dir.
func WithHTTPCacheDir(dir string) Option {
	return func(c *clientConfig) { c.httpCacheDir = dir }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}
