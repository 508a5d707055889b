// Package sfind searches source-code snippets with natural-language
// queries. Snippets are embedded into fixed-length vectors by a
// pretrained encoder and ranked against the embedded query by cosine
// similarity.
//
// Basic usage:
//
//	client, err := sfind.New(
//	    sfind.WithOpenAIConfig(provider.OpenAIConfig{APIKey: os.Getenv("OPENAI_API_KEY")}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	index, err := client.CreateIndex(ctx, records)
//	results, err := client.Search(ctx, index, "parse a config file",
//	    search.WithLimit(5), search.WithThreshold(0.3),
//	)
package sfind

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sourcefield/sfind/domain/search"
	"github.com/sourcefield/sfind/infrastructure/persistence"
	"github.com/sourcefield/sfind/infrastructure/provider"
	"github.com/sourcefield/sfind/internal/config"
	"github.com/sourcefield/sfind/internal/database"
)

// ErrNoEmbedder indicates no embedding provider could be resolved:
// neither a remote endpoint was configured nor a local model found.
var ErrNoEmbedder = errors.New("no embedding provider available")

// Client is the main entry point for the sfind library. The embedding
// provider is resolved once at construction and reused, read-only, for
// every call.
type Client struct {
	embedder provider.Embedder
	store    *persistence.IndexStore
	db       *database.Database
	logger   *slog.Logger
}

// New creates a Client. Provider resolution order: an explicit
// WithEmbedder, then a configured remote endpoint, then a local model
// in the model directory.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	embedder, err := resolveEmbedder(cfg, logger)
	if err != nil {
		return nil, err
	}

	client := &Client{
		embedder: embedder,
		logger:   logger,
	}

	if cfg.dbURL != "" {
		db, err := database.New(context.Background(), cfg.dbURL)
		if err != nil {
			_ = embedder.Close()
			return nil, fmt.Errorf("open database: %w", err)
		}
		store, err := persistence.NewIndexStore(db)
		if err != nil {
			_ = db.Close()
			_ = embedder.Close()
			return nil, err
		}
		client.db = db
		client.store = store
	}

	return client, nil
}

func resolveEmbedder(cfg *clientConfig, logger *slog.Logger) (provider.Embedder, error) {
	if cfg.embedder != nil {
		return cfg.embedder, nil
	}

	if cfg.openai != nil && cfg.openai.APIKey != "" {
		openaiCfg := *cfg.openai
		if openaiCfg.Timeout == 0 {
			openaiCfg.Timeout = config.DefaultEndpointTimeout
		}
		if cfg.httpCacheDir != "" {
			openaiCfg.Transport = provider.NewCachingTransport(cfg.httpCacheDir, http.DefaultTransport)
		}
		logger.Debug("using remote embedding endpoint",
			slog.String("base_url", openaiCfg.BaseURL),
			slog.String("model", openaiCfg.Model),
		)
		return provider.NewOpenAIEmbedder(openaiCfg), nil
	}

	if cfg.modelDir != "" {
		local := provider.NewHugotEmbedder(cfg.modelDir)
		if local.Available() {
			logger.Debug("using local embedding model", slog.String("model_dir", cfg.modelDir))
			return local, nil
		}
	}

	return nil, fmt.Errorf("%w: configure EMBEDDING_ENDPOINT_* or place a model under the model directory", ErrNoEmbedder)
}

// CreateIndex embeds each code record and returns embedding records in
// input order, metadata intact, code replaced by its vector.
func (c *Client) CreateIndex(ctx context.Context, records []search.Record) ([]search.Record, error) {
	c.logger.Debug("building index", slog.Int("records", len(records)))
	return search.BuildIndex(ctx, c.domainEmbedder(), records)
}

// Search ranks the index against the query. See search.Search for the
// cutoff semantics.
func (c *Client) Search(ctx context.Context, index []search.Record, query string, opts ...search.Option) ([]search.Record, error) {
	c.logger.Debug("searching index", slog.Int("records", len(index)), slog.String("query", query))
	return search.Search(ctx, c.domainEmbedder(), index, query, opts...)
}

// SaveIndex stores an index under name. Requires WithDatabaseURL.
func (c *Client) SaveIndex(ctx context.Context, name string, records []search.Record) error {
	if c.store == nil {
		return errors.New("no database configured: pass WithDatabaseURL or set DB_URL")
	}
	c.logger.Debug("saving index", slog.String("name", name), slog.Int("records", len(records)))
	return c.store.Save(ctx, name, records)
}

// LoadIndex returns a previously saved index. Requires WithDatabaseURL.
func (c *Client) LoadIndex(ctx context.Context, name string) ([]search.Record, error) {
	if c.store == nil {
		return nil, errors.New("no database configured: pass WithDatabaseURL or set DB_URL")
	}
	return c.store.Load(ctx, name)
}

// Close releases the provider and database handles.
func (c *Client) Close() error {
	var errs []error
	if c.embedder != nil {
		errs = append(errs, c.embedder.Close())
	}
	if c.db != nil {
		errs = append(errs, c.db.Close())
	}
	return errors.Join(errs...)
}

// domainEmbedder adapts the provider's request/response interface to
// the domain's plain function shape.
func (c *Client) domainEmbedder() search.Embedder {
	return embedderFunc(func(ctx context.Context, texts []string) ([][]float64, error) {
		resp, err := c.embedder.Embed(ctx, provider.NewEmbeddingRequest(texts))
		if err != nil {
			return nil, err
		}
		return resp.Embeddings(), nil
	})
}

type embedderFunc func(ctx context.Context, texts []string) ([][]float64, error)

func (f embedderFunc) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	return f(ctx, texts)
}
