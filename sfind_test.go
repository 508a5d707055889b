package sfind

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sourcefield/sfind/domain/search"
	"github.com/sourcefield/sfind/infrastructure/provider"
)

// cannedEmbedder is a provider.Embedder returning fixed vectors per text.
type cannedEmbedder struct {
	vectors map[string][]float64
}

func (c cannedEmbedder) Embed(_ context.Context, req provider.EmbeddingRequest) (provider.EmbeddingResponse, error) {
	texts := req.Texts()
	out := make([][]float64, len(texts))
	for i, text := range texts {
		vec, ok := c.vectors[text]
		if !ok {
			return provider.EmbeddingResponse{}, fmt.Errorf("no canned vector for %q", text)
		}
		out[i] = vec
	}
	return provider.NewEmbeddingResponse(out, provider.NewUsage(0, 0, 0)), nil
}

func (c cannedEmbedder) Close() error { return nil }

func testEmbedder() cannedEmbedder {
	return cannedEmbedder{vectors: map[string][]float64{
		"def f(a,b): if a>b: return a else return b": {1, 0},
		"def f(a,b): if a<b: return a else return b": {0, 1},
		"return maximum value":                       {0.9, 0.1},
	}}
}

func TestClient_CreateIndexAndSearch(t *testing.T) {
	client, err := New(WithEmbedder(testEmbedder()))
	require.NoError(t, err)
	defer func() { require.NoError(t, client.Close()) }()

	ctx := context.Background()

	index, err := client.CreateIndex(ctx, []search.Record{
		{"code": "def f(a,b): if a>b: return a else return b", "metadata": "max"},
		{"code": "def f(a,b): if a<b: return a else return b", "metadata": "min"},
	})
	require.NoError(t, err)
	require.Len(t, index, 2)

	results, err := client.Search(ctx, index, "return maximum value")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, "max", results[0]["metadata"])
}

func TestNew_NoProviderFails(t *testing.T) {
	_, err := New()
	require.ErrorIs(t, err, ErrNoEmbedder)
}

func TestNew_MissingLocalModelFails(t *testing.T) {
	_, err := New(WithModelDir(t.TempDir()))
	require.ErrorIs(t, err, ErrNoEmbedder)
}

func TestClient_SaveAndLoadIndex(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sfind.db")

	client, err := New(
		WithEmbedder(testEmbedder()),
		WithDatabaseURL("sqlite:///"+dbPath),
	)
	require.NoError(t, err)
	defer func() { require.NoError(t, client.Close()) }()

	ctx := context.Background()

	index, err := client.CreateIndex(ctx, []search.Record{
		{"code": "def f(a,b): if a>b: return a else return b", "metadata": "max"},
	})
	require.NoError(t, err)

	require.NoError(t, client.SaveIndex(ctx, "snippets", index))

	loaded, err := client.LoadIndex(ctx, "snippets")
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	results, err := client.Search(ctx, loaded, "return maximum value")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "max", results[0]["metadata"])
}

func TestClient_SaveIndexWithoutDatabase(t *testing.T) {
	client, err := New(WithEmbedder(testEmbedder()))
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	err = client.SaveIndex(context.Background(), "x", nil)
	require.Error(t, err)
}
