package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubEmbedder returns canned vectors keyed by input text.
type stubEmbedder struct {
	vectors map[string][]float64
}

func (s stubEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		vec, ok := s.vectors[text]
		if !ok {
			return nil, fmt.Errorf("no stub vector for %q", text)
		}
		out[i] = vec
	}
	return out, nil
}

func TestBuildIndex_RoundTrip(t *testing.T) {
	embedder := stubEmbedder{vectors: map[string][]float64{
		"def a(): pass": {1, 0, 0},
		"def b(): pass": {0, 1, 0},
	}}

	records := []Record{
		{"code": "def a(): pass", "path": "a.py", "line": 10},
		{"code": "def b(): pass", "path": "b.py"},
	}

	index, err := BuildIndex(context.Background(), embedder, records)
	require.NoError(t, err)
	require.Len(t, index, len(records))

	first := index[0]
	require.NotContains(t, first, FieldCode)
	require.Equal(t, "a.py", first["path"])
	require.Equal(t, 10, first["line"])

	vec, err := first.Embedding()
	require.NoError(t, err)
	require.Len(t, vec, 3)

	// Order preserved.
	require.Equal(t, "b.py", index[1]["path"])
}

func TestBuildIndex_MissingCodeFailsBatch(t *testing.T) {
	embedder := stubEmbedder{vectors: map[string][]float64{
		"def a(): pass": {1, 0, 0},
	}}

	records := []Record{
		{"code": "def a(): pass"},
		{"metadata": "no code here"},
	}

	index, err := BuildIndex(context.Background(), embedder, records)
	require.ErrorIs(t, err, ErrMissingCode)
	require.Nil(t, index)
}

func TestBuildIndex_NonStringCode(t *testing.T) {
	records := []Record{{"code": 42}}

	_, err := BuildIndex(context.Background(), stubEmbedder{}, records)
	require.ErrorIs(t, err, ErrMissingCode)
}

func TestBuildIndex_InputUnchanged(t *testing.T) {
	embedder := stubEmbedder{vectors: map[string][]float64{"x": {1}}}
	records := []Record{{"code": "x", "tag": "t"}}

	_, err := BuildIndex(context.Background(), embedder, records)
	require.NoError(t, err)
	require.Equal(t, "x", records[0]["code"], "input record must not be mutated")
}

func TestBuildIndex_Empty(t *testing.T) {
	index, err := BuildIndex(context.Background(), stubEmbedder{}, nil)
	require.NoError(t, err)
	require.Empty(t, index)
}

func TestRecord_EmbeddingFromJSONShapes(t *testing.T) {
	// JSON decoding produces []any of float64.
	rec := Record{"embedding": []any{0.1, 0.2}}
	vec, err := rec.Embedding()
	require.NoError(t, err)
	require.Equal(t, []float64{0.1, 0.2}, vec)

	rec = Record{"embedding": []float64{0.3}}
	vec, err = rec.Embedding()
	require.NoError(t, err)
	require.Equal(t, []float64{0.3}, vec)

	rec = Record{"embedding": []any{"oops"}}
	_, err = rec.Embedding()
	require.ErrorIs(t, err, ErrMissingEmbedding)

	rec = Record{}
	_, err = rec.Embedding()
	require.ErrorIs(t, err, ErrMissingEmbedding)
}
