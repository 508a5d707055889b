package search

import (
	"context"
	"fmt"
	"sort"
)

// Search embeds the query once, scans the index linearly, and returns
// result records sorted by descending score. A record qualifies when
// its cosine similarity to the query strictly exceeds the threshold.
// Qualifying records get FieldScore and lose FieldEmbedding; all other
// fields pass through.
//
// The limit is a scan cutoff, not a top-k guarantee: the break
// condition is checked before each append, so up to limit+1 records
// can be collected, and which records are considered depends on index
// order. This mirrors the behavior of the original tool; callers that
// need true top-k must sort the index by expected relevance first.
func Search(ctx context.Context, embedder Embedder, index []Record, query string, opts ...Option) ([]Record, error) {
	q := NewQuery(opts...)

	vectors, err := embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one text", len(vectors))
	}
	queryVec := vectors[0]

	capacity := q.Limit() + 1
	if capacity < 0 {
		capacity = 0
	}
	result := make([]Record, 0, capacity)

	for i, rec := range index {
		if len(result) > q.Limit() {
			break
		}

		embedding, err := rec.Embedding()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		similarity := CosineSimilarity(queryVec, embedding)
		if similarity > q.Threshold() {
			out := rec.Clone()
			delete(out, FieldEmbedding)
			out[FieldScore] = similarity
			result = append(result, out)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score() > result[j].Score()
	})

	return result, nil
}
