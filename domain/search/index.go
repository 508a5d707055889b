package search

import (
	"context"
	"fmt"
)

// BuildIndex embeds each code record and returns embedding records in
// the same order. Each output record keeps every metadata field of its
// input, with FieldCode replaced by FieldEmbedding.
//
// Records are embedded one at a time, sequentially. A record without a
// code field fails the whole batch.
func BuildIndex(ctx context.Context, embedder Embedder, records []Record) ([]Record, error) {
	result := make([]Record, 0, len(records))

	for i, rec := range records {
		code, err := rec.Code()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		vectors, err := embedder.Embed(ctx, []string{code})
		if err != nil {
			return nil, fmt.Errorf("record %d: embed: %w", i, err)
		}
		if len(vectors) != 1 {
			return nil, fmt.Errorf("record %d: embedder returned %d vectors for one text", i, len(vectors))
		}

		out := rec.Clone()
		delete(out, FieldCode)
		out[FieldEmbedding] = vectors[0]
		result = append(result, out)
	}

	return result, nil
}
