// Package search implements the core index-and-rank semantics: code
// records are embedded into vectors, and a natural-language query is
// ranked against them by cosine similarity.
package search

import (
	"errors"
	"fmt"
)

// Well-known record fields.
const (
	FieldCode      = "code"
	FieldEmbedding = "embedding"
	FieldScore     = "score"
)

// Sentinel errors for malformed records.
var (
	ErrMissingCode      = errors.New("record has no code field")
	ErrMissingEmbedding = errors.New("record has no embedding field")
)

// Record is a JSON object flowing through the pipeline. Besides the
// well-known fields, all keys are opaque metadata and pass through
// untouched.
//
// A code record carries FieldCode (string); the index builder replaces
// it with FieldEmbedding ([]float64); the search engine replaces that
// with FieldScore (float64).
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Code returns the record's code snippet.
func (r Record) Code() (string, error) {
	v, ok := r[FieldCode]
	if !ok {
		return "", ErrMissingCode
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: code is %T, want string", ErrMissingCode, v)
	}
	return s, nil
}

// Embedding returns the record's embedding vector. Vectors decoded from
// JSON arrive as []any of float64; vectors produced in-process are
// already []float64. Both shapes are accepted.
func (r Record) Embedding() ([]float64, error) {
	v, ok := r[FieldEmbedding]
	if !ok {
		return nil, ErrMissingEmbedding
	}

	switch vec := v.(type) {
	case []float64:
		return vec, nil
	case []any:
		out := make([]float64, len(vec))
		for i, elem := range vec {
			f, ok := elem.(float64)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T, want number", ErrMissingEmbedding, i, elem)
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: embedding is %T, want array", ErrMissingEmbedding, v)
	}
}

// Score returns the record's similarity score, or 0 if absent.
func (r Record) Score() float64 {
	f, _ := r[FieldScore].(float64)
	return f
}
