package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"scale invariant", []float64{1, 1}, []float64{10, 10}, 1},
		{"zero magnitude", []float64{0, 0}, []float64{1, 2}, 0},
		{"mismatched length", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilarity_Bounded(t *testing.T) {
	vectors := [][]float64{
		{0.3, -1.7, 2.2, 0.01},
		{-5, 4, -3, 2},
		{1e6, -1e6, 1e-6, 0},
		{0.0001, 0.0002, -0.0003, 0.0004},
	}

	for _, a := range vectors {
		for _, b := range vectors {
			sim := CosineSimilarity(a, b)
			require.False(t, math.IsNaN(sim))
			require.GreaterOrEqual(t, sim, -1.0-1e-9)
			require.LessOrEqual(t, sim, 1.0+1e-9)
		}
	}
}
