package search

import "math"

// CosineSimilarity computes the cosine similarity between two vectors:
// the dot product of their L2-normalized forms. The result is in
// [-1, 1]. Mismatched lengths or a zero-magnitude vector yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
