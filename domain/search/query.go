package search

// Default query parameters.
const (
	DefaultLimit     = 5
	DefaultThreshold = 0.3
)

// Query holds the parameters of one search call.
type Query struct {
	limit     int
	threshold float64
}

// Option configures a Query.
type Option func(*Query)

// WithLimit sets the result cutoff. The cutoff is applied in scan
// order, not score order (see Search).
func WithLimit(n int) Option {
	return func(q *Query) { q.limit = n }
}

// WithThreshold sets the exclusive similarity threshold.
func WithThreshold(t float64) Option {
	return func(q *Query) { q.threshold = t }
}

// NewQuery builds a Query from options, applying defaults.
func NewQuery(opts ...Option) Query {
	q := Query{
		limit:     DefaultLimit,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

// Limit returns the result cutoff.
func (q Query) Limit() int { return q.limit }

// Threshold returns the exclusive similarity threshold.
func (q Query) Threshold() float64 { return q.threshold }
