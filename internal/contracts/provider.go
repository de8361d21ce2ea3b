package contracts

import "context"

// MetricProvider supplies the raw metrics behind a score. Implementations
// are opaque to the scoring engine: a REST API, a scrape, a static table or
// a synthetic generator all satisfy the same contract. A provider returns
// a record with nil fields for anything it could not supply; it does not
// guess values.
type MetricProvider interface {
	// Name identifies the provider ("synthetic", "alphavantage", ...).
	Name() string

	// Fetch returns the metrics record for a ticker.
	Fetch(ctx context.Context, ticker string) (*MetricsRecord, error)
}
