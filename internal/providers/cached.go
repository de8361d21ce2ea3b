package providers

import (
	"context"

	"github.com/wonny/tradetips/internal/contracts"
	"github.com/wonny/tradetips/pkg/logger"
	"github.com/wonny/tradetips/pkg/redis"
)

// Cached decorates a MetricProvider with a Redis response cache.
// Fundamentals move daily at most, so API-backed providers are cached
// with the daily TTL. Cache failures degrade to a live fetch.
type Cached struct {
	inner  contracts.MetricProvider
	cache  *redis.Cache
	logger *logger.Logger
}

// NewCached wraps a provider with caching
func NewCached(inner contracts.MetricProvider, cache *redis.Cache, log *logger.Logger) *Cached {
	return &Cached{
		inner:  inner,
		cache:  cache,
		logger: log,
	}
}

// Name implements contracts.MetricProvider
func (c *Cached) Name() string {
	return c.inner.Name()
}

// Fetch implements contracts.MetricProvider
func (c *Cached) Fetch(ctx context.Context, ticker string) (*contracts.MetricsRecord, error) {
	key := redis.MetricsKey(c.inner.Name(), ticker)

	var cached contracts.MetricsRecord
	found, err := c.cache.Get(ctx, key, &cached)
	if err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).
			Warn("Metrics cache read failed, fetching live")
	}
	if found {
		return &cached, nil
	}

	rec, err := c.inner.Fetch(ctx, ticker)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, rec, redis.TTLDaily); err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).
			Warn("Metrics cache write failed")
	}

	return rec, nil
}
