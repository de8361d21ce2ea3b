package providers

import (
	"fmt"

	"github.com/wonny/tradetips/internal/contracts"
	"github.com/wonny/tradetips/internal/providers/alphavantage"
	"github.com/wonny/tradetips/internal/providers/fmp"
	"github.com/wonny/tradetips/internal/providers/yahoo"
	"github.com/wonny/tradetips/pkg/config"
	"github.com/wonny/tradetips/pkg/httputil"
	"github.com/wonny/tradetips/pkg/logger"
	"github.com/wonny/tradetips/pkg/redis"
)

// New builds the MetricProvider selected by config. API-backed providers
// get the shared Redis rate limiter on their HTTP client and a daily
// response cache; synthetic and static need neither.
func New(cfg *config.Config, log *logger.Logger, redisClient *redis.Client) (contracts.MetricProvider, error) {
	limiter := redis.NewRateLimiter(redisClient, "tradetips")
	cache := redis.NewCache(redisClient, "tradetips")

	switch cfg.Provider {
	case config.ProviderSynthetic:
		return NewSynthetic(), nil

	case config.ProviderStatic:
		return NewStatic(), nil

	case config.ProviderAlphaVantage:
		httpClient := httputil.New(log)
		client := alphavantage.NewClient(cfg.AlphaVantage, httpClient, log)
		return NewCached(client, cache, log), nil

	case config.ProviderFMP:
		httpClient := httputil.New(log).
			WithRateLimiter(limiter, redis.FMPRateLimit)
		client := fmp.NewClient(cfg.FMP, httpClient, log)
		return NewCached(client, cache, log), nil

	case config.ProviderYahoo:
		httpClient := httputil.New(log).
			WithRateLimiter(limiter, redis.YahooRateLimit)
		client := yahoo.NewClient(cfg.Yahoo, httpClient, log)
		return NewCached(client, cache, log), nil

	default:
		// config.Load validates the provider name, so this is a
		// programming error.
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
