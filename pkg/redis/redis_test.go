package redis

import (
	"context"
	"testing"

	"github.com/wonny/tradetips/pkg/config"
)

func TestDisabledClient(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{Enabled: false},
	}

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if client.Enabled() {
		t.Error("Expected client to be disabled")
	}

	// Cache on a disabled client is a silent no-op
	cache := NewCache(client, "tradetips")
	ctx := context.Background()

	if err := cache.Set(ctx, "k", "v", TTLShort); err != nil {
		t.Errorf("Set on disabled client should not error, got %v", err)
	}

	var dest string
	found, err := cache.Get(ctx, "k", &dest)
	if err != nil {
		t.Errorf("Get on disabled client should not error, got %v", err)
	}
	if found {
		t.Error("Get on disabled client should miss")
	}

	// Rate limiter on a disabled client always allows
	limiter := NewRateLimiter(client, "tradetips")
	allowed, remaining, err := limiter.Allow(ctx, AlphaVantageRateLimit)
	if err != nil {
		t.Errorf("Allow on disabled client should not error, got %v", err)
	}
	if !allowed {
		t.Error("Allow on disabled client should allow")
	}
	if remaining != AlphaVantageRateLimit.Limit {
		t.Errorf("Expected remaining %d, got %d", AlphaVantageRateLimit.Limit, remaining)
	}
}

func TestCacheKeys(t *testing.T) {
	if got := MetricsKey("fmp", "MSFT"); got != "metrics:fmp:MSFT" {
		t.Errorf("MetricsKey = %s", got)
	}
	if got := ScoreKey("AAPL"); got != "score:AAPL" {
		t.Errorf("ScoreKey = %s", got)
	}
	if got := QuotesKey("NVDA", "1y"); got != "quotes:NVDA:1y" {
		t.Errorf("QuotesKey = %s", got)
	}
}
