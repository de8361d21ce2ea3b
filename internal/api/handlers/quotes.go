package handlers

import (
	"net/http"

	"github.com/wonny/tradetips/internal/quotes"
	"github.com/wonny/tradetips/pkg/logger"
	"github.com/wonny/tradetips/pkg/redis"
)

// QuotesHandler handles quote API endpoints
type QuotesHandler struct {
	generator *quotes.Generator
	cache     *redis.Cache
	logger    *logger.Logger
}

// NewQuotesHandler creates a new quotes handler
func NewQuotesHandler(gen *quotes.Generator, cache *redis.Cache, log *logger.Logger) *QuotesHandler {
	return &QuotesHandler{generator: gen, cache: cache, logger: log}
}

// GetSeries returns the OHLCV series for one ticker
// GET /api/quotes/{ticker}?period=1y
func (h *QuotesHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ticker := tickerVar(r)
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	period, err := quotes.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cacheKey := redis.QuotesKey(ticker, string(period))
	var cached quotes.Series
	found, err := h.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		h.logger.WithError(err).Warn("Quote cache read failed")
	} else if found {
		respondJSON(w, http.StatusOK, &cached)
		return
	}

	series := h.generator.Generate(ticker, period)
	if err := h.cache.Set(ctx, cacheKey, series, redis.TTLMedium); err != nil {
		h.logger.WithError(err).Warn("Quote cache write failed")
	}

	respondJSON(w, http.StatusOK, series)
}

// GetKeyMetrics returns last price, daily change and 52-week range
// GET /api/quotes/{ticker}/metrics
func (h *QuotesHandler) GetKeyMetrics(w http.ResponseWriter, r *http.Request) {
	ticker := tickerVar(r)
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	metrics, err := h.generator.KeyMetricsFor(ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to compute key metrics")
		respondError(w, http.StatusInternalServerError, "Failed to compute key metrics")
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// OpportunityEntry is one curated ticker with its current price context.
type OpportunityEntry struct {
	Ticker        string  `json:"ticker"`
	LastPrice     float64 `json:"last_price"`
	DailyChangePc float64 `json:"daily_change_pct"`
}

// OpportunitiesResponse groups the curated lists with last prices.
type OpportunitiesResponse struct {
	LargeCaps []OpportunityEntry `json:"large_caps"`
	Early     []OpportunityEntry `json:"early"`
}

// GetOpportunities returns the curated idea lists with last prices
// GET /api/opportunities
func (h *QuotesHandler) GetOpportunities(w http.ResponseWriter, r *http.Request) {
	ops := quotes.ListOpportunities()

	respondJSON(w, http.StatusOK, OpportunitiesResponse{
		LargeCaps: h.opportunityEntries(ops.LargeCaps),
		Early:     h.opportunityEntries(ops.Early),
	})
}

func (h *QuotesHandler) opportunityEntries(tickers []string) []OpportunityEntry {
	entries := make([]OpportunityEntry, 0, len(tickers))
	for _, t := range tickers {
		entry := OpportunityEntry{Ticker: t}
		if metrics, err := h.generator.KeyMetricsFor(t); err == nil {
			entry.LastPrice = metrics.LastPrice
			entry.DailyChangePc = metrics.DailyChangePc
		} else {
			h.logger.WithError(err).WithField("ticker", t).Warn("Failed to price opportunity entry")
		}
		entries = append(entries, entry)
	}
	return entries
}
