package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/tradetips/internal/contracts"
	"github.com/wonny/tradetips/pkg/config"
	"github.com/wonny/tradetips/pkg/httputil"
	"github.com/wonny/tradetips/pkg/logger"
)

// Free tier allows 5 requests per minute; each Fetch costs two calls
// (OVERVIEW + EARNINGS), so the limiter paces individual requests.
const requestsPerMinute = 5

// Client fetches fundamentals from the Alpha Vantage API.
// Alpha Vantage exposes no ROIC and no cash conversion cycle, so those
// fields come back nil and the graded variant reports them as unknown.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
}

// NewClient creates a new Alpha Vantage client
func NewClient(cfg config.AlphaVantageConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/requestsPerMinute), requestsPerMinute),
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

// Name implements contracts.MetricProvider
func (c *Client) Name() string {
	return "alphavantage"
}

// overviewResponse is the subset of the OVERVIEW function we read.
// Alpha Vantage encodes every number as a string; absent values are
// "None" or "-".
type overviewResponse struct {
	Symbol                    string `json:"Symbol"`
	ProfitMargin              string `json:"ProfitMargin"`
	GrossProfitTTM            string `json:"GrossProfitTTM"`
	RevenueTTM                string `json:"RevenueTTM"`
	QuarterlyRevenueGrowthYOY string `json:"QuarterlyRevenueGrowthYOY"`
	ForwardPE                 string `json:"ForwardPE"`
}

// earningsResponse is the subset of the EARNINGS function we read.
type earningsResponse struct {
	QuarterlyEarnings []struct {
		ReportedEPS  string `json:"reportedEPS"`
		EstimatedEPS string `json:"estimatedEPS"`
	} `json:"quarterlyEarnings"`
}

// Fetch implements contracts.MetricProvider
func (c *Client) Fetch(ctx context.Context, ticker string) (*contracts.MetricsRecord, error) {
	ticker = strings.ToUpper(ticker)

	overview, err := c.fetchOverview(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("alphavantage overview for %s: %w", ticker, err)
	}

	rec := &contracts.MetricsRecord{
		Ticker:    ticker,
		FetchedAt: time.Now(),
	}

	revGrowth := parseFraction(overview.QuarterlyRevenueGrowthYOY) // fraction -> %
	netMargin := parseFraction(overview.ProfitMargin)
	if revGrowth != nil {
		rec.RevenueGrowth = revGrowth
	}
	if revGrowth != nil && netMargin != nil {
		rec.R40 = contracts.F64(*revGrowth + *netMargin)
	}

	// Gross margin is derived from GrossProfitTTM / RevenueTTM.
	if gp, rev := parseNumber(overview.GrossProfitTTM), parseNumber(overview.RevenueTTM); gp != nil && rev != nil && *rev > 0 {
		rec.GrossMargin = contracts.F64(*gp / *rev * 100)
	}

	rec.ForwardPE = parseNumber(overview.ForwardPE)

	// EPS consistency costs a second API call; a failure there degrades
	// to unknown rather than failing the whole record.
	if beat, err := c.fetchEPSConsistency(ctx, ticker); err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).
			Warn("Earnings lookup failed, EPS consistency unknown")
	} else {
		rec.EPSConsistency = beat
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker":  ticker,
		"missing": rec.MissingFields(),
	}).Debug("Fetched Alpha Vantage metrics")

	return rec, nil
}

// fetchOverview calls the OVERVIEW function.
func (c *Client) fetchOverview(ctx context.Context, ticker string) (*overviewResponse, error) {
	body, err := c.query(ctx, "OVERVIEW", ticker)
	if err != nil {
		return nil, err
	}

	var overview overviewResponse
	if err := json.Unmarshal(body, &overview); err != nil {
		return nil, fmt.Errorf("decode overview: %w", err)
	}
	if overview.Symbol == "" {
		return nil, fmt.Errorf("no overview data for %s", ticker)
	}

	return &overview, nil
}

// fetchEPSConsistency checks whether the trailing 4 quarters all beat
// estimates. Returns nil when fewer than 4 quarters are available.
func (c *Client) fetchEPSConsistency(ctx context.Context, ticker string) (*bool, error) {
	body, err := c.query(ctx, "EARNINGS", ticker)
	if err != nil {
		return nil, err
	}

	var earnings earningsResponse
	if err := json.Unmarshal(body, &earnings); err != nil {
		return nil, fmt.Errorf("decode earnings: %w", err)
	}

	if len(earnings.QuarterlyEarnings) < 4 {
		return nil, nil
	}

	for _, q := range earnings.QuarterlyEarnings[:4] {
		reported := parseNumber(q.ReportedEPS)
		estimated := parseNumber(q.EstimatedEPS)
		if reported == nil || estimated == nil {
			return nil, nil
		}
		if *reported < *estimated {
			return contracts.B(false), nil
		}
	}

	return contracts.B(true), nil
}

// query performs one rate-limited API call.
func (c *Client) query(ctx context.Context, function, ticker string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("function", function)
	params.Set("symbol", ticker)
	params.Set("apikey", c.apiKey)

	fullURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// parseNumber parses an Alpha Vantage numeric string. "None", "-" and
// empty values are absent, not zero.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "None" || s == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseFraction parses a fractional string and converts it to percent.
func parseFraction(s string) *float64 {
	v := parseNumber(s)
	if v == nil {
		return nil
	}
	return contracts.F64(*v * 100)
}
