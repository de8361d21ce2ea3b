package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wonny/tradetips/internal/contracts"
	"github.com/wonny/tradetips/pkg/config"
	"github.com/wonny/tradetips/pkg/httputil"
	"github.com/wonny/tradetips/pkg/logger"
)

// Client fetches fundamentals from Financial Modeling Prep. FMP is the
// only supported provider with a real cash conversion cycle, so it is the
// one that can fill every field of a metrics record.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
}

// NewClient creates a new FMP client. The shared Redis rate limiter is
// attached to the HTTP client by the provider factory.
func NewClient(cfg config.FMPConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

// Name implements contracts.MetricProvider
func (c *Client) Name() string {
	return "fmp"
}

// ratiosTTM is the subset of /ratios-ttm we read. Fractions, not percent.
type ratiosTTM struct {
	GrossProfitMarginTTM       *float64 `json:"grossProfitMarginTTM"`
	NetProfitMarginTTM         *float64 `json:"netProfitMarginTTM"`
	ReturnOnCapitalEmployedTTM *float64 `json:"returnOnCapitalEmployedTTM"`
	CashConversionCycleTTM     *float64 `json:"cashConversionCycleTTM"`
	PriceEarningsRatioTTM      *float64 `json:"priceEarningsRatioTTM"`
}

// incomeGrowth is the subset of /income-statement-growth we read.
type incomeGrowth struct {
	GrowthRevenue *float64 `json:"growthRevenue"`
}

// earningsSurprise is one row of /earnings-surprises.
type earningsSurprise struct {
	ActualEarningResult *float64 `json:"actualEarningResult"`
	EstimatedEarning    *float64 `json:"estimatedEarning"`
}

// Fetch implements contracts.MetricProvider
func (c *Client) Fetch(ctx context.Context, ticker string) (*contracts.MetricsRecord, error) {
	ticker = strings.ToUpper(ticker)

	rec := &contracts.MetricsRecord{
		Ticker:    ticker,
		FetchedAt: time.Now(),
	}

	var ratios []ratiosTTM
	if err := c.getJSON(ctx, "/ratios-ttm/"+ticker, nil, &ratios); err != nil {
		return nil, fmt.Errorf("fmp ratios for %s: %w", ticker, err)
	}
	if len(ratios) > 0 {
		r := ratios[0]
		rec.GrossMargin = fractionToPercent(r.GrossProfitMarginTTM)
		rec.ROIC = fractionToPercent(r.ReturnOnCapitalEmployedTTM)
		rec.CCC = r.CashConversionCycleTTM
		rec.ForwardPE = r.PriceEarningsRatioTTM
	}

	// Revenue growth comes from a separate endpoint; its absence only
	// blanks the growth-derived fields.
	var growth []incomeGrowth
	if err := c.getJSON(ctx, "/income-statement-growth/"+ticker, url.Values{"limit": {"1"}}, &growth); err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).
			Warn("Income growth lookup failed, revenue growth unknown")
	} else if len(growth) > 0 && growth[0].GrowthRevenue != nil {
		rec.RevenueGrowth = fractionToPercent(growth[0].GrowthRevenue)
		if len(ratios) > 0 && ratios[0].NetProfitMarginTTM != nil {
			rec.R40 = contracts.F64(*rec.RevenueGrowth + *ratios[0].NetProfitMarginTTM*100)
		}
	}

	var surprises []earningsSurprise
	if err := c.getJSON(ctx, "/earnings-surprises/"+ticker, nil, &surprises); err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).
			Warn("Earnings surprises lookup failed, EPS consistency unknown")
	} else {
		rec.EPSConsistency = epsConsistency(surprises)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker":  ticker,
		"missing": rec.MissingFields(),
	}).Debug("Fetched FMP metrics")

	return rec, nil
}

// epsConsistency reports whether the trailing 4 quarters all beat
// estimates; nil when fewer than 4 quarters are available.
func epsConsistency(surprises []earningsSurprise) *bool {
	if len(surprises) < 4 {
		return nil
	}
	for _, s := range surprises[:4] {
		if s.ActualEarningResult == nil || s.EstimatedEarning == nil {
			return nil
		}
		if *s.ActualEarningResult < *s.EstimatedEarning {
			return contracts.B(false)
		}
	}
	return contracts.B(true)
}

// getJSON performs one API call and decodes the response.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)

	fullURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func fractionToPercent(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return contracts.F64(*v * 100)
}
