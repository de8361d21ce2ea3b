package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/tradetips/internal/contracts"
	"github.com/wonny/tradetips/pkg/config"
	"github.com/wonny/tradetips/pkg/httputil"
	"github.com/wonny/tradetips/pkg/logger"
)

// Row labels on the key-statistics page.
const (
	labelProfitMargin  = "Profit Margin"
	labelRevenueGrowth = "Quarterly Revenue Growth"
	labelForwardPE     = "Forward P/E"
)

// Client scrapes the Yahoo Finance key-statistics page as a keyless
// fallback provider. The page carries no gross margin, ROIC or cash
// conversion cycle, so a Yahoo record is always partial; the graded
// variant reports those criteria as unknown.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo scrape client
func NewClient(cfg config.YahooConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
	}
}

// Name implements contracts.MetricProvider
func (c *Client) Name() string {
	return "yahoo"
}

// Fetch implements contracts.MetricProvider
func (c *Client) Fetch(ctx context.Context, ticker string) (*contracts.MetricsRecord, error) {
	ticker = strings.ToUpper(ticker)

	fullURL := fmt.Sprintf("%s/quote/%s/key-statistics", c.baseURL, ticker)

	resp, err := c.httpClient.GetWithHeaders(ctx, fullURL, map[string]string{
		"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo key-statistics for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse key-statistics page: %w", err)
	}

	stats := scrapeStats(doc)

	rec := &contracts.MetricsRecord{
		Ticker:    ticker,
		FetchedAt: time.Now(),
	}

	netMargin := stats[labelProfitMargin]
	revGrowth := stats[labelRevenueGrowth]
	rec.RevenueGrowth = revGrowth
	if netMargin != nil && revGrowth != nil {
		rec.R40 = contracts.F64(*revGrowth + *netMargin)
	}
	rec.ForwardPE = stats[labelForwardPE]

	c.logger.WithFields(map[string]interface{}{
		"ticker":  ticker,
		"missing": rec.MissingFields(),
	}).Debug("Scraped Yahoo metrics")

	return rec, nil
}

// scrapeStats walks the statistics tables and collects label -> value for
// the rows we understand. Percent values come back as percentage points.
func scrapeStats(doc *goquery.Document) map[string]*float64 {
	stats := make(map[string]*float64)

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		label := strings.TrimSpace(cells.First().Text())
		value := strings.TrimSpace(cells.Eq(1).Text())

		for _, want := range []string{labelProfitMargin, labelRevenueGrowth, labelForwardPE} {
			if strings.HasPrefix(label, want) {
				stats[want] = parseStatValue(value)
			}
		}
	})

	return stats
}

// parseStatValue parses a cell like "36.43%", "28.91" or "N/A".
func parseStatValue(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" || s == "--" {
		return nil
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
