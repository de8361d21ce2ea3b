package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradetips/pkg/config"
	"github.com/wonny/tradetips/pkg/httputil"
	"github.com/wonny/tradetips/pkg/logger"
)

const statsHTML = `<html><body>
<table>
	<tr><td>Forward P/E</td><td>30.12</td></tr>
	<tr><td>PEG Ratio (5 yr expected)</td><td>2.31</td></tr>
</table>
<table>
	<tr><td>Profit Margin</td><td>36.90%</td></tr>
	<tr><td>Operating Margin (ttm)</td><td>44.59%</td></tr>
</table>
<table>
	<tr><td>Quarterly Revenue Growth (yoy)</td><td>15.20%</td></tr>
	<tr><td>Quarterly Earnings Growth (yoy)</td><td>N/A</td></tr>
</table>
</body></html>`

func testLogger() *logger.Logger {
	return logger.New(&config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
	})
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quote/MSFT/key-statistics", r.URL.Path)
		w.Write([]byte(statsHTML))
	}))
	defer server.Close()

	log := testLogger()
	client := NewClient(config.YahooConfig{BaseURL: server.URL},
		httputil.New(log).DisableRetry(), log)

	rec, err := client.Fetch(context.Background(), "msft")
	require.NoError(t, err)

	assert.Equal(t, "MSFT", rec.Ticker)

	require.NotNil(t, rec.ForwardPE)
	assert.Equal(t, 30.12, *rec.ForwardPE)

	require.NotNil(t, rec.RevenueGrowth)
	assert.Equal(t, 15.2, *rec.RevenueGrowth)

	require.NotNil(t, rec.R40)
	assert.InDelta(t, 15.2+36.9, *rec.R40, 1e-9)

	// Not available on the key-statistics page
	assert.Nil(t, rec.GrossMargin)
	assert.Nil(t, rec.ROIC)
	assert.Nil(t, rec.CCC)
	assert.Nil(t, rec.EPSConsistency)
}

func TestFetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	log := testLogger()
	client := NewClient(config.YahooConfig{BaseURL: server.URL},
		httputil.New(log).DisableRetry(), log)

	_, err := client.Fetch(context.Background(), "NOPE")
	assert.Error(t, err)
}

func TestScrapeStats(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(statsHTML))
	require.NoError(t, err)

	stats := scrapeStats(doc)

	require.NotNil(t, stats[labelForwardPE])
	assert.Equal(t, 30.12, *stats[labelForwardPE])
	require.NotNil(t, stats[labelProfitMargin])
	assert.Equal(t, 36.9, *stats[labelProfitMargin])
	require.NotNil(t, stats[labelRevenueGrowth])
	assert.Equal(t, 15.2, *stats[labelRevenueGrowth])
}

func TestParseStatValue(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		present bool
	}{
		{"36.90%", 36.9, true},
		{"30.12", 30.12, true},
		{"1,234.5", 1234.5, true},
		{"-12.5%", -12.5, true},
		{"N/A", 0, false},
		{"--", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got := parseStatValue(tt.in)
		if tt.present {
			require.NotNil(t, got, "parseStatValue(%q)", tt.in)
			assert.Equal(t, tt.want, *got)
		} else {
			assert.Nil(t, got, "parseStatValue(%q)", tt.in)
		}
	}
}
