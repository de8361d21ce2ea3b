package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradetips/pkg/config"
	"github.com/wonny/tradetips/pkg/httputil"
	"github.com/wonny/tradetips/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
	})
}

const overviewJSON = `{
	"Symbol": "MSFT",
	"ProfitMargin": "0.369",
	"GrossProfitTTM": "171008000000",
	"RevenueTTM": "245122000000",
	"QuarterlyRevenueGrowthYOY": "0.152",
	"ForwardPE": "30.1"
}`

const earningsJSON = `{
	"quarterlyEarnings": [
		{"reportedEPS": "2.94", "estimatedEPS": "2.90"},
		{"reportedEPS": "2.69", "estimatedEPS": "2.65"},
		{"reportedEPS": "2.93", "estimatedEPS": "2.77"},
		{"reportedEPS": "2.45", "estimatedEPS": "2.32"},
		{"reportedEPS": "2.10", "estimatedEPS": "2.23"}
	]
}`

func newTestServer(t *testing.T, overview, earnings string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)
		require.Equal(t, "demo", r.URL.Query().Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("function") {
		case "OVERVIEW":
			w.Write([]byte(overview))
		case "EARNINGS":
			w.Write([]byte(earnings))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
}

func newTestClient(serverURL string) *Client {
	log := testLogger()
	return NewClient(config.AlphaVantageConfig{
		APIKey:  "demo",
		BaseURL: serverURL,
	}, httputil.New(log).DisableRetry(), log)
}

func TestFetch(t *testing.T) {
	server := newTestServer(t, overviewJSON, earningsJSON)
	defer server.Close()

	client := newTestClient(server.URL)

	rec, err := client.Fetch(context.Background(), "msft")
	require.NoError(t, err)

	assert.Equal(t, "MSFT", rec.Ticker)

	// R40 = quarterly revenue growth % + profit margin %
	require.NotNil(t, rec.R40)
	assert.InDelta(t, 15.2+36.9, *rec.R40, 1e-9)

	require.NotNil(t, rec.RevenueGrowth)
	assert.InDelta(t, 15.2, *rec.RevenueGrowth, 1e-9)

	// Gross margin derived from GrossProfitTTM / RevenueTTM
	require.NotNil(t, rec.GrossMargin)
	assert.InDelta(t, 171008.0/245122.0*100, *rec.GrossMargin, 1e-6)

	require.NotNil(t, rec.ForwardPE)
	assert.Equal(t, 30.1, *rec.ForwardPE)

	// Trailing 4 quarters all beat (the older miss is outside the window)
	require.NotNil(t, rec.EPSConsistency)
	assert.True(t, *rec.EPSConsistency)

	// Alpha Vantage has no ROIC or CCC
	assert.Nil(t, rec.ROIC)
	assert.Nil(t, rec.CCC)
}

func TestFetchEPSMiss(t *testing.T) {
	earnings := `{
		"quarterlyEarnings": [
			{"reportedEPS": "2.94", "estimatedEPS": "2.90"},
			{"reportedEPS": "2.50", "estimatedEPS": "2.65"},
			{"reportedEPS": "2.93", "estimatedEPS": "2.77"},
			{"reportedEPS": "2.45", "estimatedEPS": "2.32"}
		]
	}`
	server := newTestServer(t, overviewJSON, earnings)
	defer server.Close()

	client := newTestClient(server.URL)

	rec, err := client.Fetch(context.Background(), "MSFT")
	require.NoError(t, err)
	require.NotNil(t, rec.EPSConsistency)
	assert.False(t, *rec.EPSConsistency)
}

func TestFetchShortEarningsHistory(t *testing.T) {
	earnings := `{"quarterlyEarnings": [{"reportedEPS": "2.94", "estimatedEPS": "2.90"}]}`
	server := newTestServer(t, overviewJSON, earnings)
	defer server.Close()

	client := newTestClient(server.URL)

	rec, err := client.Fetch(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Nil(t, rec.EPSConsistency)
}

func TestFetchNoOverview(t *testing.T) {
	server := newTestServer(t, `{}`, earningsJSON)
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Fetch(context.Background(), "NOPE")
	assert.Error(t, err)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		present bool
	}{
		{"30.1", 30.1, true},
		{"0", 0, true},
		{"-12.5", -12.5, true},
		{"None", 0, false},
		{"-", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got := parseNumber(tt.in)
		if tt.present {
			require.NotNil(t, got, "parseNumber(%q)", tt.in)
			assert.Equal(t, tt.want, *got)
		} else {
			assert.Nil(t, got, "parseNumber(%q)", tt.in)
		}
	}
}
