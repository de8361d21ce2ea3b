package quotes

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"
)

// Period selects how much history a series covers.
type Period string

const (
	Period1Y  Period = "1y"
	Period1Mo Period = "1mo"
	Period1D  Period = "1d"
)

// ParsePeriod validates a period string, defaulting empty to 1y.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case Period1Y, Period1Mo, Period1D:
		return Period(s), nil
	case "":
		return Period1Y, nil
	default:
		return "", fmt.Errorf("unknown period %q (want 1y, 1mo or 1d)", s)
	}
}

// days returns the calendar span of the period.
func (p Period) days() int {
	switch p {
	case Period1Y:
		return 365
	case Period1Mo:
		return 30
	default:
		return 1
	}
}

// Candle is one day of synthetic OHLCV data.
type Candle struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Volume int64     `json:"volume"`
}

// Series is a ticker's synthetic price history.
type Series struct {
	Ticker  string   `json:"ticker"`
	Period  Period   `json:"period"`
	Candles []Candle `json:"candles"`
}

// basePrices anchors each demo ticker near a plausible level.
var basePrices = map[string]float64{
	"MSFT":  450,
	"AAPL":  220,
	"NVDA":  1200,
	"GOOGL": 180,
	"HWM":   70,
	"PFE":   30,
	"AMC":   5,
}

const defaultBasePrice = 100

// Generator produces synthetic daily price series, the demo stand-in for
// a real quotes feed. Series are deterministic per ticker so repeated
// requests chart the same walk.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a quotes generator
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Generate builds the series for one ticker and period, ending today.
// The close is a cumulative random walk around the ticker's base price;
// high/low jitter around it and volume is uniform in 1M-10M.
func (g *Generator) Generate(ticker string, period Period) *Series {
	ticker = strings.ToUpper(ticker)

	base, ok := basePrices[ticker]
	if !ok {
		base = defaultBasePrice
	}

	days := period.days()
	end := g.now().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -days)

	rng := rand.New(rand.NewSource(seed(ticker)))

	candles := make([]Candle, 0, days+1)
	price := base
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		price += rng.NormFloat64() * 0.5
		if price < 0.01 {
			price = 0.01
		}

		candles = append(candles, Candle{
			Date:   d,
			Close:  price,
			High:   price + rng.Float64(),
			Low:    price - rng.Float64(),
			Volume: 1_000_000 + rng.Int63n(9_000_000),
		})
	}

	return &Series{
		Ticker:  ticker,
		Period:  period,
		Candles: candles,
	}
}

func seed(ticker string) int64 {
	h := fnv.New64a()
	h.Write([]byte("quotes:" + ticker))
	return int64(h.Sum64())
}
