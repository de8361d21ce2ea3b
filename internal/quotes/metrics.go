package quotes

import "fmt"

// KeyMetrics summarizes a series the way the dashboard header does.
type KeyMetrics struct {
	Ticker        string  `json:"ticker"`
	LastPrice     float64 `json:"last_price"`
	DailyChange   float64 `json:"daily_change"`
	DailyChangePc float64 `json:"daily_change_pct"`
	High52W       float64 `json:"high_52w"`
	Low52W        float64 `json:"low_52w"`
}

// KeyMetricsFor computes last price, daily change and the 52-week range
// for a ticker. The range always comes from a full-year series.
func (g *Generator) KeyMetricsFor(ticker string) (*KeyMetrics, error) {
	s := g.Generate(ticker, Period1Y)
	if len(s.Candles) < 2 {
		return nil, fmt.Errorf("series for %s too short", ticker)
	}

	last := s.Candles[len(s.Candles)-1]
	prev := s.Candles[len(s.Candles)-2]

	change := last.Close - prev.Close
	changePc := 0.0
	if prev.Close != 0 {
		changePc = change / prev.Close * 100
	}

	high, low := s.Candles[0].High, s.Candles[0].Low
	for _, c := range s.Candles[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}

	return &KeyMetrics{
		Ticker:        s.Ticker,
		LastPrice:     last.Close,
		DailyChange:   change,
		DailyChangePc: changePc,
		High52W:       high,
		Low52W:        low,
	}, nil
}
