package quotes

import (
	"testing"
	"time"
)

func fixedGenerator() *Generator {
	g := NewGenerator()
	g.now = func() time.Time {
		return time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	}
	return g
}

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"1y", Period1Y, false},
		{"1mo", Period1Mo, false},
		{"1d", Period1D, false},
		{"", Period1Y, false},
		{"6mo", "", true},
	}
	for _, tc := range cases {
		got, err := ParsePeriod(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParsePeriod(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePeriod(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParsePeriod(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := fixedGenerator()

	a := g.Generate("msft", Period1Mo)
	b := g.Generate("MSFT", Period1Mo)

	if a.Ticker != "MSFT" {
		t.Errorf("ticker not uppercased: %q", a.Ticker)
	}
	if len(a.Candles) != len(b.Candles) {
		t.Fatalf("lengths differ: %d vs %d", len(a.Candles), len(b.Candles))
	}
	for i := range a.Candles {
		if a.Candles[i] != b.Candles[i] {
			t.Fatalf("candle %d differs between identical requests", i)
		}
	}
}

func TestGenerateShape(t *testing.T) {
	g := fixedGenerator()

	s := g.Generate("MSFT", Period1Y)
	if len(s.Candles) != 366 {
		t.Fatalf("expected 366 candles for 1y, got %d", len(s.Candles))
	}

	for i, c := range s.Candles {
		if c.High < c.Close {
			t.Errorf("candle %d: high %.2f below close %.2f", i, c.High, c.Close)
		}
		if c.Low > c.Close {
			t.Errorf("candle %d: low %.2f above close %.2f", i, c.Low, c.Close)
		}
		if c.Volume < 1_000_000 || c.Volume >= 10_000_000 {
			t.Errorf("candle %d: volume %d out of range", i, c.Volume)
		}
		if c.Close <= 0 {
			t.Errorf("candle %d: close %.2f not positive", i, c.Close)
		}
	}

	// The walk stays loosely anchored to the base price.
	last := s.Candles[len(s.Candles)-1].Close
	if last < 300 || last > 600 {
		t.Errorf("MSFT close drifted implausibly far from base: %.2f", last)
	}
}

func TestGenerateUnknownTickerUsesDefaultBase(t *testing.T) {
	g := fixedGenerator()

	s := g.Generate("ZZZZ", Period1D)
	if len(s.Candles) != 2 {
		t.Fatalf("expected 2 candles for 1d, got %d", len(s.Candles))
	}
	first := s.Candles[0].Close
	if first < 50 || first > 150 {
		t.Errorf("unknown ticker should start near %d, got %.2f", defaultBasePrice, first)
	}
}

func TestKeyMetrics(t *testing.T) {
	g := fixedGenerator()

	km, err := g.KeyMetricsFor("msft")
	if err != nil {
		t.Fatalf("KeyMetricsFor: %v", err)
	}
	if km.Ticker != "MSFT" {
		t.Errorf("ticker = %q", km.Ticker)
	}

	s := g.Generate("MSFT", Period1Y)
	last := s.Candles[len(s.Candles)-1]
	prev := s.Candles[len(s.Candles)-2]

	if km.LastPrice != last.Close {
		t.Errorf("last price %.4f != final close %.4f", km.LastPrice, last.Close)
	}
	if got := last.Close - prev.Close; km.DailyChange != got {
		t.Errorf("daily change %.4f != %.4f", km.DailyChange, got)
	}
	if km.High52W < km.LastPrice-0.0001 && km.High52W < last.High {
		t.Errorf("52w high %.4f below last high %.4f", km.High52W, last.High)
	}
	if km.Low52W > km.High52W {
		t.Errorf("52w low %.4f above high %.4f", km.Low52W, km.High52W)
	}
}

func TestListOpportunitiesCopies(t *testing.T) {
	ops := ListOpportunities()
	if len(ops.LargeCaps) == 0 || len(ops.Early) == 0 {
		t.Fatal("opportunity lists should not be empty")
	}

	ops.LargeCaps[0] = "MUTATED"
	if LargeCapLeaders[0] == "MUTATED" {
		t.Error("ListOpportunities returned a shared slice")
	}
}
