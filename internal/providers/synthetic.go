package providers

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/wonny/tradetips/internal/contracts"
)

// Synthetic generates plausible metrics deterministically from the ticker
// symbol, for demos and tests without any external API. The same ticker
// always yields the same record.
type Synthetic struct{}

// NewSynthetic creates a synthetic provider
func NewSynthetic() *Synthetic {
	return &Synthetic{}
}

// Name implements contracts.MetricProvider
func (p *Synthetic) Name() string {
	return "synthetic"
}

// Fetch implements contracts.MetricProvider. Roughly one ticker in five is
// generated with a missing CCC and one in seven with missing EPS history,
// so downstream unknown handling gets exercised on realistic input.
func (p *Synthetic) Fetch(ctx context.Context, ticker string) (*contracts.MetricsRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ticker = strings.ToUpper(ticker)
	rng := rand.New(rand.NewSource(tickerSeed(ticker)))

	revGrowth := -5 + rng.Float64()*40   // -5% .. 35%
	netMargin := -2 + rng.Float64()*32   // -2% .. 30%
	grossMargin := 25 + rng.Float64()*60 // 25% .. 85%
	roic := rng.Float64() * 35
	ccc := rng.Float64() * 120
	forwardPE := 8 + rng.Float64()*42
	epsBeat := rng.Float64() < 0.55

	rec := &contracts.MetricsRecord{
		Ticker:         ticker,
		R40:            contracts.F64(round2(revGrowth + netMargin)),
		GrossMargin:    contracts.F64(round2(grossMargin)),
		ROIC:           contracts.F64(round2(roic)),
		CCC:            contracts.F64(round2(ccc)),
		EPSConsistency: contracts.B(epsBeat),
		ForwardPE:      contracts.F64(round2(forwardPE)),
		RevenueGrowth:  contracts.F64(round2(revGrowth)),
		FetchedAt:      time.Now(),
	}

	if rng.Intn(5) == 0 {
		rec.CCC = nil
	}
	if rng.Intn(7) == 0 {
		rec.EPSConsistency = nil
	}

	return rec, nil
}

func tickerSeed(ticker string) int64 {
	h := fnv.New64a()
	h.Write([]byte(ticker))
	return int64(h.Sum64())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
