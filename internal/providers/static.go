package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wonny/tradetips/internal/contracts"
)

// Static serves a hardcoded metrics table, the dashboard-demo counterpart
// of the synthetic generator. Tickers outside the table are an error, not
// an empty record, so a typo does not silently grade as all-unknown.
type Static struct {
	table map[string]contracts.MetricsRecord
}

// NewStatic creates a static provider with the built-in demo table
func NewStatic() *Static {
	return &Static{table: demoTable()}
}

// Name implements contracts.MetricProvider
func (p *Static) Name() string {
	return "static"
}

// Fetch implements contracts.MetricProvider
func (p *Static) Fetch(ctx context.Context, ticker string) (*contracts.MetricsRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec, ok := p.table[strings.ToUpper(ticker)]
	if !ok {
		return nil, fmt.Errorf("static provider has no data for %q", ticker)
	}

	out := rec
	out.FetchedAt = time.Now()
	return &out, nil
}

// Tickers returns the symbols present in the table.
func (p *Static) Tickers() []string {
	tickers := make([]string, 0, len(p.table))
	for t := range p.table {
		tickers = append(tickers, t)
	}
	return tickers
}

// demoTable holds the demo metrics. The MSFT row is the observed sample
// the IPS regression fixture is pinned to.
func demoTable() map[string]contracts.MetricsRecord {
	return map[string]contracts.MetricsRecord{
		"MSFT": {
			Ticker:         "MSFT",
			R40:            contracts.F64(53.63),
			GrossMargin:    contracts.F64(68.82),
			ROIC:           contracts.F64(20.51),
			CCC:            contracts.F64(10),
			EPSConsistency: contracts.B(true),
			ForwardPE:      contracts.F64(30),
			RevenueGrowth:  contracts.F64(16.8),
		},
		"AAPL": {
			Ticker:         "AAPL",
			R40:            contracts.F64(31.4),
			GrossMargin:    contracts.F64(46.2),
			ROIC:           contracts.F64(48.1),
			CCC:            contracts.F64(-62),
			EPSConsistency: contracts.B(true),
			ForwardPE:      contracts.F64(28.5),
			RevenueGrowth:  contracts.F64(6.1),
		},
		"NVDA": {
			Ticker:         "NVDA",
			R40:            contracts.F64(142.7),
			GrossMargin:    contracts.F64(75.9),
			ROIC:           contracts.F64(69.2),
			CCC:            contracts.F64(95),
			EPSConsistency: contracts.B(true),
			ForwardPE:      contracts.F64(36.4),
			RevenueGrowth:  contracts.F64(93.7),
		},
		"GOOGL": {
			Ticker:         "GOOGL",
			R40:            contracts.F64(42.5),
			GrossMargin:    contracts.F64(58.1),
			ROIC:           contracts.F64(26.3),
			CCC:            contracts.F64(22),
			EPSConsistency: contracts.B(true),
			ForwardPE:      contracts.F64(21.7),
			RevenueGrowth:  contracts.F64(14.4),
		},
		"AMZN": {
			Ticker:         "AMZN",
			R40:            contracts.F64(19.8),
			GrossMargin:    contracts.F64(48.4),
			ROIC:           contracts.F64(12.9),
			CCC:            contracts.F64(-28),
			EPSConsistency: contracts.B(false),
			ForwardPE:      contracts.F64(33.2),
			RevenueGrowth:  contracts.F64(11.9),
		},
		"META": {
			Ticker:         "META",
			R40:            contracts.F64(51.2),
			GrossMargin:    contracts.F64(81.5),
			ROIC:           contracts.F64(29.8),
			CCC:            contracts.F64(31),
			EPSConsistency: contracts.B(true),
			ForwardPE:      contracts.F64(23.9),
			RevenueGrowth:  contracts.F64(22.1),
		},
		// Smaller names used by the early-opportunities list; partial
		// coverage on purpose.
		"HWM": {
			Ticker:        "HWM",
			R40:           contracts.F64(18.3),
			GrossMargin:   contracts.F64(28.9),
			ForwardPE:     contracts.F64(45.1),
			RevenueGrowth: contracts.F64(12.6),
		},
		"PFE": {
			Ticker:         "PFE",
			R40:            contracts.F64(-8.4),
			GrossMargin:    contracts.F64(58.7),
			ROIC:           contracts.F64(4.2),
			CCC:            contracts.F64(148),
			EPSConsistency: contracts.B(false),
			ForwardPE:      contracts.F64(11.3),
			RevenueGrowth:  contracts.F64(-21.5),
		},
		"AMC": {
			Ticker:        "AMC",
			R40:           contracts.F64(-12.1),
			GrossMargin:   contracts.F64(11.2),
			RevenueGrowth: contracts.F64(2.3),
		},
	}
}
