package contracts

import "time"

// MetricsRecord holds the six raw inputs behind an Investment Profile Score
// for one ticker. Every field is optional: nil means the provider could not
// supply the value, which is distinct from zero. Records are produced fresh
// per scoring call and never mutated afterward.
//
// All ratio fields are percentage points (GrossMargin 68.82 means 68.82%),
// CCC is days, ForwardPE is a plain multiple.
type MetricsRecord struct {
	Ticker string `json:"ticker"`

	// R40 is revenue growth % plus net profit margin % (the "Rule of 40").
	R40 *float64 `json:"r40,omitempty"`

	// GrossMargin is the gross profit margin.
	GrossMargin *float64 `json:"gross_margin,omitempty"`

	// ROIC is the return on invested capital.
	ROIC *float64 `json:"roic,omitempty"`

	// CCC is the cash conversion cycle in days.
	CCC *float64 `json:"ccc,omitempty"`

	// EPSConsistency reports whether the trailing 4 quarters beat EPS
	// estimates.
	EPSConsistency *bool `json:"eps_consistency,omitempty"`

	// ForwardPE is the forward price-to-earnings ratio.
	ForwardPE *float64 `json:"forward_pe,omitempty"`

	// RevenueGrowth is the standalone revenue growth %, used by the graded
	// variant. The continuous score only sees it folded into R40.
	RevenueGrowth *float64 `json:"revenue_growth,omitempty"`

	// FetchedAt records when the provider produced this record.
	FetchedAt time.Time `json:"fetched_at"`
}

// MissingFields returns the names of fields the provider left unset.
func (m *MetricsRecord) MissingFields() []string {
	missing := make([]string, 0)
	if m.R40 == nil {
		missing = append(missing, "r40")
	}
	if m.GrossMargin == nil {
		missing = append(missing, "gross_margin")
	}
	if m.ROIC == nil {
		missing = append(missing, "roic")
	}
	if m.CCC == nil {
		missing = append(missing, "ccc")
	}
	if m.EPSConsistency == nil {
		missing = append(missing, "eps_consistency")
	}
	if m.ForwardPE == nil {
		missing = append(missing, "forward_pe")
	}
	if m.RevenueGrowth == nil {
		missing = append(missing, "revenue_growth")
	}
	return missing
}

// Complete reports whether every field is present.
func (m *MetricsRecord) Complete() bool {
	return len(m.MissingFields()) == 0
}

// F64 returns a pointer to v, for building records inline.
func F64(v float64) *float64 {
	return &v
}

// B returns a pointer to v, for building records inline.
func B(v bool) *bool {
	return &v
}
