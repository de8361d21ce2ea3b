package contracts

import "time"

// ScoreComponents breaks an IPS score down into its weighted terms, as the
// dashboard displays them. CCC and PE are stored as the positive magnitudes
// that get subtracted.
type ScoreComponents struct {
	R40  float64 `json:"r40"`
	GPM  float64 `json:"gpm"`
	ROIC float64 `json:"roic"`
	CCC  float64 `json:"ccc"`
	EPS  float64 `json:"eps"`
	PE   float64 `json:"pe"`
}

// ScoreResult is the continuous Investment Profile Score for one ticker.
// A derived value with no identity of its own: recomputed on every request,
// never mutated after creation.
type ScoreResult struct {
	Ticker     string          `json:"ticker"`
	IPS        float64         `json:"ips"`
	Components ScoreComponents `json:"components"`
	ComputedAt time.Time       `json:"computed_at"`
}

// CriterionStatus classifies one grading criterion.
type CriterionStatus string

const (
	StatusPass    CriterionStatus = "pass"
	StatusFail    CriterionStatus = "fail"
	StatusUnknown CriterionStatus = "unknown"
)

// Reason explains one grading criterion. Unknown is deliberately distinct
// from fail: a missing metric neither helps nor hurts the score.
type Reason struct {
	Status CriterionStatus `json:"status"`
	Text   string          `json:"text"`
}

// Criterion names used as keys in GradeResult.Reasons.
const (
	CriterionGrossMargin    = "gross_margin"
	CriterionROIC           = "roic"
	CriterionRevenueGrowth  = "revenue_growth"
	CriterionEPSConsistency = "eps_consistency"
	CriterionForwardPE      = "forward_pe"
	CriterionCCC            = "ccc"
)

// GradeResult is the graded variant: a 0-6 point count, a letter grade and
// per-criterion reasons.
type GradeResult struct {
	Ticker     string            `json:"ticker"`
	Score      int               `json:"score"`
	Grade      string            `json:"grade"`
	Reasons    map[string]Reason `json:"reasons"`
	ComputedAt time.Time         `json:"computed_at"`
}

// Passed returns the number of criteria with Pass status.
func (g *GradeResult) Passed() int {
	n := 0
	for _, r := range g.Reasons {
		if r.Status == StatusPass {
			n++
		}
	}
	return n
}

// Unknowns returns the number of criteria that lacked data.
func (g *GradeResult) Unknowns() int {
	n := 0
	for _, r := range g.Reasons {
		if r.Status == StatusUnknown {
			n++
		}
	}
	return n
}

// BoardEntry pairs both scoring variants for one watchlist ticker. A fetch
// failure is recorded in Err instead of aborting the whole board.
type BoardEntry struct {
	Ticker string       `json:"ticker"`
	Score  *ScoreResult `json:"score,omitempty"`
	Grade  *GradeResult `json:"grade,omitempty"`
	Err    string       `json:"error,omitempty"`
}

// Board is one full pass over the watchlist.
type Board struct {
	Entries     []BoardEntry `json:"entries"`
	GeneratedAt time.Time    `json:"generated_at"`
	Provider    string       `json:"provider"`
}
