package scoring

import (
	"time"

	"github.com/wonny/tradetips/internal/contracts"
	"github.com/wonny/tradetips/pkg/logger"
)

// MissingPolicy names how a scoring variant treats absent metrics. The two
// variants deliberately differ and must not be mixed: the continuous score
// silently degrades, the graded variant reports unknowns.
type MissingPolicy string

const (
	// MissingZero treats an absent metric as a zero contribution.
	MissingZero MissingPolicy = "zero"

	// MissingUnknown excludes an absent metric from both pass and fail
	// counts and surfaces it distinctly.
	MissingUnknown MissingPolicy = "unknown"
)

// Component weights and normalization bounds of the IPS formula.
const (
	weightR40  = 0.4
	weightGPM  = 0.2
	weightROIC = 0.2
	weightCCC  = 0.1
	weightEPS  = 0.1
	weightPE   = 0.1

	gpmFloor  = 60.0 // % gross margin below which the term is zero
	gpmRange  = 40.0
	roicFloor = 10.0 // % ROIC below which the term is zero
	roicRange = 40.0
	cccRange  = 100.0 // days at which the CCC penalty saturates
	peFloor   = 20.0  // forward P/E below which there is no penalty
	peRange   = 20.0
)

// Scorer computes the continuous Investment Profile Score.
//
// Missing policy: MissingZero. An absent field contributes 0 to its term and
// never raises an error, so a ticker with partial coverage silently scores
// lower than it would with full data. Callers that care should check
// MetricsRecord.MissingFields first; Compute logs the degradation at debug
// level.
type Scorer struct {
	logger *logger.Logger
}

// NewScorer creates a new scorer
func NewScorer(log *logger.Logger) *Scorer {
	return &Scorer{logger: log}
}

// Policy returns the missing-data policy of the continuous variant.
func (s *Scorer) Policy() MissingPolicy {
	return MissingZero
}

// Compute derives the IPS for one metrics record.
//
// R40 is unclamped and dominates the score: it rewards unbounded
// growth+margin combinations. GPM and ROIC contribute a normalized
// above-threshold bonus capped at full credit. CCC and forward P/E are
// penalties normalized the same way and capped at one weight each. EPS
// consistency is a flat binary bonus.
func (s *Scorer) Compute(rec *contracts.MetricsRecord) contracts.ScoreResult {
	if missing := rec.MissingFields(); len(missing) > 0 {
		s.logger.WithFields(map[string]interface{}{
			"ticker":  rec.Ticker,
			"missing": missing,
		}).Debug("Scoring with missing metrics, absent terms contribute zero")
	}

	comp := contracts.ScoreComponents{
		R40:  f64OrZero(rec.R40) * weightR40,
		GPM:  clamp01((f64OrZero(rec.GrossMargin)-gpmFloor)/gpmRange) * weightGPM,
		ROIC: clamp01((f64OrZero(rec.ROIC)-roicFloor)/roicRange) * weightROIC,
		CCC:  clamp01(f64OrZero(rec.CCC)/cccRange) * weightCCC,
		EPS:  boolToFloat(rec.EPSConsistency) * weightEPS,
		PE:   clamp01((f64OrZero(rec.ForwardPE)-peFloor)/peRange) * weightPE,
	}

	ips := comp.R40 + comp.GPM + comp.ROIC - comp.CCC + comp.EPS - comp.PE

	return contracts.ScoreResult{
		Ticker:     rec.Ticker,
		IPS:        ips,
		Components: comp,
		ComputedAt: time.Now(),
	}
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func f64OrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func boolToFloat(p *bool) float64 {
	if p == nil || !*p {
		return 0
	}
	return 1
}
