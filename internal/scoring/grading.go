package scoring

import (
	"fmt"
	"time"

	"github.com/wonny/tradetips/internal/contracts"
	"github.com/wonny/tradetips/pkg/logger"
)

// Grading thresholds, in the same units as MetricsRecord (percentage
// points, days, plain multiple).
const (
	gradeMinGrossMargin   = 40.0 // GPM must exceed 40%
	gradeMinROIC          = 10.0 // ROIC must exceed 10%
	gradeMinRevenueGrowth = 10.0 // revenue growth must exceed 10%
	gradeMaxForwardPE     = 20.0 // forward P/E must be below 20
	gradeMaxCCC           = 30.0 // CCC must be below 30 days
)

// Grade labels, ordinal thresholds evaluated top-down, first match wins.
const (
	GradeStrongBuy   = "A (Strong Buy)"
	GradeConsiderBuy = "B (Consider Buy)"
	GradeHold        = "C (Hold)"
	GradeSell        = "D (Sell)"
)

// Grader converts raw metrics into six pass/fail criteria and a letter
// grade.
//
// Missing policy: MissingUnknown. A criterion is evaluated only when its
// metric is present; an absent metric contributes neither a pass nor a
// fail, and its reason string reports unknown data, never a failure.
type Grader struct {
	logger *logger.Logger
}

// NewGrader creates a new grader
func NewGrader(log *logger.Logger) *Grader {
	return &Grader{logger: log}
}

// Policy returns the missing-data policy of the graded variant.
func (g *Grader) Policy() MissingPolicy {
	return MissingUnknown
}

// Grade evaluates the six criteria for one metrics record. Each passing
// criterion is worth one point; score is the count in [0, 6].
func (g *Grader) Grade(rec *contracts.MetricsRecord) contracts.GradeResult {
	reasons := map[string]contracts.Reason{
		contracts.CriterionGrossMargin: gradeAbove(
			rec.GrossMargin, gradeMinGrossMargin, "Gross margin", "%"),
		contracts.CriterionROIC: gradeAbove(
			rec.ROIC, gradeMinROIC, "ROIC", "%"),
		contracts.CriterionRevenueGrowth: gradeAbove(
			rec.RevenueGrowth, gradeMinRevenueGrowth, "Revenue growth", "%"),
		contracts.CriterionEPSConsistency: gradeEPS(rec.EPSConsistency),
		contracts.CriterionForwardPE: gradeBelow(
			rec.ForwardPE, gradeMaxForwardPE, "Forward P/E", ""),
		contracts.CriterionCCC: gradeBelow(
			rec.CCC, gradeMaxCCC, "Cash conversion cycle", " days"),
	}

	score := 0
	for _, r := range reasons {
		if r.Status == contracts.StatusPass {
			score++
		}
	}

	result := contracts.GradeResult{
		Ticker:     rec.Ticker,
		Score:      score,
		Grade:      gradeForScore(score),
		Reasons:    reasons,
		ComputedAt: time.Now(),
	}

	g.logger.WithFields(map[string]interface{}{
		"ticker":   rec.Ticker,
		"score":    score,
		"grade":    result.Grade,
		"unknowns": result.Unknowns(),
	}).Debug("Graded stock")

	return result
}

// gradeForScore maps a 0-6 point count to a letter grade.
func gradeForScore(score int) string {
	switch {
	case score >= 5:
		return GradeStrongBuy
	case score >= 3:
		return GradeConsiderBuy
	case score >= 1:
		return GradeHold
	default:
		return GradeSell
	}
}

// gradeAbove evaluates a strictly-greater-than criterion.
func gradeAbove(value *float64, threshold float64, label, unit string) contracts.Reason {
	if value == nil {
		return unknownReason(label)
	}
	if *value > threshold {
		return contracts.Reason{
			Status: contracts.StatusPass,
			Text:   fmt.Sprintf("✅ %s %.2f%s above %.0f%s", label, *value, unit, threshold, unit),
		}
	}
	return contracts.Reason{
		Status: contracts.StatusFail,
		Text:   fmt.Sprintf("❌ %s %.2f%s at or below %.0f%s", label, *value, unit, threshold, unit),
	}
}

// gradeBelow evaluates a strictly-less-than criterion.
func gradeBelow(value *float64, threshold float64, label, unit string) contracts.Reason {
	if value == nil {
		return unknownReason(label)
	}
	if *value < threshold {
		return contracts.Reason{
			Status: contracts.StatusPass,
			Text:   fmt.Sprintf("✅ %s %.2f%s below %.0f%s", label, *value, unit, threshold, unit),
		}
	}
	return contracts.Reason{
		Status: contracts.StatusFail,
		Text:   fmt.Sprintf("❌ %s %.2f%s at or above %.0f%s", label, *value, unit, threshold, unit),
	}
}

// gradeEPS passes only on exactly true, not merely present.
func gradeEPS(value *bool) contracts.Reason {
	if value == nil {
		return unknownReason("EPS consistency")
	}
	if *value {
		return contracts.Reason{
			Status: contracts.StatusPass,
			Text:   "✅ EPS beat estimates in the trailing 4 quarters",
		}
	}
	return contracts.Reason{
		Status: contracts.StatusFail,
		Text:   "❌ EPS missed estimates in the trailing 4 quarters",
	}
}

func unknownReason(label string) contracts.Reason {
	return contracts.Reason{
		Status: contracts.StatusUnknown,
		Text:   fmt.Sprintf("⚠️ %s unavailable, criterion not counted", label),
	}
}
