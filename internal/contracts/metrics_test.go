package contracts

import (
	"encoding/json"
	"testing"
)

func TestMetricsRecordMissingFields(t *testing.T) {
	empty := &MetricsRecord{Ticker: "EMPTY"}
	if got := len(empty.MissingFields()); got != 7 {
		t.Errorf("MissingFields() on empty record = %d fields, want 7", got)
	}
	if empty.Complete() {
		t.Error("empty record should not be complete")
	}

	full := &MetricsRecord{
		Ticker:         "MSFT",
		R40:            F64(53.63),
		GrossMargin:    F64(68.82),
		ROIC:           F64(20.51),
		CCC:            F64(10),
		EPSConsistency: B(true),
		ForwardPE:      F64(30),
		RevenueGrowth:  F64(15.2),
	}
	if missing := full.MissingFields(); len(missing) != 0 {
		t.Errorf("MissingFields() on full record = %v, want none", missing)
	}
	if !full.Complete() {
		t.Error("full record should be complete")
	}

	partial := &MetricsRecord{
		Ticker:      "PART",
		GrossMargin: F64(55),
	}
	missing := partial.MissingFields()
	if len(missing) != 6 {
		t.Errorf("MissingFields() = %v, want 6 entries", missing)
	}
	for _, name := range missing {
		if name == "gross_margin" {
			t.Error("gross_margin should not be reported missing")
		}
	}
}

func TestMetricsRecordJSONOmitsAbsentFields(t *testing.T) {
	rec := &MetricsRecord{
		Ticker: "PART",
		R40:    F64(12.5),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if _, present := decoded["gross_margin"]; present {
		t.Error("absent gross_margin should be omitted from JSON, not encoded as 0")
	}
	if v, present := decoded["r40"]; !present || v.(float64) != 12.5 {
		t.Errorf("r40 = %v, want 12.5", v)
	}
}

func TestGradeResultCounts(t *testing.T) {
	result := &GradeResult{
		Ticker: "TEST",
		Reasons: map[string]Reason{
			CriterionGrossMargin:   {Status: StatusPass},
			CriterionROIC:          {Status: StatusPass},
			CriterionRevenueGrowth: {Status: StatusFail},
			CriterionForwardPE:     {Status: StatusUnknown},
			CriterionCCC:           {Status: StatusUnknown},
		},
	}

	if got := result.Passed(); got != 2 {
		t.Errorf("Passed() = %d, want 2", got)
	}
	if got := result.Unknowns(); got != 2 {
		t.Errorf("Unknowns() = %d, want 2", got)
	}
}
