package transition

import (
	"testing"

	"github.com/disclosure-metrics/disclo/internal/ingest"
	"github.com/disclosure-metrics/disclo/internal/model"
)

func row(classification, override string) ingest.Row {
	return ingest.Row{
		ingest.FieldCompany:        "Acme",
		ingest.FieldYear:           "2024",
		ingest.FieldQuestionID:     "Q1",
		ingest.FieldCategory:       "Environmental",
		ingest.FieldClassification: classification,
		ingest.FieldOverride:       override,
		ingest.FieldFraming:        "Risk",
		ingest.FieldTimeframe:      "Present day",
	}
}

func TestCompute_RemovedRowsNeverReachTheMatrix(t *testing.T) {
	removed := row("PARTIAL", "NO_DISCLOSURE")
	removed[ingest.FieldRemove] = "YES"

	stats := NewComputer().Compute([]ingest.Row{
		row("FULL_DISCLOSURE", ""),
		removed,
	})

	if stats.Kept != 1 || stats.Removed != 1 {
		t.Errorf("kept/removed = %d/%d, want 1/1", stats.Kept, stats.Removed)
	}

	matrixTotal := 0
	for _, finals := range stats.Matrix {
		for _, n := range finals {
			matrixTotal += n
		}
	}
	if matrixTotal != 1 {
		t.Errorf("matrix total = %d, want 1 (removed rows excluded)", matrixTotal)
	}
}

func TestCompute_OverrideIncrementsOffDiagonalCell(t *testing.T) {
	stats := NewComputer().Compute([]ingest.Row{row("PARTIAL", "NO_DISCLOSURE")})

	if got := stats.Matrix[model.Partial][model.NoDisclosure]; got != 1 {
		t.Errorf("matrix[PARTIAL][NO_DISCLOSURE] = %d, want 1", got)
	}

	bucket := stats.PerOriginal[model.Partial]
	if bucket.Total != 1 || bucket.Changed != 1 || bucket.ChangedPct != 100.0 {
		t.Errorf("PARTIAL bucket = %+v, want 1 changed of 1", bucket)
	}
}

func TestCompute_DiagonalIsUnchangedCount(t *testing.T) {
	stats := NewComputer().Compute([]ingest.Row{
		row("PARTIAL", "PARTIAL"),     // Reviewed and confirmed
		row("PARTIAL", ""),            // Never reviewed, stands as-is
		row("PARTIAL", "UNCLEAR"),     // Changed
		row("FULL_DISCLOSURE", ""),    // Unchanged
	})

	if got := stats.Matrix[model.Partial][model.Partial]; got != 2 {
		t.Errorf("diagonal [PARTIAL][PARTIAL] = %d, want 2", got)
	}

	bucket := stats.PerOriginal[model.Partial]
	if bucket.Total != 3 || bucket.Changed != 1 {
		t.Errorf("PARTIAL bucket = %+v, want total 3 changed 1", bucket)
	}
	if pct := bucket.ChangedPct; pct < 33.2 || pct > 33.4 {
		t.Errorf("changed pct = %v, want ~33.3", pct)
	}
}

func TestCompute_ChangeAttribution(t *testing.T) {
	changedEnv := row("PARTIAL", "NO_DISCLOSURE")
	changedGov := row("UNCLEAR", "PARTIAL")
	changedGov[ingest.FieldCategory] = "Governance"
	changedGov[ingest.FieldFraming] = "Opportunity"
	unchanged := row("PARTIAL", "")

	stats := NewComputer().Compute([]ingest.Row{changedEnv, changedGov, unchanged})

	if stats.ByCategory.Counts["Environmental"] != 1 || stats.ByCategory.Counts["Governance"] != 1 {
		t.Errorf("category attribution = %v", stats.ByCategory.Counts)
	}
	if len(stats.ByCategory.Order) != 2 || stats.ByCategory.Order[0] != "Environmental" {
		t.Errorf("category order = %v, want encounter order", stats.ByCategory.Order)
	}
	if stats.ByFraming.Counts["Risk"] != 1 || stats.ByFraming.Counts["Opportunity"] != 1 {
		t.Errorf("framing attribution = %v", stats.ByFraming.Counts)
	}
	if stats.ByTimeframe.Counts["Present day"] != 2 {
		t.Errorf("timeframe attribution = %v", stats.ByTimeframe.Counts)
	}
}

func TestCompute_NormalizesOriginalBeforeComparing(t *testing.T) {
	// "partial" normalizes to PARTIAL; an override saying PARTIAL is no change
	stats := NewComputer().Compute([]ingest.Row{row("partial", "PARTIAL")})

	if got := stats.Matrix[model.Partial][model.Partial]; got != 1 {
		t.Errorf("matrix[PARTIAL][PARTIAL] = %d, want 1", got)
	}
	if stats.PerOriginal[model.Partial].Changed != 0 {
		t.Error("case-only difference must not count as a change")
	}
}

func TestCompute_UnrecognizedOriginalLandsInUnclearBucket(t *testing.T) {
	stats := NewComputer().Compute([]ingest.Row{row("garbage", "FULL_DISCLOSURE")})

	if got := stats.Matrix[model.Unclear][model.FullDisclosure]; got != 1 {
		t.Errorf("matrix[UNCLEAR][FULL_DISCLOSURE] = %d, want 1", got)
	}
}

func TestCompute_Empty(t *testing.T) {
	stats := NewComputer().Compute(nil)
	if stats.Kept != 0 || stats.Removed != 0 {
		t.Errorf("kept/removed = %d/%d, want 0/0", stats.Kept, stats.Removed)
	}
	for _, original := range model.Classifications {
		if stats.Matrix[original] == nil {
			t.Errorf("matrix row %s not initialized", original)
		}
	}
}
