package reconcile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/disclosure-metrics/disclo/internal/ingest"
	"github.com/disclosure-metrics/disclo/internal/model"
)

var testDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	return NewEngine("1.0", "extractor-v2", testDate)
}

func row(company, year, questionID, snippetID, classification string) ingest.Row {
	return ingest.Row{
		ingest.FieldCompany:        company,
		ingest.FieldYear:           year,
		ingest.FieldQuestionID:     questionID,
		ingest.FieldQuestionText:   "Does the company disclose emissions?",
		ingest.FieldCategory:       "Environmental",
		ingest.FieldSnippetID:      snippetID,
		ingest.FieldQuote:          "some quote",
		ingest.FieldClassification: classification,
	}
}

func TestReconcile_SingleRow(t *testing.T) {
	// One row, no override, no removal: one bundle with one snippet,
	// classification preserved, reviewer flagged as missing
	rows := []ingest.Row{row("Acme", "2024", "Q1", "S1", "FULL_DISCLOSURE")}

	result := testEngine().Reconcile(rows)

	if len(result.Bundles) != 1 {
		t.Fatalf("expected 1 bundle, got %d", len(result.Bundles))
	}
	b := result.Bundles[0]
	if b.Company != "Acme" || b.FiscalYear != 2024 {
		t.Errorf("bundle key = %s/%d, want Acme/2024", b.Company, b.FiscalYear)
	}
	if b.SchemaVersion != model.SchemaVersion {
		t.Errorf("schema version = %q, want %q", b.SchemaVersion, model.SchemaVersion)
	}

	snippets := b.Snippets()
	if len(snippets) != 1 {
		t.Fatalf("expected 1 snippet, got %d", len(snippets))
	}
	s := snippets[0]
	if s.Classification != model.FullDisclosure {
		t.Errorf("classification = %s, want %s", s.Classification, model.FullDisclosure)
	}
	if s.Review == nil || !s.Review.ReviewerMissing {
		t.Error("expected reviewer-missing flag to be set")
	}
}

func TestReconcile_RemovalIsAbsolute(t *testing.T) {
	removed := row("Acme", "2024", "Q1", "S2", "PARTIAL")
	removed[ingest.FieldRemove] = "YES"

	rows := []ingest.Row{
		row("Acme", "2024", "Q1", "S1", "FULL_DISCLOSURE"),
		removed,
	}

	result := testEngine().Reconcile(rows)

	if result.Report.RemovedRows != 1 {
		t.Errorf("removed rows = %d, want 1", result.Report.RemovedRows)
	}
	if len(result.Bundles) != 1 {
		t.Fatalf("expected 1 bundle, got %d", len(result.Bundles))
	}
	for _, s := range result.Bundles[0].Snippets() {
		if s.ID == "S2" {
			t.Error("removed snippet S2 appeared in reconciled output")
		}
	}
}

func TestReconcile_RemovalTokenMatching(t *testing.T) {
	cases := map[string]bool{
		"YES": true, "yes": true, "Yes": true, " yes ": true,
		"": false, "no": false, "y": false, "yes please": false,
	}
	for raw, want := range cases {
		r := ingest.Row{ingest.FieldRemove: raw}
		if got := Removed(r); got != want {
			t.Errorf("Removed(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestReconcile_OverridePrecedence(t *testing.T) {
	r := row("Acme", "2024", "Q1", "S1", "PARTIAL")
	r[ingest.FieldOverride] = "NO_DISCLOSURE"

	result := testEngine().Reconcile([]ingest.Row{r})

	s := result.Bundles[0].Snippets()[0]
	if s.Classification != model.NoDisclosure {
		t.Errorf("final classification = %s, want %s", s.Classification, model.NoDisclosure)
	}
	if s.Review == nil {
		t.Fatal("expected review trail")
	}
	if s.Review.Original != model.Partial {
		t.Errorf("original = %s, want %s", s.Review.Original, model.Partial)
	}
	if s.Review.ReviewerMissing {
		t.Error("reviewer-missing flag set despite an override")
	}
	if !s.Review.Changed() {
		t.Error("review trail should report a change")
	}
}

func TestReconcile_GroupsByCompanyYearQuestion(t *testing.T) {
	rows := []ingest.Row{
		row("Acme", "2024", "Q1", "S1", "FULL_DISCLOSURE"),
		row("Acme", "2024", "Q2", "S2", "PARTIAL"),
		row("Acme", "2024", "Q1", "S3", "UNCLEAR"),
		row("Acme", "2023", "Q1", "S4", "NO_DISCLOSURE"),
		row("Globex", "2024", "Q1", "S5", "PARTIAL"),
	}

	result := testEngine().Reconcile(rows)

	if len(result.Bundles) != 3 {
		t.Fatalf("expected 3 bundles, got %d", len(result.Bundles))
	}

	// First bundle is Acme 2024 by encounter order, with Q1 holding two snippets
	b := result.Bundles[0]
	if b.Company != "Acme" || b.FiscalYear != 2024 {
		t.Fatalf("first bundle = %s/%d, want Acme/2024", b.Company, b.FiscalYear)
	}
	if len(b.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(b.Questions))
	}
	if b.Questions[0].ID != "Q1" || len(b.Questions[0].Disclosures) != 2 {
		t.Errorf("Q1 has %d snippets, want 2", len(b.Questions[0].Disclosures))
	}
}

func TestReconcile_FirstSeenQuestionTextWins(t *testing.T) {
	first := row("Acme", "2024", "Q1", "S1", "PARTIAL")
	second := row("Acme", "2024", "Q1", "S2", "PARTIAL")
	second[ingest.FieldQuestionText] = "Different wording from another pass"
	second[ingest.FieldCategory] = "Governance"

	result := testEngine().Reconcile([]ingest.Row{first, second})

	q := result.Bundles[0].Questions[0]
	if q.Text != first.Get(ingest.FieldQuestionText) {
		t.Errorf("question text = %q, want first-seen text", q.Text)
	}
	if q.Category != "Environmental" {
		t.Errorf("category = %q, want first-seen Environmental", q.Category)
	}
}

func TestReconcile_DuplicateSnippetIDsAreKept(t *testing.T) {
	dup := row("Acme", "2024", "Q1", "S1", "PARTIAL")
	dup[ingest.FieldDuplicate] = "yes"

	result := testEngine().Reconcile([]ingest.Row{
		row("Acme", "2024", "Q1", "S1", "FULL_DISCLOSURE"),
		dup,
	})

	snippets := result.Bundles[0].Snippets()
	if len(snippets) != 2 {
		t.Fatalf("expected 2 snippets (duplicates are never collapsed), got %d", len(snippets))
	}
	if snippets[1].Duplicate != "yes" {
		t.Errorf("duplicate annotation = %q, want yes", snippets[1].Duplicate)
	}
}

func TestReconcile_MalformedRowsAreSkippedWithDiagnostics(t *testing.T) {
	noCompany := row("", "2024", "Q1", "S1", "PARTIAL")
	noYear := row("Acme", "", "Q1", "S2", "PARTIAL")
	badYear := row("Acme", "twenty24", "Q1", "S3", "PARTIAL")

	result := testEngine().Reconcile([]ingest.Row{
		noCompany, noYear, badYear,
		row("Acme", "2024", "Q1", "S4", "FULL_DISCLOSURE"),
	})

	if result.Report.SkippedRows != 3 {
		t.Errorf("skipped rows = %d, want 3", result.Report.SkippedRows)
	}
	if result.Report.KeptRows != 1 {
		t.Errorf("kept rows = %d, want 1", result.Report.KeptRows)
	}
	if len(result.Bundles) != 1 || len(result.Bundles[0].Snippets()) != 1 {
		t.Error("one corrupt row must not abort reconciliation of the rest")
	}

	kinds := make(map[model.DiagnosticKind]int)
	for _, d := range result.Report.Diagnostics {
		kinds[d.Kind]++
	}
	if kinds[model.DiagMissingCompany] != 1 || kinds[model.DiagMissingYear] != 1 || kinds[model.DiagBadYear] != 1 {
		t.Errorf("diagnostic kinds = %v, want one of each", kinds)
	}
}

func TestReconcile_NoSurvivorsNoBundle(t *testing.T) {
	r := row("Acme", "2024", "Q1", "S1", "PARTIAL")
	r[ingest.FieldRemove] = "yes"

	result := testEngine().Reconcile([]ingest.Row{r})

	if len(result.Bundles) != 0 {
		t.Errorf("expected no bundles (absence, not an empty bundle), got %d", len(result.Bundles))
	}
}

func TestReconcile_SummaryStatistics(t *testing.T) {
	rows := []ingest.Row{
		row("Acme", "2024", "Q1", "S1", "FULL_DISCLOSURE"),
		row("Acme", "2024", "Q1", "S2", "PARTIAL"),
		row("Acme", "2024", "Q2", "S3", "NO_DISCLOSURE"),
	}

	result := testEngine().Reconcile(rows)
	summary := result.Bundles[0].Summary

	if summary.TotalQuestions != 2 {
		t.Errorf("total questions = %d, want 2", summary.TotalQuestions)
	}
	if summary.TotalSnippets != 3 {
		t.Errorf("total snippets = %d, want 3", summary.TotalSnippets)
	}
	if summary.ClassificationCounts[model.FullDisclosure] != 1 ||
		summary.ClassificationCounts[model.Partial] != 1 ||
		summary.ClassificationCounts[model.NoDisclosure] != 1 {
		t.Errorf("classification counts = %v", summary.ClassificationCounts)
	}
	if len(summary.Categories) != 1 || summary.Categories[0] != "Environmental" {
		t.Errorf("categories = %v, want [Environmental]", summary.Categories)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	rows := []ingest.Row{
		row("Acme", "2024", "Q1", "S1", "FULL_DISCLOSURE"),
		row("Globex", "2023", "Q2", "S2", "unrecognized"),
		row("Acme", "2024", "Q2", "S3", "PARTIAL"),
	}

	first := testEngine().Reconcile(rows)
	second := testEngine().Reconcile(rows)

	a, err := json.Marshal(first.Bundles)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(second.Bundles)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("reconciling identical input twice produced different bundles")
	}
}

func TestReconcile_FloatYearCell(t *testing.T) {
	result := testEngine().Reconcile([]ingest.Row{row("Acme", "2024.0", "Q1", "S1", "PARTIAL")})
	if len(result.Bundles) != 1 || result.Bundles[0].FiscalYear != 2024 {
		t.Error("expected spreadsheet float year 2024.0 to parse as 2024")
	}
}
