package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/disclosure-metrics/disclo/internal/aggregate"
	"github.com/disclosure-metrics/disclo/internal/model"
	"github.com/disclosure-metrics/disclo/internal/transition"
)

// Renderer writes run output to JSON, Markdown, and xlsx
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// bundleEnvelope is the on-disk shape of a reconciliation run
type bundleEnvelope struct {
	RunReport *model.RunReport          `json:"run_report"`
	Bundles   []model.CompanyYearBundle `json:"bundles"`
}

// RenderBundles writes the reconciled bundles and run report as JSON
func (r *Renderer) RenderBundles(run *RunResult, path string) error {
	return r.renderJSON(bundleEnvelope{RunReport: run.Report, Bundles: run.Bundles}, path)
}

// RenderReportJSON writes the aggregate report set as JSON
func (r *Renderer) RenderReportJSON(result *ReportResult, path string) error {
	return r.renderJSON(result, path)
}

// RenderTransitionsJSON writes transition stats as JSON
func (r *Renderer) RenderTransitionsJSON(stats *transition.Stats, path string) error {
	return r.renderJSON(stats, path)
}

// renderJSON writes any value as indented JSON
func (r *Renderer) renderJSON(v interface{}, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderReportMarkdown writes the aggregate report set as Markdown
func (r *Renderer) RenderReportMarkdown(result *ReportResult, path string) error {
	var b strings.Builder

	b.WriteString("# Disclosure Report\n\n")
	set := result.Set

	writeTable(&b, set.Overall)
	writeTable(&b, set.BestCategories)
	writeTable(&b, set.WeakCategories)
	writeTable(&b, set.Timeframe)
	writeTable(&b, set.Framing)
	writeTable(&b, set.CompanyLeaderboard)
	writeTable(&b, set.TopQuestions)
	writeTable(&b, set.BottomQuestions)
	writeTable(&b, set.MostCovered)
	writeGrid(&b, set.CategoryTimeframe)
	writeGrid(&b, set.CategoryFraming)
	writeGrid(&b, set.FinancialMix)

	if result.Run != nil && result.Run.SkippedRows > 0 {
		fmt.Fprintf(&b, "## Data Quality\n\n%d rows were skipped during reconciliation:\n\n", result.Run.SkippedRows)
		for _, d := range result.Run.Diagnostics {
			if d.Kind == model.DiagReviewerMissing || d.Kind == model.DiagUnknownValue {
				continue
			}
			fmt.Fprintf(&b, "- row %d: %s\n", d.Row, d.Message)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n*Generated by disclo*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderTransitionsMarkdown writes the confusion matrix and change
// attribution tables as Markdown
func (r *Renderer) RenderTransitionsMarkdown(stats *transition.Stats, path string) error {
	var b strings.Builder

	b.WriteString("# Review Transitions\n\n")
	fmt.Fprintf(&b, "Kept rows: %d, removed rows: %d\n\n", stats.Kept, stats.Removed)

	b.WriteString("## Confusion Matrix (original → final)\n\n")
	b.WriteString("| Original |")
	for _, final := range model.Classifications {
		fmt.Fprintf(&b, " %s |", final)
	}
	b.WriteString("\n|---|")
	for range model.Classifications {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for _, original := range model.Classifications {
		fmt.Fprintf(&b, "| %s |", original)
		for _, final := range model.Classifications {
			fmt.Fprintf(&b, " %d |", stats.Matrix[original][final])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n## Changed by Original Classification\n\n| Original | Total | Changed | Changed % |\n|---|---|---|---|\n")
	for _, original := range model.Classifications {
		bucket := stats.PerOriginal[original]
		fmt.Fprintf(&b, "| %s | %d | %d | %.1f |\n", original, bucket.Total, bucket.Changed, bucket.ChangedPct)
	}

	writeChangeTable(&b, "Changes by Category", stats.ByCategory)
	writeChangeTable(&b, "Changes by Framing", stats.ByFraming)
	writeChangeTable(&b, "Changes by Timeframe", stats.ByTimeframe)

	if r.includeFooter {
		b.WriteString("\n---\n\n*Generated by disclo*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderWorkbook exports the reconciled dataset to an xlsx workbook with
// a Reconciled sheet (one row per snippet) and a Summary sheet
func (r *Renderer) RenderWorkbook(bundles []model.CompanyYearBundle, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reconciled"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{
		"Company", "Year", "Question ID", "Question Text", "Category",
		"Snippet ID", "Quote", "Source", "Classification", "Collapsed",
		"Financial Type", "Timeframe", "Framing", "Reviewer Missing",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, b := range bundles {
		for _, q := range b.Questions {
			for _, s := range q.Disclosures {
				reviewerMissing := ""
				if s.Review != nil && s.Review.ReviewerMissing {
					reviewerMissing = "yes"
				}
				values := []interface{}{
					b.Company, b.FiscalYear, q.ID, q.Text, q.Category,
					s.ID, s.Quote, s.Source, string(s.Classification),
					string(s.Classification.Collapse()),
					string(s.FinancialType), string(s.Timeframe), string(s.Framing),
					reviewerMissing,
				}
				for i, v := range values {
					cell, _ := excelize.CoordinatesToCellName(i+1, row)
					f.SetCellValue(sheet, cell, v)
				}
				row++
			}
		}
	}

	const summary = "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	for i, h := range []string{"Company", "Year", "Questions", "Snippets", "Categories"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(summary, cell, h)
	}
	for i, b := range bundles {
		values := []interface{}{
			b.Company, b.FiscalYear,
			b.Summary.TotalQuestions, b.Summary.TotalSnippets,
			strings.Join(b.Summary.Categories, ", "),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(summary, cell, v)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// RenderSummary prints a run summary to stderr
func (r *Renderer) RenderSummary(run *RunResult) {
	report := run.Report
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Run %s\n", report.RunID)
	fmt.Fprintf(os.Stderr, "  Rows:     %d total, %d kept, %d removed, %d skipped\n",
		report.TotalRows, report.KeptRows, report.RemovedRows, report.SkippedRows)
	fmt.Fprintf(os.Stderr, "  Bundles:  %d\n", len(run.Bundles))

	if report.SkippedRows > 0 {
		fmt.Fprintf(os.Stderr, "  Skipped rows:\n")
		for _, d := range report.Diagnostics {
			switch d.Kind {
			case model.DiagMissingCompany, model.DiagMissingYear, model.DiagBadYear:
				fmt.Fprintf(os.Stderr, "    ✗ row %d: %s\n", d.Row, d.Message)
			}
		}
	}
}

// writeTable appends a single-dimension table as Markdown
func writeTable(b *strings.Builder, t aggregate.Table) {
	fmt.Fprintf(b, "## %s\n\n| Key | %% | Disclosure | Total |\n|---|---|---|---|\n", t.Name)
	for _, e := range t.Entries {
		fmt.Fprintf(b, "| %s | %.1f | %d | %d |\n", e.Key, e.Percentage, e.Disclosure, e.Total)
	}
	b.WriteString("\n")
}

// writeGrid appends a two-dimension table as Markdown
func writeGrid(b *strings.Builder, g aggregate.Grid) {
	fmt.Fprintf(b, "## %s\n\n| Row | Col | %% | Count | Total |\n|---|---|---|---|---|\n", g.Name)
	for _, c := range g.Cells {
		fmt.Fprintf(b, "| %s | %s | %.1f | %d | %d |\n", c.Row, c.Col, c.Percentage, c.Count, c.Total)
	}
	b.WriteString("\n")
}

// writeChangeTable appends a change-attribution table as Markdown
func writeChangeTable(b *strings.Builder, title string, t transition.ChangeTable) {
	fmt.Fprintf(b, "\n## %s\n\n| Bucket | Changed |\n|---|---|\n", title)
	for _, key := range t.Order {
		fmt.Fprintf(b, "| %s | %d |\n", key, t.Counts[key])
	}
}
