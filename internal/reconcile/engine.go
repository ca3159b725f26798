package reconcile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/disclosure-metrics/disclo/internal/ingest"
	"github.com/disclosure-metrics/disclo/internal/model"
	"github.com/disclosure-metrics/disclo/internal/normalize"
)

// RemovalToken is the reviewer mark that excludes a row from analysis
const RemovalToken = "yes"

// Removed reports whether the reviewer affirmatively marked the row for
// removal. Only a case-insensitive exact "yes" counts; blanks, "no", and
// anything else keep the row.
func Removed(row ingest.Row) bool {
	return strings.EqualFold(row.Get(ingest.FieldRemove), RemovalToken)
}

// Engine applies removal and reviewer-override rules to raw rows and
// groups the survivors into company-year bundles. A reconciliation run is
// a pure function of its input rows and the engine's fixed metadata, so
// re-running on identical input produces identical bundles.
type Engine struct {
	normalizer   *normalize.Normalizer
	version      string
	modelUsed    string
	analysisDate time.Time
}

// NewEngine creates a reconciliation engine. The analysis date is fixed
// at construction so every bundle of a run carries the same stamp.
func NewEngine(version, modelUsed string, analysisDate time.Time) *Engine {
	return &Engine{
		normalizer:   normalize.NewNormalizer(),
		version:      version,
		modelUsed:    modelUsed,
		analysisDate: analysisDate,
	}
}

// Result is the output of one reconciliation run
type Result struct {
	Bundles []model.CompanyYearBundle
	Report  *model.RunReport
}

// questionKey identifies a question within a company-year
type questionKey struct {
	bundle model.BundleKey
	id     string
}

// Reconcile normalizes, filters, and groups raw rows into bundles.
// Row-level defects are skipped with a diagnostic; they never abort the
// run. A company-year with zero surviving rows produces no bundle.
func (e *Engine) Reconcile(rows []ingest.Row) *Result {
	report := model.NewRunReport("")
	report.TotalRows = len(rows)

	// Bundles and questions are appended in encounter order, so output
	// order is deterministic for identical input
	bundleIndex := make(map[model.BundleKey]int)
	var bundles []model.CompanyYearBundle

	questionIndex := make(map[questionKey]int) // Key -> index within its bundle's questions

	for i, row := range rows {
		line := i + 2 // 1-based, after the header row

		// 1. Removal filter: removed rows never reach any bundle
		if Removed(row) {
			report.RemovedRows++
			continue
		}

		// 2. Identity: a row without company or year cannot be grouped
		company := row.Get(ingest.FieldCompany)
		if company == "" {
			report.SkippedRows++
			report.Add(model.Diagnostic{
				Row:     line,
				Kind:    model.DiagMissingCompany,
				Field:   ingest.FieldCompany,
				Message: "row has no company, excluded from grouping",
			})
			continue
		}
		year, err := parseYear(row.Get(ingest.FieldYear))
		if err != nil {
			report.SkippedRows++
			kind := model.DiagBadYear
			if row.Get(ingest.FieldYear) == "" {
				kind = model.DiagMissingYear
			}
			report.Add(model.Diagnostic{
				Row:     line,
				Kind:    kind,
				Field:   ingest.FieldYear,
				Message: fmt.Sprintf("row has no usable year: %v", err),
			})
			continue
		}

		report.KeptRows++

		// 3. Normalize and apply reviewer-override precedence
		snippet := e.normalizer.Snippet(row)
		if raw := row.Get(ingest.FieldClassification); raw != "" && !normalize.KnownClassification(raw) {
			report.Add(model.Diagnostic{
				Row:     line,
				Kind:    model.DiagUnknownValue,
				Field:   ingest.FieldClassification,
				Message: fmt.Sprintf("unrecognized classification %q resolved to %s", raw, model.Unclear),
			})
		}
		snippet.Review = resolveReview(row, snippet.Classification)
		snippet.Classification = snippet.Review.Final
		if snippet.Review.ReviewerMissing {
			report.Add(model.Diagnostic{
				Row:     line,
				Kind:    model.DiagReviewerMissing,
				Field:   ingest.FieldOverride,
				Message: "no reviewer classification recorded",
			})
		}

		// 4. Group into questions and bundles by encounter order
		key := model.BundleKey{Company: company, Year: year}
		bi, ok := bundleIndex[key]
		if !ok {
			bi = len(bundles)
			bundleIndex[key] = bi
			bundles = append(bundles, model.CompanyYearBundle{
				Company:       company,
				FiscalYear:    year,
				Version:       e.version,
				ModelUsed:     e.modelUsed,
				AnalysisDate:  e.analysisDate,
				SchemaVersion: model.SchemaVersion,
			})
		}

		qk := questionKey{bundle: key, id: row.Get(ingest.FieldQuestionID)}
		qi, ok := questionIndex[qk]
		if !ok {
			qi = len(bundles[bi].Questions)
			questionIndex[qk] = qi
			// First-seen text and category win for the question
			bundles[bi].Questions = append(bundles[bi].Questions, model.Question{
				ID:          qk.id,
				Text:        row.Get(ingest.FieldQuestionText),
				Category:    row.Get(ingest.FieldCategory),
				SubCategory: row.Get(ingest.FieldSubCategory),
			})
		}
		bundles[bi].Questions[qi].Disclosures = append(bundles[bi].Questions[qi].Disclosures, snippet)
	}

	// 5. Summary statistics: a pure fold per bundle, never partial
	for i := range bundles {
		bundles[i].Summary = bundles[i].ComputeSummary()
	}

	return &Result{Bundles: bundles, Report: report}
}

// resolveReview applies override precedence: the reviewer's value wins
// when present, otherwise the normalized original stands and the snippet
// is flagged as never reviewed.
func resolveReview(row ingest.Row, original model.Classification) *model.ReviewTrail {
	override := row.Get(ingest.FieldOverride)
	if override == "" {
		return &model.ReviewTrail{
			Original:        original,
			Final:           original,
			ReviewerMissing: true,
		}
	}
	return &model.ReviewTrail{
		Original: original,
		Final:    normalize.Classification(override),
	}
}

// parseYear parses a fiscal year cell, tolerating float-formatted cells
// like "2024.0" that spreadsheets produce
func parseYear(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty year")
	}
	if year, err := strconv.Atoi(raw); err == nil {
		return year, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse year %q: %w", raw, err)
	}
	return int(f), nil
}
