package model

import (
	"sort"
	"time"
)

// SchemaVersion identifies the bundle output schema
const SchemaVersion = "2.1"

// Question is a unit of inquiry within a company-year. All snippets under
// a question share the same (company, year, question identifier) key.
type Question struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Category    string    `json:"category"`
	SubCategory string    `json:"sub_category,omitempty"`
	Disclosures []Snippet `json:"disclosures"`
}

// SummaryStatistics is derived from a bundle's questions and never
// independently mutated. Recompute it with ComputeSummary after any change.
type SummaryStatistics struct {
	TotalQuestions       int                    `json:"total_questions"`
	TotalSnippets        int                    `json:"total_snippets"`
	ClassificationCounts map[Classification]int `json:"classification_counts"`
	Categories           []string               `json:"categories"`
}

// CompanyYearBundle is the reconciled unit of output. After reconciliation
// at most one bundle exists per (company, year).
type CompanyYearBundle struct {
	Company       string            `json:"company"`
	FiscalYear    int               `json:"fiscal_year"`
	Version       string            `json:"version,omitempty"`
	ModelUsed     string            `json:"model_used,omitempty"`
	AnalysisDate  time.Time         `json:"analysis_date"`
	SchemaVersion string            `json:"schema_version"`
	Questions     []Question        `json:"analysis_results"`
	Summary       SummaryStatistics `json:"summary_statistics"`
}

// ComputeSummary folds a bundle's questions into fresh summary statistics
func (b *CompanyYearBundle) ComputeSummary() SummaryStatistics {
	summary := SummaryStatistics{
		ClassificationCounts: make(map[Classification]int),
	}

	categories := make(map[string]bool)
	for _, q := range b.Questions {
		summary.TotalQuestions++
		if q.Category != "" {
			categories[q.Category] = true
		}
		for _, s := range q.Disclosures {
			summary.TotalSnippets++
			summary.ClassificationCounts[s.Classification]++
		}
	}

	summary.Categories = make([]string, 0, len(categories))
	for c := range categories {
		summary.Categories = append(summary.Categories, c)
	}
	sort.Strings(summary.Categories)

	return summary
}

// Snippets returns every snippet in the bundle in question order
func (b *CompanyYearBundle) Snippets() []Snippet {
	var out []Snippet
	for _, q := range b.Questions {
		out = append(out, q.Disclosures...)
	}
	return out
}

// Key returns the (company, year) identity of the bundle
func (b *CompanyYearBundle) Key() BundleKey {
	return BundleKey{Company: b.Company, Year: b.FiscalYear}
}

// BundleKey identifies a company-year pair
type BundleKey struct {
	Company string
	Year    int
}
