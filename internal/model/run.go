package model

import (
	"time"

	"github.com/google/uuid"
)

// DiagnosticKind classifies a row-level data quality condition
type DiagnosticKind string

const (
	DiagMissingCompany  DiagnosticKind = "missing_company"
	DiagMissingYear     DiagnosticKind = "missing_year"
	DiagBadYear         DiagnosticKind = "bad_year"
	DiagUnknownValue    DiagnosticKind = "unknown_value"     // Enum value fell back to its default
	DiagReviewerMissing DiagnosticKind = "reviewer_missing"  // No override recorded for a kept row
)

// Diagnostic records one row-level condition. Diagnostics are reported,
// never fatal: a corrupt row must not abort the rest of the run.
type Diagnostic struct {
	Row     int            `json:"row"` // 1-based position in the input, 0 if unknown
	Kind    DiagnosticKind `json:"kind"`
	Field   string         `json:"field,omitempty"`
	Message string         `json:"message"`
}

// RunReport summarizes one reconciliation run: what came in, what was
// kept, and why anything was skipped. A run that skipped rows must say
// how many and why, not silently under-count.
type RunReport struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	Input      string       `json:"input,omitempty"`
	TotalRows  int          `json:"total_rows"`
	KeptRows   int          `json:"kept_rows"`
	RemovedRows int         `json:"removed_rows"`
	SkippedRows int         `json:"skipped_rows"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// NewRunReport starts a run report with a fresh identifier
func NewRunReport(input string) *RunReport {
	return &RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Input:     input,
	}
}

// Add appends a diagnostic to the report
func (r *RunReport) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}
