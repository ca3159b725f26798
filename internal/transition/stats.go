// Package transition measures reviewer impact: how classifications moved
// between the upstream extraction pass and the final reviewed dataset.
// It operates on pre-reconciliation rows so that removed rows can still
// be tallied as removed.
package transition

import (
	"github.com/disclosure-metrics/disclo/internal/ingest"
	"github.com/disclosure-metrics/disclo/internal/model"
	"github.com/disclosure-metrics/disclo/internal/normalize"
	"github.com/disclosure-metrics/disclo/internal/reconcile"
)

// OriginalBucket summarizes review outcomes for one original classification
type OriginalBucket struct {
	Total      int     `json:"total"`
	Changed    int     `json:"changed"`
	ChangedPct float64 `json:"changed_pct"`
}

// ChangeTable counts changed rows per bucket, preserving encounter order
type ChangeTable struct {
	Order  []string       `json:"order"`
	Counts map[string]int `json:"counts"`
}

// add increments the bucket, registering new keys in encounter order
func (t *ChangeTable) add(key string) {
	if _, ok := t.Counts[key]; !ok {
		t.Order = append(t.Order, key)
	}
	t.Counts[key]++
}

func newChangeTable() ChangeTable {
	return ChangeTable{Counts: make(map[string]int)}
}

// Stats is the complete review-transition summary
type Stats struct {
	Kept    int `json:"kept"`
	Removed int `json:"removed"`

	// Matrix counts (original, final) pairs over kept rows only; its
	// diagonal is exactly the unchanged count per original bucket
	Matrix map[model.Classification]map[model.Classification]int `json:"matrix"`

	PerOriginal map[model.Classification]OriginalBucket `json:"per_original"`

	ByCategory  ChangeTable `json:"by_category"`
	ByFraming   ChangeTable `json:"by_framing"`
	ByTimeframe ChangeTable `json:"by_timeframe"`
}

// Computer tallies classification transitions from raw review rows
type Computer struct{}

// NewComputer creates a transition stats computer
func NewComputer() *Computer {
	return &Computer{}
}

// Compute builds transition stats from pre-reconciliation rows. Removed
// rows increment only the removed count and never touch the matrix.
// "Changed" means the final classification (override precedence applied)
// differs from the normalized original.
func (c *Computer) Compute(rows []ingest.Row) *Stats {
	stats := &Stats{
		Matrix:      make(map[model.Classification]map[model.Classification]int),
		PerOriginal: make(map[model.Classification]OriginalBucket),
		ByCategory:  newChangeTable(),
		ByFraming:   newChangeTable(),
		ByTimeframe: newChangeTable(),
	}
	for _, original := range model.Classifications {
		stats.Matrix[original] = make(map[model.Classification]int)
	}

	for _, row := range rows {
		if reconcile.Removed(row) {
			stats.Removed++
			continue
		}
		stats.Kept++

		original := normalize.Classification(row.Get(ingest.FieldClassification))
		final := original
		if override := row.Get(ingest.FieldOverride); override != "" {
			final = normalize.Classification(override)
		}

		stats.Matrix[original][final]++

		bucket := stats.PerOriginal[original]
		bucket.Total++
		if final != original {
			bucket.Changed++
			stats.ByCategory.add(row.Get(ingest.FieldCategory))
			stats.ByFraming.add(string(normalize.Framing(row.Get(ingest.FieldFraming))))
			stats.ByTimeframe.add(string(normalize.Timeframe(row.Get(ingest.FieldTimeframe))))
		}
		stats.PerOriginal[original] = bucket
	}

	for original, bucket := range stats.PerOriginal {
		if bucket.Total > 0 {
			bucket.ChangedPct = float64(bucket.Changed) / float64(bucket.Total) * 100
		}
		stats.PerOriginal[original] = bucket
	}

	return stats
}
