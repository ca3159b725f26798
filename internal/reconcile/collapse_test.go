package reconcile

import (
	"testing"

	"github.com/disclosure-metrics/disclo/internal/ingest"
	"github.com/disclosure-metrics/disclo/internal/model"
)

func TestCollapse(t *testing.T) {
	cases := map[model.Classification]model.CollapsedClassification{
		model.FullDisclosure: model.Disclosed,
		model.Partial:        model.Disclosed,
		model.Unclear:        model.NotDisclosed,
		model.NoDisclosure:   model.NotDisclosed,
	}
	for c, want := range cases {
		if got := Collapse(c); got != want {
			t.Errorf("Collapse(%s) = %s, want %s", c, got, want)
		}
	}
}

func TestCollapse_UnrecognizedDefaultsToNotDisclosed(t *testing.T) {
	// Safety net only: values outside the enum should already have been
	// normalized away upstream
	if got := Collapse(model.Classification("SOMETHING_ELSE")); got != model.NotDisclosed {
		t.Errorf("Collapse(SOMETHING_ELSE) = %s, want %s", got, model.NotDisclosed)
	}
}

func TestCollapseBundles_AttachesWithoutMutating(t *testing.T) {
	result := testEngine().Reconcile([]ingest.Row{
		row("Acme", "2024", "Q1", "S1", "PARTIAL"),
		row("Acme", "2024", "Q1", "S2", "UNCLEAR"),
	})

	collapsed := CollapseBundles(result.Bundles)

	// Originals stay untouched
	for _, s := range result.Bundles[0].Snippets() {
		if s.Collapsed != "" {
			t.Errorf("original snippet %s was mutated: collapsed = %q", s.ID, s.Collapsed)
		}
	}

	snippets := collapsed[0].Snippets()
	if snippets[0].Collapsed != model.Disclosed {
		t.Errorf("S1 collapsed = %q, want %s", snippets[0].Collapsed, model.Disclosed)
	}
	if snippets[1].Collapsed != model.NotDisclosed {
		t.Errorf("S2 collapsed = %q, want %s", snippets[1].Collapsed, model.NotDisclosed)
	}
}
