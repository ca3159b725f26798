package reconcile

import "github.com/disclosure-metrics/disclo/internal/model"

// Collapse maps the 4-state classification to the binary
// Disclosure / No Disclosure view. Input is assumed already normalized;
// anything unrecognized falls through to No Disclosure.
func Collapse(c model.Classification) model.CollapsedClassification {
	return c.Collapse()
}

// CollapseBundles returns a copy of the bundles with the collapsed view
// attached to every snippet. The originals are never mutated: aggregation
// and rendering both read reconciled bundles, so they must stay immutable.
func CollapseBundles(bundles []model.CompanyYearBundle) []model.CompanyYearBundle {
	out := make([]model.CompanyYearBundle, len(bundles))
	for i, b := range bundles {
		out[i] = b
		out[i].Questions = make([]model.Question, len(b.Questions))
		for j, q := range b.Questions {
			out[i].Questions[j] = q
			out[i].Questions[j].Disclosures = make([]model.Snippet, len(q.Disclosures))
			for k, s := range q.Disclosures {
				s.Collapsed = Collapse(s.Classification)
				out[i].Questions[j].Disclosures[k] = s
			}
		}
	}
	return out
}
