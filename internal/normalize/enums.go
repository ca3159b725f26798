package normalize

import (
	"strings"

	"github.com/disclosure-metrics/disclo/internal/model"
)

// One exhaustive mapping table per categorization dimension, each with an
// explicit default. Every enum value in the system passes through exactly
// one of these functions; no other code coerces raw strings.

// Classification normalizes a raw classification value. The function is
// total: uppercase, collapse whitespace to underscores, accept only the
// four canonical tokens, and resolve anything else (including empty) to
// UNCLEAR. Unclassifiable input is signal, not a defect.
func Classification(raw string) model.Classification {
	token := strings.ToUpper(strings.TrimSpace(raw))
	token = strings.Join(strings.Fields(token), "_")

	switch model.Classification(token) {
	case model.FullDisclosure, model.Partial, model.Unclear, model.NoDisclosure:
		return model.Classification(token)
	default:
		return model.Unclear
	}
}

// KnownClassification reports whether the raw value maps to one of the
// four canonical tokens without falling back to the default. Used for
// diagnostics only; Classification itself never fails.
func KnownClassification(raw string) bool {
	token := strings.ToUpper(strings.TrimSpace(raw))
	token = strings.Join(strings.Fields(token), "_")

	switch model.Classification(token) {
	case model.FullDisclosure, model.Partial, model.Unclear, model.NoDisclosure:
		return true
	default:
		return false
	}
}

var financialTypes = map[string]model.FinancialType{
	"financial":     model.Financial,
	"partial-type":  model.PartialType,
	"partial type":  model.PartialType,
	"partial":       model.PartialType,
	"non-financial": model.NonFinancial,
	"non financial": model.NonFinancial,
	"nonfinancial":  model.NonFinancial,
}

// FinancialType normalizes a raw financial type; unknown values resolve
// to Non-Financial.
func FinancialType(raw string) model.FinancialType {
	if t, ok := financialTypes[fold(raw)]; ok {
		return t
	}
	return model.NonFinancial
}

var timeframes = map[string]model.Timeframe{
	"backward-looking":    model.BackwardLooking,
	"backward looking":    model.BackwardLooking,
	"backward":            model.BackwardLooking,
	"present day":         model.PresentDay,
	"present-day":         model.PresentDay,
	"present":             model.PresentDay,
	"current":             model.PresentDay,
	"forward-looking":     model.ForwardLooking,
	"forward looking":     model.ForwardLooking,
	"forward":             model.ForwardLooking,
	"multiple or unclear": model.MultipleTimeframe,
	"multiple":            model.MultipleTimeframe,
	"unclear":             model.MultipleTimeframe,
}

// Timeframe normalizes a raw timeframe; unknown values resolve to
// Multiple or Unclear.
func Timeframe(raw string) model.Timeframe {
	if t, ok := timeframes[fold(raw)]; ok {
		return t
	}
	return model.MultipleTimeframe
}

var framings = map[string]model.Framing{
	"risk":        model.RiskFraming,
	"opportunity": model.OpportunityFraming,
	"neutral":     model.NeutralFraming,
	"both":        model.BothFraming,
	"risk and opportunity": model.BothFraming,
}

// Framing normalizes a raw framing; unknown values resolve to Neutral.
func Framing(raw string) model.Framing {
	if f, ok := framings[fold(raw)]; ok {
		return f
	}
	return model.NeutralFraming
}

// fold lowercases and collapses internal whitespace for table lookup
func fold(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(raw))), " ")
}

// SplitList splits a list-valued cell on commas and semicolons, trims
// each entry, and discards empties. The result preserves input order and
// may be empty.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})

	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
