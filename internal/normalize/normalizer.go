package normalize

import (
	"strconv"
	"strings"

	"github.com/disclosure-metrics/disclo/internal/ingest"
	"github.com/disclosure-metrics/disclo/internal/model"
)

// Normalizer converts raw review rows into canonical snippets. It is a
// pure mapping: no state, no failures, safe to apply to rows in any order.
// All coercion and defaulting for the rest of the system happens here.
type Normalizer struct{}

// NewNormalizer creates a new normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Snippet builds a canonical snippet from one raw row
func (n *Normalizer) Snippet(row ingest.Row) model.Snippet {
	return model.Snippet{
		ID:             row.Get(ingest.FieldSnippetID),
		Quote:          row.Get(ingest.FieldQuote),
		Source:         row.Get(ingest.FieldSource),
		Classification: Classification(row.Get(ingest.FieldClassification)),
		Justification:  row.Get(ingest.FieldJustification),

		FinancialType:              FinancialType(row.Get(ingest.FieldFinancialType)),
		FinancialTypeJustification: row.Get(ingest.FieldFinancialJust),
		Timeframe:                  Timeframe(row.Get(ingest.FieldTimeframe)),
		TimeframeJustification:     row.Get(ingest.FieldTimeframeJust),
		Framing:                    Framing(row.Get(ingest.FieldFraming)),
		FramingJustification:       row.Get(ingest.FieldFramingJust),

		FinancialAmounts: Amounts(row.Get(ingest.FieldAmounts)),
		SourceVersions:   SplitList(row.Get(ingest.FieldVersions)),

		Duplicate: row.Get(ingest.FieldDuplicate),
		Notes:     row.Get(ingest.FieldNotes),
		Highlight: row.Get(ingest.FieldHighlight),
	}
}

// Amounts parses a list-valued amounts cell into financial amounts.
// Each entry is scanned for a leading currency token and a numeric value;
// entries that carry no recognizable number keep the raw text as context
// with a zero value, so no reviewer annotation is ever dropped.
func Amounts(raw string) []model.FinancialAmount {
	entries := SplitList(raw)
	if len(entries) == 0 {
		return nil
	}

	amounts := make([]model.FinancialAmount, 0, len(entries))
	for _, entry := range entries {
		amounts = append(amounts, parseAmount(entry))
	}
	return amounts
}

var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
}

// parseAmount extracts (value, currency, context) from one amount entry
func parseAmount(entry string) model.FinancialAmount {
	amount := model.FinancialAmount{Context: entry}

	fields := strings.Fields(entry)
	for i, field := range fields {
		cleaned := strings.Trim(field, "()")

		// Currency: ISO code like "USD" or a leading symbol like "$1.2m"
		if len(cleaned) == 3 && cleaned == strings.ToUpper(cleaned) && isAlpha(cleaned) {
			if amount.Currency == "" {
				amount.Currency = cleaned
			}
			continue
		}
		for symbol, code := range currencySymbols {
			if strings.HasPrefix(cleaned, symbol) {
				if amount.Currency == "" {
					amount.Currency = code
				}
				cleaned = strings.TrimPrefix(cleaned, symbol)
				break
			}
		}

		if amount.Value != 0 {
			continue
		}
		if value, ok := parseNumber(cleaned); ok {
			amount.Value = value
			// Context is everything after the number
			if i+1 < len(fields) {
				amount.Context = strings.Trim(strings.Join(fields[i+1:], " "), "()")
			} else {
				amount.Context = ""
			}
		}
	}

	return amount
}

// parseNumber parses "1,200.5", "1.2m", "3bn" style tokens
func parseNumber(token string) (float64, bool) {
	token = strings.ToLower(strings.ReplaceAll(token, ",", ""))

	multiplier := 1.0
	switch {
	case strings.HasSuffix(token, "bn"):
		multiplier = 1e9
		token = strings.TrimSuffix(token, "bn")
	case strings.HasSuffix(token, "b"):
		multiplier = 1e9
		token = strings.TrimSuffix(token, "b")
	case strings.HasSuffix(token, "m"):
		multiplier = 1e6
		token = strings.TrimSuffix(token, "m")
	case strings.HasSuffix(token, "k"):
		multiplier = 1e3
		token = strings.TrimSuffix(token, "k")
	}

	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return value * multiplier, true
}

// isAlpha reports whether the string is ASCII letters only
func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}
