package ingest

import "strings"

// Canonical field names of the review sheet. The header alias table maps
// the variants seen across upstream schema versions onto these.
const (
	FieldCompany       = "Company"
	FieldYear          = "Year"
	FieldQuestionID    = "Question ID"
	FieldQuestionText  = "Question Text"
	FieldCategory      = "Category"
	FieldSubCategory   = "Sub-category"
	FieldSnippetID     = "Snippet ID"
	FieldQuote         = "Quote"
	FieldSource        = "Source"
	FieldClassification = "Classification"
	FieldOverride      = "Correct Classification?"
	FieldJustification = "Justification"
	FieldFraming       = "Framing"
	FieldFramingJust   = "Framing Justification"
	FieldFinancialType = "Financial Type"
	FieldFinancialJust = "Financial Type Justification"
	FieldTimeframe     = "Timeframe"
	FieldTimeframeJust = "Timeframe Justification"
	FieldAmounts       = "Financial Amounts"
	FieldVersions      = "Source Versions"
	FieldRemove        = "Remove from Analysis?"
	FieldDuplicate     = "Duplicate?"
	FieldNotes         = "Notes"
	FieldHighlight     = "Highlight"
)

// Row is one raw review-sheet row keyed by canonical field name.
// Values are untrimmed cell text; missing cells read as "".
type Row map[string]string

// Get returns the trimmed value for a canonical field
func (r Row) Get(field string) string {
	return strings.TrimSpace(r[field])
}

// Has reports whether the field is present and non-empty after trimming
func (r Row) Has(field string) bool {
	return r.Get(field) != ""
}

// headerAliases maps lowercased header variants to canonical field names
var headerAliases = map[string]string{
	"company":                      FieldCompany,
	"company name":                 FieldCompany,
	"year":                         FieldYear,
	"fiscal year":                  FieldYear,
	"question id":                  FieldQuestionID,
	"question":                     FieldQuestionID,
	"question text":                FieldQuestionText,
	"category":                     FieldCategory,
	"risk category":                FieldCategory,
	"sub-category":                 FieldSubCategory,
	"subcategory":                  FieldSubCategory,
	"snippet id":                   FieldSnippetID,
	"quote":                        FieldQuote,
	"snippet":                      FieldQuote,
	"source":                       FieldSource,
	"classification":               FieldClassification,
	"correct classification?":      FieldOverride,
	"correct classification":       FieldOverride,
	"justification":                FieldJustification,
	"classification justification": FieldJustification,
	"framing":                      FieldFraming,
	"framing justification":        FieldFramingJust,
	"financial type":               FieldFinancialType,
	"financial type justification": FieldFinancialJust,
	"timeframe":                    FieldTimeframe,
	"timeframe justification":      FieldTimeframeJust,
	"financial amounts":            FieldAmounts,
	"source versions":              FieldVersions,
	"model versions":               FieldVersions,
	"remove from analysis?":        FieldRemove,
	"remove from analysis":         FieldRemove,
	"duplicate?":                   FieldDuplicate,
	"duplicate":                    FieldDuplicate,
	"notes":                        FieldNotes,
	"highlight":                    FieldHighlight,
}

// CanonicalField resolves a raw header cell to a canonical field name.
// Unknown headers are returned trimmed as-is so extra columns survive.
func CanonicalField(header string) string {
	key := strings.ToLower(strings.TrimSpace(header))
	if canonical, ok := headerAliases[key]; ok {
		return canonical
	}
	return strings.TrimSpace(header)
}
