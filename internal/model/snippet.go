package model

// Classification is the 4-state completeness judgment of a snippet
type Classification string

const (
	FullDisclosure Classification = "FULL_DISCLOSURE" // Complete, specific disclosure
	Partial        Classification = "PARTIAL"         // Disclosure present but incomplete
	Unclear        Classification = "UNCLEAR"         // Cannot be determined from the excerpt
	NoDisclosure   Classification = "NO_DISCLOSURE"   // Explicitly no disclosure
)

// Classifications lists the 4 states in canonical reporting order
var Classifications = []Classification{FullDisclosure, Partial, Unclear, NoDisclosure}

// CollapsedClassification is the binary Disclosure / No Disclosure view
type CollapsedClassification string

const (
	Disclosed    CollapsedClassification = "Disclosure"
	NotDisclosed CollapsedClassification = "No Disclosure"
)

// Collapse maps the 4-state classification to the binary view.
// FULL_DISCLOSURE and PARTIAL count as a disclosure; everything else,
// including values that somehow escaped normalization, does not.
func (c Classification) Collapse() CollapsedClassification {
	switch c {
	case FullDisclosure, Partial:
		return Disclosed
	default:
		return NotDisclosed
	}
}

// FinancialType classifies whether a snippet quantifies its disclosure
type FinancialType string

const (
	Financial    FinancialType = "Financial"
	PartialType  FinancialType = "Partial-type"
	NonFinancial FinancialType = "Non-Financial"
)

// FinancialTypes lists the financial types in canonical reporting order
var FinancialTypes = []FinancialType{Financial, PartialType, NonFinancial}

// Timeframe classifies the temporal orientation of a snippet
type Timeframe string

const (
	BackwardLooking  Timeframe = "Backward-looking"
	PresentDay       Timeframe = "Present day"
	ForwardLooking   Timeframe = "Forward-looking"
	MultipleTimeframe Timeframe = "Multiple or Unclear"
)

// Timeframes lists the timeframes in canonical reporting order
var Timeframes = []Timeframe{BackwardLooking, PresentDay, ForwardLooking, MultipleTimeframe}

// Framing classifies how the company frames the disclosed matter
type Framing string

const (
	RiskFraming        Framing = "Risk"
	OpportunityFraming Framing = "Opportunity"
	NeutralFraming     Framing = "Neutral"
	BothFraming        Framing = "Both"
)

// Framings lists the framings in canonical reporting order
var Framings = []Framing{RiskFraming, OpportunityFraming, NeutralFraming, BothFraming}

// FinancialAmount is a monetary figure attached to a snippet
type FinancialAmount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency,omitempty"`
	Context  string  `json:"context,omitempty"`
}

// ReviewTrail records how a snippet moved through human review.
// Original is the classification as supplied upstream, Final is the
// classification after reviewer-override precedence was applied.
type ReviewTrail struct {
	Original        Classification `json:"original_classification"`
	Final           Classification `json:"final_classification"`
	ReviewerMissing bool           `json:"reviewer_missing"` // No override was recorded for this row
}

// Changed reports whether review altered the classification
func (r ReviewTrail) Changed() bool {
	return r.Original != r.Final
}

// Snippet is a classified evidence excerpt tied to one question
type Snippet struct {
	ID             string         `json:"id"`
	Quote          string         `json:"quote"`
	Source         string         `json:"source,omitempty"`
	Classification Classification `json:"classification"`
	Justification  string         `json:"justification,omitempty"`

	FinancialType              FinancialType `json:"financial_type"`
	FinancialTypeJustification string        `json:"financial_type_justification,omitempty"`
	Timeframe                  Timeframe     `json:"timeframe"`
	TimeframeJustification     string        `json:"timeframe_justification,omitempty"`
	Framing                    Framing       `json:"framing"`
	FramingJustification       string        `json:"framing_justification,omitempty"`

	FinancialAmounts []FinancialAmount `json:"financial_amounts,omitempty"`
	SourceVersions   []string          `json:"source_versions,omitempty"`

	Review *ReviewTrail `json:"review,omitempty"` // Present once the row passed reconciliation

	// Reviewer side-channel carried through verbatim, never interpreted
	Duplicate string `json:"duplicate,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Highlight string `json:"highlight,omitempty"`

	// Set only when the collapsed view is requested at render time
	Collapsed CollapsedClassification `json:"collapsed_classification,omitempty"`
}
