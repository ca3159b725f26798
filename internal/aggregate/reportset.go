package aggregate

// ReportSet bundles every named chart/table the reporting layer renders.
// Each table is an independent pure read of the reconciled dataset; there
// is no hidden state between them.
type ReportSet struct {
	Overall            Table `json:"overall"`
	BestCategories     Table `json:"best_categories"`
	WeakCategories     Table `json:"weak_categories"`
	Timeframe          Table `json:"timeframe"`
	Framing            Table `json:"framing"`
	CompanyLeaderboard Table `json:"company_leaderboard"`
	TopQuestions       Table `json:"top_questions"`
	BottomQuestions    Table `json:"bottom_questions"`
	QuestionCoverage   Table `json:"question_coverage"`
	MostCovered        Table `json:"most_covered_questions"`

	CategoryTimeframe Grid `json:"category_timeframe"`
	CategoryFraming   Grid `json:"category_framing"`
	FinancialMix      Grid `json:"financial_mix"`
}

// BuildReportSet computes the full report set over the aggregator's
// dataset. topN truncates ranked tables; pass 0 to keep everything.
func (a *Aggregator) BuildReportSet(topN int) *ReportSet {
	n := topN
	if n <= 0 {
		n = -1 // Keep all entries
	}
	return &ReportSet{
		Overall:            a.Overall(),
		BestCategories:     a.BestCategories(n),
		WeakCategories:     a.WeakCategories(n),
		Timeframe:          a.ByTimeframe(),
		Framing:            a.ByFraming(),
		CompanyLeaderboard: a.CompanyLeaderboard(n),
		TopQuestions:       a.TopQuestions(n),
		BottomQuestions:    a.BottomQuestions(n),
		QuestionCoverage:   a.QuestionCoverage(),
		MostCovered:        a.MostCoveredQuestions(n),
		CategoryTimeframe:  a.CategoryTimeframe(),
		CategoryFraming:    a.CategoryFraming(),
		FinancialMix:       a.FinancialMixByCategory(),
	}
}
