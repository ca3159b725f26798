package aggregate

import (
	"fmt"

	"github.com/disclosure-metrics/disclo/internal/model"
	"github.com/disclosure-metrics/disclo/internal/reconcile"
)

// Filter restricts aggregation to a slice of the reconciled dataset.
// Zero values mean no restriction on that axis.
type Filter struct {
	Company  string
	Year     int
	Category string
}

// match reports whether an observation passes the filter
func (f Filter) match(o observation) bool {
	if f.Company != "" && o.company != f.Company {
		return false
	}
	if f.Year != 0 && o.year != f.Year {
		return false
	}
	if f.Category != "" && o.category != f.Category {
		return false
	}
	return true
}

// observation is one snippet with its grouping context, flattened out of
// a bundle for single-pass folds
type observation struct {
	company    string
	year       int
	questionID string
	category   string
	snippet    model.Snippet
}

// disclosed reports whether the snippet collapses to Disclosure
func (o observation) disclosed() bool {
	return reconcile.Collapse(o.snippet.Classification) == model.Disclosed
}

// companyYear renders the company-year reporting key
func (o observation) companyYear() string {
	return fmt.Sprintf("%s (%d)", o.company, o.year)
}

// Aggregator computes percentage tables over a reconciled dataset. It
// only reads the bundles it was built from; every table method is an
// independent pure fold, so tables may be computed in any order or in
// parallel.
type Aggregator struct {
	observations []observation
}

// New flattens the bundles into observations, applying the filter once
func New(bundles []model.CompanyYearBundle, filter Filter) *Aggregator {
	var obs []observation
	for _, b := range bundles {
		for _, q := range b.Questions {
			for _, s := range q.Disclosures {
				o := observation{
					company:    b.Company,
					year:       b.FiscalYear,
					questionID: q.ID,
					category:   q.Category,
					snippet:    s,
				}
				if filter.match(o) {
					obs = append(obs, o)
				}
			}
		}
	}
	return &Aggregator{observations: obs}
}

// Overall computes the single overall disclosure rate
func (a *Aggregator) Overall() Table {
	c := newCounter()
	for _, o := range a.observations {
		c.add("Overall", o.disclosed())
	}
	return c.table("Overall Disclosure")
}

// ByCategory computes the disclosure rate per question category
func (a *Aggregator) ByCategory() Table {
	c := newCounter()
	for _, o := range a.observations {
		c.add(o.category, o.disclosed())
	}
	return c.table("Disclosure by Category")
}

// ByTimeframe computes the disclosure rate per normalized timeframe
func (a *Aggregator) ByTimeframe() Table {
	c := newCounter()
	for _, o := range a.observations {
		c.add(string(o.snippet.Timeframe), o.disclosed())
	}
	return c.table("Disclosure by Timeframe")
}

// ByFraming computes the disclosure rate per framing
func (a *Aggregator) ByFraming() Table {
	c := newCounter()
	for _, o := range a.observations {
		c.add(string(o.snippet.Framing), o.disclosed())
	}
	return c.table("Disclosure by Framing")
}

// ByCompanyYear computes the disclosure rate per company-year
func (a *Aggregator) ByCompanyYear() Table {
	c := newCounter()
	for _, o := range a.observations {
		c.add(o.companyYear(), o.disclosed())
	}
	return c.table("Disclosure by Company")
}

// ByQuestion computes the disclosure rate per question identifier
func (a *Aggregator) ByQuestion() Table {
	c := newCounter()
	for _, o := range a.observations {
		c.add(o.questionID, o.disclosed())
	}
	return c.table("Disclosure by Question")
}

// BestCategories ranks categories by disclosure rate descending,
// truncated to n. Ties keep encounter order.
func (a *Aggregator) BestCategories(n int) Table {
	t := a.ByCategory().SortedDesc().Top(n)
	t.Name = "Best Categories"
	return t
}

// WeakCategories ranks categories by disclosure rate ascending,
// truncated to n. Ties keep encounter order.
func (a *Aggregator) WeakCategories(n int) Table {
	t := a.ByCategory().SortedAsc().Top(n)
	t.Name = "Weak Categories"
	return t
}

// CompanyLeaderboard ranks company-years by disclosure rate descending
func (a *Aggregator) CompanyLeaderboard(n int) Table {
	t := a.ByCompanyYear().SortedDesc().Top(n)
	t.Name = "Company Leaderboard"
	return t
}

// TopQuestions ranks questions by disclosure rate descending
func (a *Aggregator) TopQuestions(n int) Table {
	t := a.ByQuestion().SortedDesc().Top(n)
	t.Name = "Top Questions"
	return t
}

// BottomQuestions ranks questions by disclosure rate ascending
func (a *Aggregator) BottomQuestions(n int) Table {
	t := a.ByQuestion().SortedAsc().Top(n)
	t.Name = "Bottom Questions"
	return t
}

// CategoryTimeframe computes the category × timeframe disclosure grid.
// Each cell's percentage is normalized within the cell, not within its
// row or column.
func (a *Aggregator) CategoryTimeframe() Grid {
	return a.pairGrid("Category x Timeframe", func(o observation) string {
		return string(o.snippet.Timeframe)
	})
}

// CategoryFraming computes the category × framing disclosure grid
func (a *Aggregator) CategoryFraming() Grid {
	return a.pairGrid("Category x Framing", func(o observation) string {
		return string(o.snippet.Framing)
	})
}

// pairGrid folds observations into a 2D disclosure grid keyed by
// (category, col). Cell order is pair encounter order.
func (a *Aggregator) pairGrid(name string, col func(observation) string) Grid {
	type pair struct{ row, col string }
	var order []pair
	buckets := make(map[pair]*Bucket)

	for _, o := range a.observations {
		p := pair{row: o.category, col: col(o)}
		b, ok := buckets[p]
		if !ok {
			b = &Bucket{}
			buckets[p] = b
			order = append(order, p)
		}
		b.Total++
		if o.disclosed() {
			b.Disclosure++
		}
	}

	g := Grid{Name: name, Cells: make([]Cell, 0, len(order))}
	for _, p := range order {
		b := buckets[p]
		g.Cells = append(g.Cells, Cell{
			Row:        p.row,
			Col:        p.col,
			Percentage: b.Percentage(),
			Count:      b.Disclosure,
			Total:      b.Total,
		})
	}
	return g
}

// FinancialMixByCategory computes, per category, the three-way share of
// Financial / Partial-type / Non-Financial snippets. This is the one
// aggregation that reports raw categorical shares instead of a collapsed
// disclosure ratio.
func (a *Aggregator) FinancialMixByCategory() Grid {
	var order []string
	totals := make(map[string]int)
	mix := make(map[string]map[model.FinancialType]int)

	for _, o := range a.observations {
		if _, ok := mix[o.category]; !ok {
			mix[o.category] = make(map[model.FinancialType]int)
			order = append(order, o.category)
		}
		mix[o.category][o.snippet.FinancialType]++
		totals[o.category]++
	}

	g := Grid{Name: "Financial Mix"}
	for _, category := range order {
		total := totals[category]
		for _, ft := range model.FinancialTypes {
			count := mix[category][ft]
			share := 0.0
			if total > 0 {
				share = float64(count) / float64(total) * 100
			}
			g.Cells = append(g.Cells, Cell{
				Row:        category,
				Col:        string(ft),
				Percentage: share,
				Count:      count,
				Total:      total,
			})
		}
	}
	return g
}

// QuestionCoverage computes, per question, the share of company-year
// bundles with at least one collapsed Disclosure for that question, out
// of all bundles that analyzed it.
func (a *Aggregator) QuestionCoverage() Table {
	var order []string
	analyzed := make(map[string]map[model.BundleKey]bool)
	disclosed := make(map[string]map[model.BundleKey]bool)

	for _, o := range a.observations {
		if _, ok := analyzed[o.questionID]; !ok {
			analyzed[o.questionID] = make(map[model.BundleKey]bool)
			disclosed[o.questionID] = make(map[model.BundleKey]bool)
			order = append(order, o.questionID)
		}
		key := model.BundleKey{Company: o.company, Year: o.year}
		analyzed[o.questionID][key] = true
		if o.disclosed() {
			disclosed[o.questionID][key] = true
		}
	}

	t := Table{Name: "Question Coverage"}
	for _, qid := range order {
		b := Bucket{Disclosure: len(disclosed[qid]), Total: len(analyzed[qid])}
		t.Entries = append(t.Entries, Entry{
			Key:        qid,
			Percentage: b.Percentage(),
			Disclosure: b.Disclosure,
			Total:      b.Total,
		})
	}
	return t
}

// MostCoveredQuestions ranks questions by coverage descending
func (a *Aggregator) MostCoveredQuestions(n int) Table {
	t := a.QuestionCoverage().SortedDesc().Top(n)
	t.Name = "Most Covered Questions"
	return t
}
