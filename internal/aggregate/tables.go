package aggregate

import "sort"

// Bucket is a running (disclosure, total) count pair for one key
type Bucket struct {
	Disclosure int `json:"disclosure"`
	Total      int `json:"total"`
}

// Percentage returns disclosure/total as a percentage. A zero denominator
// is defined as 0%, never NaN: downstream reports always render a number.
func (b Bucket) Percentage() float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Disclosure) / float64(b.Total) * 100
}

// Entry is one row of a single-dimension report table
type Entry struct {
	Key        string  `json:"key"`
	Percentage float64 `json:"percentage"`
	Disclosure int     `json:"disclosure"`
	Total      int     `json:"total"`
}

// Table is an ordered single-dimension report table. Entries keep the
// encounter order of their keys unless explicitly sorted.
type Table struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Cell is one cell of a two-dimension report table. Percentage is
// normalized within the cell: count / total for that (row, col) pair.
type Cell struct {
	Row        string  `json:"row"`
	Col        string  `json:"col"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
	Total      int     `json:"total"`
}

// Grid is an ordered two-dimension report table
type Grid struct {
	Name  string `json:"name"`
	Cells []Cell `json:"cells"`
}

// SortedDesc returns a copy of the table sorted by percentage descending.
// The sort is stable: ties keep encounter order, so report snapshots are
// reproducible.
func (t Table) SortedDesc() Table {
	out := Table{Name: t.Name, Entries: append([]Entry(nil), t.Entries...)}
	sort.SliceStable(out.Entries, func(i, j int) bool {
		return out.Entries[i].Percentage > out.Entries[j].Percentage
	})
	return out
}

// SortedAsc returns a copy of the table sorted by percentage ascending,
// stable on ties.
func (t Table) SortedAsc() Table {
	out := Table{Name: t.Name, Entries: append([]Entry(nil), t.Entries...)}
	sort.SliceStable(out.Entries, func(i, j int) bool {
		return out.Entries[i].Percentage < out.Entries[j].Percentage
	})
	return out
}

// Top truncates to the first n entries after sorting. A tie at the
// boundary is broken by encounter order, never re-sorted by another key.
func (t Table) Top(n int) Table {
	if n < 0 || n >= len(t.Entries) {
		return t
	}
	return Table{Name: t.Name, Entries: t.Entries[:n]}
}

// counter accumulates buckets while preserving key encounter order
type counter struct {
	order   []string
	buckets map[string]*Bucket
}

func newCounter() *counter {
	return &counter{buckets: make(map[string]*Bucket)}
}

// add records one observation under key
func (c *counter) add(key string, disclosed bool) {
	b, ok := c.buckets[key]
	if !ok {
		b = &Bucket{}
		c.buckets[key] = b
		c.order = append(c.order, key)
	}
	b.Total++
	if disclosed {
		b.Disclosure++
	}
}

// table folds the counter into an ordered table
func (c *counter) table(name string) Table {
	t := Table{Name: name, Entries: make([]Entry, 0, len(c.order))}
	for _, key := range c.order {
		b := c.buckets[key]
		t.Entries = append(t.Entries, Entry{
			Key:        key,
			Percentage: b.Percentage(),
			Disclosure: b.Disclosure,
			Total:      b.Total,
		})
	}
	return t
}
