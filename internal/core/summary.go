package core

import (
	"sort"
	"time"

	"github.com/jinzhu/now"
)

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string `json:"category"`
	Amount int64  `json:"amount"`
}

// Totals holds one bucket per known category, in category order.
type Totals struct {
	rows  []CategoryAmount
	index map[string]int
}

// Rows returns the buckets in category order.
func (t Totals) Rows() []CategoryAmount {
	return append([]CategoryAmount(nil), t.rows...)
}

// Get returns the bucket for a category, or 0 for an unknown label.
func (t Totals) Get(category string) int64 {
	if i, ok := t.index[category]; ok {
		return t.rows[i].Amount
	}
	return 0
}

// Map returns the buckets keyed by category.
func (t Totals) Map() map[string]int64 {
	out := make(map[string]int64, len(t.rows))
	for _, r := range t.rows {
		out[r.Name] = r.Amount
	}
	return out
}

// SortByDateDesc returns a copy of records ordered most recent first.
// Records sharing a date keep their relative input order.
func SortByDateDesc(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

// CategoryTotals sums amounts per category. Every category starts at 0;
// records whose category is not in the list contribute to no bucket.
func CategoryTotals(records []Record, categories Categories) Totals {
	t := Totals{
		rows:  make([]CategoryAmount, 0, len(categories)),
		index: make(map[string]int, len(categories)),
	}
	for _, c := range categories {
		if _, dup := t.index[c]; dup {
			continue
		}
		t.index[c] = len(t.rows)
		t.rows = append(t.rows, CategoryAmount{Name: c})
	}
	for _, r := range records {
		if i, ok := t.index[r.Category]; ok {
			t.rows[i].Amount += r.Amount
		}
	}
	return t
}

// GrandTotal is the sum of all buckets.
func GrandTotal(t Totals) int64 {
	var sum int64
	for _, r := range t.rows {
		sum += r.Amount
	}
	return sum
}

// FilterPeriod keeps records dated within [from, to], both inclusive.
func FilterPeriod(records []Record, from, to Date) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Date.Before(from.Time) || r.Date.After(to.Time) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// PeriodBounds returns the calendar range of the named period ("week",
// "month" or "year") containing t. ok is false for any other name.
func PeriodBounds(period string, t time.Time) (from, to Date, ok bool) {
	n := now.With(t)
	switch period {
	case "week":
		return DateOf(n.BeginningOfWeek()), DateOf(n.EndOfWeek()), true
	case "month":
		return DateOf(n.BeginningOfMonth()), DateOf(n.EndOfMonth()), true
	case "year":
		return DateOf(n.BeginningOfYear()), DateOf(n.EndOfYear()), true
	default:
		return Date{}, Date{}, false
	}
}
