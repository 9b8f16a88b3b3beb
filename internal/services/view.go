package services

import (
	"context"
	"fmt"

	"kakei/internal/core"
)

// View is everything the page renders from one load of the collection.
type View struct {
	Records    []core.Record         `json:"expenses"`
	Totals     []core.CategoryAmount `json:"totals"`
	GrandTotal int64                 `json:"total"`
	Period     string                `json:"period,omitempty"`
	From       core.Date             `json:"from,omitzero"`
	To         core.Date             `json:"to,omitzero"`
}

// View returns the newest-first list and per-category totals over all
// records.
func (t *Tracker) View(ctx context.Context) (View, error) {
	records, err := t.store.LoadAll(ctx)
	if err != nil {
		return View{}, fmt.Errorf("load records: %w", err)
	}
	return t.project(records), nil
}

// Summary is View restricted to the week, month or year containing today.
// An empty period covers all records.
func (t *Tracker) Summary(ctx context.Context, period string) (View, error) {
	records, err := t.store.LoadAll(ctx)
	if err != nil {
		return View{}, fmt.Errorf("load records: %w", err)
	}
	if period == "" {
		return t.project(records), nil
	}
	from, to, ok := core.PeriodBounds(period, t.now())
	if !ok {
		return View{}, fmt.Errorf("%w: unknown period %q", ErrValidation, period)
	}
	v := t.project(core.FilterPeriod(records, from, to))
	v.Period, v.From, v.To = period, from, to
	return v, nil
}

func (t *Tracker) project(records []core.Record) View {
	totals := core.CategoryTotals(records, t.categories)
	return View{
		Records:    core.SortByDateDesc(records),
		Totals:     totals.Rows(),
		GrandTotal: core.GrandTotal(totals),
	}
}
