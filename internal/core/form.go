package core

import (
	"fmt"
	"strings"
)

// AddForm carries the raw create-form fields as submitted.
type AddForm struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Memo     string `json:"memo"`
}

// Record parses and validates the form into a record without an id.
// The first failing field decides the returned error.
func (f AddForm) Record(categories Categories) (Record, error) {
	date, err := ParseDate(f.Date)
	if err != nil {
		return Record{}, err
	}
	category := strings.TrimSpace(f.Category)
	if category == "" {
		return Record{}, ErrEmptyCategory
	}
	if len(categories) > 0 && !categories.Contains(category) {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return Record{}, err
	}
	r := Record{
		Date:     date,
		Category: category,
		Amount:   amount,
		Memo:     f.Memo,
	}
	return r, r.Validate()
}
