package core

import (
	"errors"
	"testing"
)

func TestAddFormRecord(t *testing.T) {
	cats := DefaultCategories()
	tests := []struct {
		name    string
		form    AddForm
		wantErr error
	}{
		{"valid", AddForm{Date: "2024-01-10", Category: "food", Amount: "1200", Memo: " lunch "}, nil},
		{"missing date", AddForm{Category: "food", Amount: "1"}, ErrInvalidDate},
		{"bad date", AddForm{Date: "2024-13-01", Category: "food", Amount: "1"}, ErrInvalidDate},
		{"missing category", AddForm{Date: "2024-01-10", Amount: "1"}, ErrEmptyCategory},
		{"unknown category", AddForm{Date: "2024-01-10", Category: "pets", Amount: "1"}, ErrUnknownCategory},
		{"zero amount", AddForm{Date: "2024-01-10", Category: "food", Amount: "0"}, ErrInvalidAmount},
		{"negative amount", AddForm{Date: "2024-01-10", Category: "food", Amount: "-5"}, ErrInvalidAmount},
		{"text amount", AddForm{Date: "2024-01-10", Category: "food", Amount: "abc"}, ErrInvalidAmount},
		{"empty amount", AddForm{Date: "2024-01-10", Category: "food"}, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.form.Record(cats)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Amount != 1200 || r.Category != "food" || r.Memo != " lunch " || !r.Date.Equal(NewDate(2024, 1, 10).Time) {
				t.Errorf("unexpected record: %+v", r)
			}
			if r.ID != 0 {
				t.Errorf("id should be assigned by the store, got %d", r.ID)
			}
		})
	}
}

func TestAddFormRecordWithoutCategoryList(t *testing.T) {
	r, err := AddForm{Date: "2024-01-10", Category: "pets", Amount: "10"}.Record(nil)
	if err != nil {
		t.Fatalf("empty list should accept any category: %v", err)
	}
	if r.Category != "pets" {
		t.Errorf("category = %q", r.Category)
	}
}
