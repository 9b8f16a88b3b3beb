package core

// Categories is an ordered list of category labels. Order is the display
// order of the summary view.
type Categories []string

// DefaultCategories returns the fixed set of eight labels offered by the form
// and used as summary buckets. A fresh slice is returned on every call.
func DefaultCategories() Categories {
	return Categories{
		"food",
		"transport",
		"entertainment",
		"daily goods",
		"medical",
		"utilities",
		"rent",
		"other",
	}
}

// Contains reports whether label is one of the categories (exact match).
func (c Categories) Contains(label string) bool {
	for _, v := range c {
		if v == label {
			return true
		}
	}
	return false
}
