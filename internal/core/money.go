// Package core provides the expense record model, amount parsing and the
// read-only projections derived from a record collection.
//
// This file contains functions for parsing amounts from user input and
// formatting them for display. Amounts are whole currency units.
package core

import (
	"strconv"
	"strings"
)

// ParseAmount converts user input to a positive whole amount.
//
// Only plain decimal digits are accepted, surrounding whitespace is ignored.
// Signs, decimal separators and any other characters are rejected, as are
// zero and values that overflow int64.
//
// Examples:
//	ParseAmount("1200") -> 1200, nil
//	ParseAmount(" 5 ")  -> 5, nil
//	ParseAmount("0")    -> 0, ErrInvalidAmount
//	ParseAmount("-5")   -> 0, ErrInvalidAmount
//	ParseAmount("abc")  -> 0, ErrInvalidAmount
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if v < 1 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatAmount renders an amount with comma thousands separators (e.g. "51,200").
func FormatAmount(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	var b strings.Builder
	pre := len(digits) % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
