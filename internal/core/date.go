package core

import (
	"strings"
	"time"
)

// ParseDate parses a ledger date in the exact DD/MM/YYYY form.
// Surrounding spaces are tolerated; single-digit days or months, other
// separators and impossible calendar dates are not.
func ParseDate(raw string) (Date, error) {
	s := strings.TrimSpace(raw)
	if len(s) != len(DateLayout) {
		return Date{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}
