package domain

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = fmt.Errorf("%w: invalid date (must be YYYY-MM-DD)", ErrValidation)

// DateKey formats the calendar day of t in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD key and returns it in canonical form.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(DateLayout), nil
}

// DaysBefore returns midnight n calendar days before t, in t's location.
// Calendar arithmetic keeps DST transitions from skipping or repeating a day.
func DaysBefore(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d-n, 0, 0, 0, 0, t.Location())
}
