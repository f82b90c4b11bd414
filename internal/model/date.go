package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used on every wire record.
const DateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form. The ISO layout makes the
// natural string ordering match chronological ordering, so Dates compare
// directly and can key maps.
type Date string

// ParseDate validates s against DateLayout.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return Date(s), nil
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current calendar day in local time.
func Today() Date {
	return DateOf(time.Now())
}

func (d Date) String() string { return string(d) }

func (d Date) IsZero() bool { return d == "" }

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool { return d > o }

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool { return d < o }

// Time parses d back into a time.Time at midnight UTC.
func (d Date) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

// Next returns the following calendar day. A Date that never went through
// ParseDate and does not parse is returned unchanged.
func (d Date) Next() Date {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return DateOf(t.AddDate(0, 0, 1))
}
