package calendar

import (
	"fmt"
	"time"
)

// Month identifies a calendar month, the unit the calendar view is paged by.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month { return Month{d.Year(), d.Month()} }

// First returns the first day of the month.
func (m Month) First() Date { return New(m.Year, m.Month, 1) }

// Last returns the last day of the month.
func (m Month) Last() Date { return New(m.Year, m.Month+1, 0) }

// Days returns every day of the month in ascending order.
func (m Month) Days() []Date { return MonthDays(m.Year, m.Month) }

// Next returns the following month.
func (m Month) Next() Month { return MonthOf(NextMonth(m.First())) }

// Previous returns the preceding month.
func (m Month) Previous() Month { return MonthOf(PreviousMonth(m.First())) }

// Contains reports whether d falls in the month.
func (m Month) Contains(d Date) bool { return d.Year() == m.Year && d.Month() == m.Month }

func (m Month) String() string { return m.First().Format("2006-01") }

// ParseMonth parses a month in YYYY-MM form.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-1", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", s, "2006-01", err)
	}
	return Month{t.Year(), t.Month()}, nil
}

// MonthDays returns every calendar day from the first to the last day of the
// given month, inclusive and ascending. month is normalized, so MonthDays(2024, 13)
// is January 2025.
func MonthDays(year int, month time.Month) []Date {
	first := New(year, month, 1)
	last := first.EndOfMonth()
	days := make([]Date, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// AddMonths moves n months from d. The result is always day 1 of the target
// month, so Jan 31 + 1 month is Feb 1.
func AddMonths(d Date, n int) Date {
	return New(d.Year(), d.Month()+time.Month(n), 1)
}

// NextMonth returns the first day of the month after d.
func NextMonth(d Date) Date { return AddMonths(d, 1) }

// PreviousMonth returns the first day of the month before d.
func PreviousMonth(d Date) Date { return AddMonths(d, -1) }
