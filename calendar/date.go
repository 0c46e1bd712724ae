package calendar

import (
	"encoding/json"
	"fmt"
	"time"
)

// readFormat is lenient so that 2024-3-5 is accepted as well as 2024-03-05.
const readFormat = "2006-1-2"

// DateFormat is the ISO-8601 calendar date layout used for display and JSON.
const DateFormat = "2006-01-02"

// Date is a calendar day with no time of day and no timezone.
// Two Dates are the same day iff they compare equal with ==.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date, so New(2024, 2, 30) is 2024-03-01.
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{t.Year(), t.Month(), t.Day()}
}

// Of returns the local calendar day of t.
func Of(t time.Time) Date { return New(t.Date()) }

// Today returns the current local date.
func Today() Date { return Of(time.Now()) }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int              { return d.y }
func (d Date) Month() time.Month      { return d.m }
func (d Date) Day() int               { return d.d }
func (d Date) Weekday() time.Weekday  { return d.time().Weekday() }
func (d Date) IsZero() bool           { return d == Date{} }
func (d Date) Before(x Date) bool     { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool      { return d.time().After(x.time()) }
func (d Date) AddDays(n int) Date     { return New(d.y, d.m, d.d+n) }
func (d Date) Format(l string) string { return d.time().Format(l) }

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date { return New(d.y, d.m, 1) }

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date { return New(d.y, d.m+1, 0) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DateFormat)
}

// Parse parses a date in YYYY-MM-DD form, single digit month and day allowed.
func Parse(s string) (Date, error) {
	t, err := time.Parse(readFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", s, DateFormat, err)
	}
	return Of(t), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	// Stored dates may carry a time part (2024-03-05T00:00:00.000Z); only the
	// calendar day matters.
	if len(s) > len(DateFormat) && s[len(DateFormat)] == 'T' {
		s = s[:len(DateFormat)]
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

var (
	_ json.Marshaler   = Date{}
	_ json.Unmarshaler = (*Date)(nil)
)
