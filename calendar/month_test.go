package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{name: "leap february", year: 2024, month: time.February, want: 29},
		{name: "february", year: 2023, month: time.February, want: 28},
		{name: "century not leap", year: 1900, month: time.February, want: 28},
		{name: "400 year leap", year: 2000, month: time.February, want: 29},
		{name: "april", year: 2024, month: time.April, want: 30},
		{name: "december", year: 2024, month: time.December, want: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := MonthDays(tt.year, tt.month)
			require.Len(t, days, tt.want)
			assert.Equal(t, New(tt.year, tt.month, 1), days[0])
			assert.Equal(t, New(tt.year, tt.month, tt.want), days[len(days)-1])
			for i := 1; i < len(days); i++ {
				assert.Equal(t, days[i-1].AddDays(1), days[i])
			}
		})
	}
}

func TestNextMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Date
		want Date
	}{
		{name: "year rollover", in: New(2024, time.December, 1), want: New(2025, time.January, 1)},
		{name: "january 31", in: New(2024, time.January, 31), want: New(2024, time.February, 1)},
		{name: "january 30", in: New(2023, time.January, 30), want: New(2023, time.February, 1)},
		{name: "mid month", in: New(2024, time.June, 15), want: New(2024, time.July, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextMonth(tt.in))
		})
	}
}

func TestPreviousMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Date
		want Date
	}{
		{name: "year rollover", in: New(2025, time.January, 1), want: New(2024, time.December, 1)},
		{name: "march 31", in: New(2024, time.March, 31), want: New(2024, time.February, 1)},
		{name: "mid month", in: New(2024, time.June, 15), want: New(2024, time.May, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreviousMonth(tt.in))
		})
	}
}

func TestAddMonthsNeverSkips(t *testing.T) {
	t.Parallel()

	m := Month{2024, time.January}
	for i := 0; i < 24; i++ {
		next := NextMonth(m.Last())
		assert.Equal(t, m.Next().First(), next, "from %s", m.Last())
		assert.Equal(t, m.Last(), PreviousMonth(next).EndOfMonth())
		m = MonthOf(next)
	}
	assert.Equal(t, Month{2026, time.January}, m)

	assert.Equal(t, New(2023, time.November, 1), AddMonths(New(2024, time.May, 20), -6))
	assert.Equal(t, New(2024, time.May, 1), AddMonths(New(2024, time.May, 20), 0))
}

func TestMonth(t *testing.T) {
	t.Parallel()

	m, err := ParseMonth("2024-12")
	require.NoError(t, err)
	assert.Equal(t, Month{2024, time.December}, m)
	assert.Equal(t, "2024-12", m.String())
	assert.Equal(t, Month{2025, time.January}, m.Next())
	assert.Equal(t, Month{2024, time.November}, m.Previous())
	assert.Len(t, m.Days(), 31)
	assert.Equal(t, New(2024, time.December, 31), m.Last())
	assert.True(t, m.Contains(New(2024, time.December, 25)))
	assert.False(t, m.Contains(New(2025, time.December, 25)))

	_, err = ParseMonth("December")
	assert.Error(t, err)
}
