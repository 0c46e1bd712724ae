package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rustyeddy/pnl/calendar"
	"github.com/rustyeddy/pnl/pnl"
	"github.com/rustyeddy/pnl/trade"
)

// FormatTradeOrg renders a trade as an Org-mode entry. Structured facts go in
// a PROPERTIES drawer so they stay searchable; the note becomes the body,
// indented so no line of it can start a heading.
func FormatTradeOrg(t trade.Trade) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*** %s %s %s (%s)\n", t.Time, strings.ToUpper(string(t.Type)), t.Amount, shortID(t.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", t.ID)
	fmt.Fprintf(&b, ":TYPE: %s\n", t.Type)
	fmt.Fprintf(&b, ":AMOUNT: %s\n", t.Amount)
	fmt.Fprintf(&b, ":SIGNED: %s\n", t.Signed())
	fmt.Fprintf(&b, ":DATE: %s\n", t.Date)
	fmt.Fprintf(&b, ":TIME: %s\n", t.Time)
	fmt.Fprintf(&b, ":CREATED_AT: %s\n", t.CreatedAt.UTC().Format(time.RFC3339))
	b.WriteString(":END:\n")
	if t.Note != "" {
		for _, line := range strings.Split(t.Note, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

// FormatDayOrg renders a day heading with its total, trades latest first.
func FormatDayOrg(d pnl.Day) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** <%s %s> P&L %s\n", d.Date, d.Date.Format("Mon"), d.Total)
	for _, t := range pnl.SortByTimeDesc(d.Trades) {
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

// FormatLogOrg renders every day that has trades, oldest day first, under a
// heading per month.
func FormatLogOrg(trades []trade.Trade) string {
	var dates []calendar.Date
	seen := map[calendar.Date]bool{}
	for _, t := range trades {
		if !seen[t.Date] {
			seen[t.Date] = true
			dates = append(dates, t.Date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var b strings.Builder
	var month calendar.Month
	for _, d := range dates {
		if m := calendar.MonthOf(d); m != month {
			month = m
			fmt.Fprintf(&b, "* %s\n", d.Format("January 2006"))
		}
		b.WriteString(FormatDayOrg(pnl.Daily(trades, d)))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
