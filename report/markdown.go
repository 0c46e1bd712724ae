// Package report renders P&L views for the terminal and exports the trade
// log. Views are produced as Markdown; exports as Org-mode or CSV.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/pnl/calendar"
	"github.com/rustyeddy/pnl/pnl"
	"github.com/rustyeddy/pnl/trade"
)

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// MonthMarkdown renders a Sunday-first calendar table for one month. Each
// cell holds the day number and, when trades were logged, the day's P&L
// rounded to whole units with its sign. today is highlighted.
func MonthMarkdown(m calendar.Month, grid []pnl.Day, money Money, today calendar.Date) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s %d\n\n", m.Month, m.Year)

	b.WriteString("| " + strings.Join(weekdays, " | ") + " |\n")
	b.WriteString(strings.Repeat("|:---:", len(weekdays)) + "|\n")

	cells := make([]string, 0, 42)
	if len(grid) > 0 {
		for i := 0; i < int(grid[0].Date.Weekday()); i++ {
			cells = append(cells, "")
		}
	}
	for _, d := range grid {
		cells = append(cells, dayCell(d, money, today))
	}
	for len(cells)%7 != 0 {
		cells = append(cells, "")
	}
	for i := 0; i < len(cells); i += 7 {
		b.WriteString("| " + strings.Join(cells[i:i+7], " | ") + " |\n")
	}

	b.WriteString("\n")
	b.WriteString(SummaryMarkdown(fmt.Sprintf("%s %d", m.Month, m.Year), summarizeGrid(grid), money))
	return b.String()
}

func dayCell(d pnl.Day, money Money, today calendar.Date) string {
	num := fmt.Sprintf("%d", d.Date.Day())
	if d.Date == today {
		num = "**" + num + "**"
	}
	if !d.HasTrades() {
		return num
	}
	amount := money.Whole(d.Total)
	switch {
	case d.Total.IsPositive():
		amount = "+" + amount
	case d.Total.IsNegative():
		amount = "-" + amount
	}
	return strings.TrimSpace(num + " " + amount)
}

func summarizeGrid(grid []pnl.Day) pnl.Summary {
	var trades []trade.Trade
	for _, d := range grid {
		trades = append(trades, d.Trades...)
	}
	return pnl.Summarize(trades)
}

// DayMarkdown lists one day's trades, latest first, under the day's total.
func DayMarkdown(d pnl.Day, money Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Trades for %s\n\n", d.Date.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Daily Total: **%s**\n\n", money.Signed(d.Total))

	if !d.HasTrades() {
		b.WriteString("No trades recorded for this day\n")
		return b.String()
	}

	b.WriteString("| Time | Type | Amount | Note | ID |\n")
	b.WriteString("|---|---|---:|---|---|\n")
	for _, t := range pnl.SortByTimeDesc(d.Trades) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			t.Time, t.Type, money.Signed(t.Signed()), escapeCell(t.Note), t.ID)
	}
	return b.String()
}

// SummaryMarkdown renders totals under a title.
func SummaryMarkdown(title string, s pnl.Summary, money Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)
	b.WriteString("| Profit | Loss | Net P&L | Trades |\n")
	b.WriteString("|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %d |\n",
		money.Format(s.TotalProfit), money.Format(s.TotalLoss), money.Signed(s.NetPnL), s.Count)
	return b.String()
}

// OverviewMarkdown is the header view: overall P&L and the summary table.
func OverviewMarkdown(trades []trade.Trade, money Money, asOf time.Time) string {
	var b strings.Builder
	b.WriteString("# P&L Tracker\n\n")
	fmt.Fprintf(&b, "Total P&L: **%s** as of %s\n\n", money.Signed(pnl.Total(trades)), asOf.Format("2006-01-02 15:04"))
	b.WriteString(SummaryMarkdown("All trades", pnl.Summarize(trades), money))
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
