// Package pnl computes profit and loss views over a trade log. Every function
// is pure: it reads the slice it is given and returns fresh values.
package pnl

import (
	"sort"
	"time"

	"github.com/rustyeddy/pnl/calendar"
	"github.com/rustyeddy/pnl/trade"
	"github.com/shopspring/decimal"
)

// Day is the bucket of trades attributed to one calendar day.
type Day struct {
	Date   calendar.Date
	Total  decimal.Decimal
	Trades []trade.Trade
}

// HasTrades reports whether anything was logged on the day.
func (d Day) HasTrades() bool { return len(d.Trades) > 0 }

// Summary holds totals over a set of trades. TotalProfit and TotalLoss are
// both magnitudes; NetPnL is their difference.
type Summary struct {
	TotalProfit decimal.Decimal
	TotalLoss   decimal.Decimal
	NetPnL      decimal.Decimal
	Count       int
}

// Daily returns the trades dated on date and their signed sum. Trades keep
// log order; Trades is empty, not nil, when nothing matches.
func Daily(trades []trade.Trade, date calendar.Date) Day {
	day := Day{Date: date, Total: decimal.Zero, Trades: []trade.Trade{}}
	for _, t := range trades {
		if t.Date == date {
			day.Trades = append(day.Trades, t)
			day.Total = day.Total.Add(t.Signed())
		}
	}
	return day
}

// MonthDays returns every day of the month, first to last.
func MonthDays(year int, month time.Month) []calendar.Date {
	return calendar.MonthDays(year, month)
}

// Summarize totals profits and losses.
func Summarize(trades []trade.Trade) Summary {
	s := Summary{
		TotalProfit: decimal.Zero,
		TotalLoss:   decimal.Zero,
		Count:       len(trades),
	}
	for _, t := range trades {
		switch t.Type {
		case trade.Profit:
			s.TotalProfit = s.TotalProfit.Add(t.Amount)
		case trade.Loss:
			s.TotalLoss = s.TotalLoss.Add(t.Amount)
		}
	}
	s.NetPnL = s.TotalProfit.Sub(s.TotalLoss)
	return s
}

// Total is the signed sum of every trade.
func Total(trades []trade.Trade) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range trades {
		sum = sum.Add(t.Signed())
	}
	return sum
}

// MonthTrades returns the trades dated within the given month, in log order.
func MonthTrades(trades []trade.Trade, year int, month time.Month) []trade.Trade {
	m := calendar.MonthOf(calendar.New(year, month, 1))
	out := []trade.Trade{}
	for _, t := range trades {
		if m.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// MonthGrid returns one Day per day of the month, in order. It is what a
// calendar view renders.
func MonthGrid(trades []trade.Trade, year int, month time.Month) []Day {
	days := calendar.MonthDays(year, month)
	inMonth := MonthTrades(trades, year, month)

	grid := make([]Day, len(days))
	for i, d := range days {
		grid[i] = Daily(inMonth, d)
	}
	return grid
}

// SortByTimeDesc returns a copy ordered latest time of day first. Trades at
// the same time keep their log order.
func SortByTimeDesc(trades []trade.Trade) []trade.Trade {
	out := append([]trade.Trade{}, trades...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time > out[j].Time })
	return out
}
