package cmd

import (
	"fmt"

	"github.com/rustyeddy/pnl/calendar"
	"github.com/rustyeddy/pnl/pnl"
	"github.com/rustyeddy/pnl/report"
	"github.com/spf13/cobra"
)

var monthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Show a month calendar of daily P&L",
	Long: `Show a calendar for one month with each day's P&L and the month totals.

The month defaults to the current one. --prev and --next page from it.

Examples:
  pnl month
  pnl month 2024-02
  pnl month --prev 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMonth,
}

var (
	monthPrev int
	monthNext int
)

func init() {
	rootCmd.AddCommand(monthCmd)

	monthCmd.Flags().IntVarP(&monthPrev, "prev", "p", 0, "go back N months")
	monthCmd.Flags().IntVarP(&monthNext, "next", "n", 0, "go forward N months")
}

func targetMonth(args []string, today calendar.Date) (calendar.Month, error) {
	ref := today
	if len(args) == 1 {
		parsed, err := calendar.ParseMonth(args[0])
		if err != nil {
			return calendar.Month{}, err
		}
		ref = parsed.First()
	}
	if monthPrev < 0 || monthNext < 0 {
		return calendar.Month{}, fmt.Errorf("--prev and --next must not be negative")
	}
	m := calendar.MonthOf(ref)
	for i := 0; i < monthNext; i++ {
		m = m.Next()
	}
	for i := 0; i < monthPrev; i++ {
		m = m.Previous()
	}
	return m, nil
}

func runMonth(cmd *cobra.Command, args []string) error {
	today := calendar.Today()
	m, err := targetMonth(args, today)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	grid := pnl.MonthGrid(a.store.Trades(), m.Year, m.Month)
	return a.render(report.MonthMarkdown(m, grid, a.money, today))
}
