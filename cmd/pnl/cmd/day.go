package cmd

import (
	"fmt"

	"github.com/rustyeddy/pnl/calendar"
	"github.com/rustyeddy/pnl/pnl"
	"github.com/rustyeddy/pnl/report"
	"github.com/spf13/cobra"
)

var dayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "Show the trades and total of one day",
	Long: `Show every trade logged on a day, latest first, with the day's total.

Examples:
  pnl day
  pnl day 2024-03-05`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDay,
}

var dayOrg bool

func init() {
	rootCmd.AddCommand(dayCmd)

	dayCmd.Flags().BoolVar(&dayOrg, "org", false, "print the day as an Org-mode entry")
}

func runDay(cmd *cobra.Command, args []string) error {
	day := calendar.Today()
	if len(args) == 1 {
		var err error
		if day, err = calendar.Parse(args[0]); err != nil {
			return fmt.Errorf("date: %w", err)
		}
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	d := pnl.Daily(a.store.Trades(), day)
	if dayOrg {
		_, err := fmt.Fprint(a.out, report.FormatDayOrg(d))
		return err
	}
	return a.render(report.DayMarkdown(d, a.money))
}
