package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/pnl/calendar"
	"github.com/rustyeddy/pnl/store"
	"github.com/rustyeddy/pnl/trade"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <profit|loss> <amount>",
	Short: "Log a trade result",
	Long: `Log a single trade as a profit or a loss.

The amount is always a positive number; the first argument gives its sign.
Date defaults to today and time to the current time.

Examples:
  pnl add profit 120.50
  pnl add loss 40 --date 2024-03-05 --time 10:00 --note "stopped out"`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

var (
	addDate string
	addTime string
	addNote string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "day the trade is attributed to, YYYY-MM-DD (default today)")
	addCmd.Flags().StringVarP(&addTime, "time", "t", "", "time of day, HH:mm (default now)")
	addCmd.Flags().StringVarP(&addNote, "note", "n", "", "optional note")
}

func parseInput(args []string, now time.Time) (trade.Input, error) {
	typ, err := trade.ParseType(args[0])
	if err != nil {
		return trade.Input{}, err
	}
	amount, err := trade.ParseAmount(args[1])
	if err != nil {
		return trade.Input{}, err
	}

	day := calendar.Of(now)
	if addDate != "" {
		if day, err = calendar.Parse(addDate); err != nil {
			return trade.Input{}, err
		}
	}
	clock := now.Format(trade.TimeFormat)
	if addTime != "" {
		clock = addTime
	}

	return trade.Input{
		Amount: amount,
		Date:   day,
		Time:   clock,
		Note:   addNote,
		Type:   typ,
	}, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	in, err := parseInput(args, time.Now())
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.store.Add(in)
	if err != nil && !errors.Is(err, store.ErrNotPersisted) {
		return err
	}

	label := "Profit"
	if t.Type == trade.Loss {
		label = "Loss"
	}
	fmt.Fprintf(a.out, "%s of %s recorded on %s at %s (%s)\n", label, a.money.Format(t.Amount), t.Date, t.Time, t.ID)
	return err
}
