package cmd

import (
	"time"

	"github.com/rustyeddy/pnl/report"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show overall profit, loss and net P&L",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.render(report.OverviewMarkdown(a.store.Trades(), a.money, time.Now()))
}
