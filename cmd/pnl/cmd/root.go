package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pnl",
	Short: "A calendar based profit and loss tracker",
	Long: `pnl keeps a personal log of trade results and shows them on a calendar.

It provides tools for:
  - Logging each trade as a profit or a loss with date, time and a note
  - Daily totals and a month calendar of P&L
  - Overall profit, loss and net totals
  - Exporting the log as CSV or Org-mode

Trades are stored locally, in a JSON file or a SQLite database.`,
	SilenceUsage: true,
}

var (
	cfgFile     string
	dataDir     string
	storageType string
	logLevel    string
	plain       bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	pf.StringVar(&dataDir, "data-dir", "", "directory holding the trade log (overrides config)")
	pf.StringVar(&storageType, "storage", "", "storage backend: file or sqlite (overrides config)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	pf.BoolVar(&plain, "plain", false, "print raw Markdown instead of rendering it")
}
