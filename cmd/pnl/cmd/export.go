package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rustyeddy/pnl/report"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the trade log as CSV or Org-mode",
	Long: `Write every trade in the log to stdout or a file.

Examples:
  pnl export --format csv -o trades.csv
  pnl export --format org >> journal.org`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "export format: csv or org")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "org" {
		return fmt.Errorf("unknown export format %q", exportFormat)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var w io.Writer = a.out
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	trades := a.store.Trades()
	switch exportFormat {
	case "org":
		_, err = fmt.Fprint(w, report.FormatLogOrg(trades))
	default:
		err = report.WriteCSV(w, trades)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	a.log.Info().Str("format", exportFormat).Int("count", len(trades)).Msg("trades exported")
	return nil
}
