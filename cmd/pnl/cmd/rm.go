package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <trade-id>",
	Aliases: []string{"delete"},
	Short:   "Remove a trade from the log",
	Long: `Remove the trade with the given id. Ids are shown by "pnl day".
Removing an id that is not in the log does nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	t, ok := a.store.Get(args[0])
	if !ok {
		fmt.Fprintf(a.out, "No trade with id %s\n", args[0])
		return nil
	}
	_, err = a.store.Remove(t.ID)
	fmt.Fprintf(a.out, "Removed %s of %s on %s at %s (%s)\n", t.Type, a.money.Format(t.Amount), t.Date, t.Time, t.ID)
	return err
}
