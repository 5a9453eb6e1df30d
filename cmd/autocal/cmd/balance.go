package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [amount]",
	Short: "Show or set the running account balance",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
	e, _, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	if len(args) == 1 {
		b, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("bad amount %q: %w", args[0], err)
		}
		e.SetBalance(b)
	}

	fmt.Printf("%.2f\n", e.Balance())
	return nil
}
