package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vuhoang/autocal/engine"
	"github.com/vuhoang/autocal/journal"
)

var winCmd = &cobra.Command{
	Use:   "win",
	Short: "Settle the open trade as a win",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettle(engine.VisibleWin)
	},
}

var lossCmd = &cobra.Command{
	Use:   "loss",
	Short: "Settle the open trade as a loss",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettle(engine.VisibleLoss)
	},
}

var settleProfit float64

func init() {
	rootCmd.AddCommand(winCmd)
	rootCmd.AddCommand(lossCmd)

	winCmd.Flags().Float64VarP(&settleProfit, "profit", "p", 0, "profit magnitude in account currency")
	lossCmd.Flags().Float64VarP(&settleProfit, "profit", "p", 0, "loss magnitude in account currency")
}

func runSettle(state engine.ConfirmState) error {
	e, log, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	last, ok := log.Latest()
	if !ok || last.Status != journal.StatusOpening {
		return fmt.Errorf("no open trade to settle")
	}
	if settleProfit == 0 {
		return fmt.Errorf("--profit must be non-zero")
	}

	e.RequestConfirm(state)
	reset, reports := e.Confirm(last, settleProfit, e.Balance())
	if reset == nil {
		return fmt.Errorf("trade was not settled")
	}

	fmt.Printf("Balance: %.2f\n\n", reset.TotalMargin)
	fmt.Println(strings.Join(reports, "\n\n"))
	return nil
}
