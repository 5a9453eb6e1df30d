package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vuhoang/autocal/calc"
	"github.com/vuhoang/autocal/engine"
	"github.com/vuhoang/autocal/journal"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a trade and journal it",
	Long: `Open a trade: size the position from the current balance and the
given risk parameters, print the levels, and append an opening record to
the journal. Settle it later with 'autocal win' or 'autocal loss'.`,
	Args: cobra.NoArgs,
	RunE: runOpen,
}

var (
	openEntry       float64
	openShort       bool
	openLossPercent float64
	openLeverage    float64
	openRR          float64
	openRealLoss    float64
)

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().Float64VarP(&openEntry, "entry", "e", 0, "entry price")
	openCmd.Flags().BoolVar(&openShort, "short", false, "open a short (default long)")
	openCmd.Flags().Float64Var(&openLossPercent, "loss-percent", 1, "percent of account risked")
	openCmd.Flags().Float64VarP(&openLeverage, "leverage", "l", 44, "position leverage")
	openCmd.Flags().Float64Var(&openRR, "rr", 2, "expected reward:risk")
	openCmd.Flags().Float64Var(&openRealLoss, "real-loss", 0, "percent price move to stop")
}

func runOpen(cmd *cobra.Command, args []string) error {
	e, log, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	if last, ok := log.Latest(); ok && last.Status == journal.StatusOpening {
		return fmt.Errorf("a trade opened at %s is still in flight; settle it first", last.Time)
	}

	positionType := journal.Long
	if openShort {
		positionType = journal.Short
	}

	balance := e.Balance()
	in := calc.Inputs{
		TotalMargin:          balance,
		LossPercentViaMargin: openLossPercent,
		Leverage:             openLeverage,
		ExpectedRR:           openRR,
		RealLossPercent:      openRealLoss,
		EntryPrice:           openEntry,
		PositionType:         positionType,
	}
	res := calc.Calculate(in)

	draft := journal.TradeRecord{
		PositionType:         positionType,
		TotalMargin:          balance,
		LossPercentViaMargin: openLossPercent,
		Leverage:             openLeverage,
		ExpectedRR:           openRR,
		RealLossPercent:      openRealLoss,
		MaxLoss:              res.MaxLoss,
	}
	if openEntry > 0 {
		entry := openEntry
		draft.EntryPrice = &entry
	}

	e.RequestConfirm(engine.VisibleOpen)
	e.Confirm(draft, 0, balance)

	fmt.Printf("Opened %s @ %s\n", positionType, formatPrice(draft.EntryPrice))
	printSizing(res)
	return nil
}

func printSizing(r calc.Result) {
	fmt.Printf("Max loss:    %.2f\n", r.MaxLoss)
	fmt.Printf("Notional:    %.2f\n", r.Notional)
	fmt.Printf("Real margin: %.2f\n", r.RealMargin)
	if r.StopLoss != nil {
		fmt.Printf("SL:          %.4f\n", *r.StopLoss)
		fmt.Printf("TP:          %.4f\n", *r.TakeProfit)
		fmt.Printf("SL 1R:       %.4f\n", *r.StopLoss1R)
	}
}

func formatPrice(p *float64) string {
	if p == nil {
		return "market"
	}
	return fmt.Sprintf("%.4f", *p)
}
