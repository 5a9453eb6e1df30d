package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vuhoang/autocal/calc"
	"github.com/vuhoang/autocal/journal"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Size a position without journaling it",
	Long: `Size a position from the risk parameters and print max loss,
notional, real margin and the SL/TP levels. Nothing is written to the
journal; use 'autocal open' to commit.`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

var (
	calcMargin      float64
	calcEntry       float64
	calcShort       bool
	calcLossPercent float64
	calcLeverage    float64
	calcRR          float64
	calcRealLoss    float64
)

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().Float64VarP(&calcMargin, "margin", "m", 0, "total account margin (default: stored balance)")
	calcCmd.Flags().Float64VarP(&calcEntry, "entry", "e", 0, "entry price")
	calcCmd.Flags().BoolVar(&calcShort, "short", false, "size a short (default long)")
	calcCmd.Flags().Float64Var(&calcLossPercent, "loss-percent", 1, "percent of account risked")
	calcCmd.Flags().Float64VarP(&calcLeverage, "leverage", "l", 44, "position leverage")
	calcCmd.Flags().Float64Var(&calcRR, "rr", 2, "expected reward:risk")
	calcCmd.Flags().Float64Var(&calcRealLoss, "real-loss", 0, "percent price move to stop")
}

func runCalc(cmd *cobra.Command, args []string) error {
	margin := calcMargin
	if margin == 0 {
		e, _, closeStore, err := openEngine()
		if err != nil {
			return err
		}
		margin = e.Balance()
		closeStore()
	}

	positionType := journal.Long
	if calcShort {
		positionType = journal.Short
	}

	res := calc.Calculate(calc.Inputs{
		TotalMargin:          margin,
		LossPercentViaMargin: calcLossPercent,
		Leverage:             calcLeverage,
		ExpectedRR:           calcRR,
		RealLossPercent:      calcRealLoss,
		EntryPrice:           calcEntry,
		PositionType:         positionType,
	})
	printSizing(res)
	return nil
}
