// Package calc holds the position-sizing arithmetic: pure functions from
// the calculator form to position size and exit levels. Nothing here
// touches the command log.
package calc

import "github.com/vuhoang/autocal/journal"

type Inputs struct {
	TotalMargin          float64
	LossPercentViaMargin float64 // % of the account risked per trade
	Leverage             float64
	ExpectedRR           float64 // reward:risk multiple for take-profit
	RealLossPercent      float64 // % price move from entry to stop
	EntryPrice           float64 // 0 means not entered yet
	PositionType         journal.PositionType
}

type Result struct {
	MaxLoss    float64 // account currency lost if the stop is hit
	Notional   float64 // position size backing that loss
	RealMargin float64 // notional / leverage, the capital actually posted

	// Exit levels; nil until an entry price is known.
	StopLoss   *float64
	TakeProfit *float64
	StopLoss1R *float64 // stop at a 1% price move, the 1R reference
}

// Calculate sizes the position so a stop-out loses exactly MaxLoss.
//
// lossRatio is the fractional price move to the stop; the notional that
// loses MaxLoss over that move is MaxLoss / lossRatio. A zero
// RealLossPercent yields +Inf notional, which the caller treats as "not
// sized yet" the same way the form does.
func Calculate(in Inputs) Result {
	lossRatio := in.RealLossPercent / 100

	r := Result{
		MaxLoss: in.TotalMargin * in.LossPercentViaMargin / 100,
	}
	r.Notional = r.MaxLoss / lossRatio
	r.RealMargin = r.Notional / in.Leverage

	if in.EntryPrice <= 0 {
		return r
	}

	lossAmount := in.EntryPrice * lossRatio
	oneR := in.EntryPrice * 0.01
	long := in.PositionType != journal.Short

	var sl, tp, sl1r float64
	if long {
		sl = in.EntryPrice - lossAmount
		tp = in.EntryPrice + in.ExpectedRR*lossAmount
		sl1r = in.EntryPrice - oneR
	} else {
		sl = in.EntryPrice + lossAmount
		tp = in.EntryPrice - in.ExpectedRR*lossAmount
		sl1r = in.EntryPrice + oneR
	}
	r.StopLoss = &sl
	r.TakeProfit = &tp
	r.StopLoss1R = &sl1r
	return r
}
