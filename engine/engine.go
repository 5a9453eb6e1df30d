// Package engine drives a trade from "just opened" to a settled win or
// loss. It owns the confirmation state machine, writes the command log,
// keeps the running balance, and hands fresh reports to the notifier after
// every settled trade.
package engine

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/vuhoang/autocal/internal/id"
	"github.com/vuhoang/autocal/journal"
	"github.com/vuhoang/autocal/notify"
	"github.com/vuhoang/autocal/report"
	"github.com/vuhoang/autocal/store"
)

// BalanceKey is the storage key for the running total margin, kept
// identical to the original web build's key.
const BalanceKey = "AUTO-CAL-FUTURE-TOTAL_MARGIN"

// ConfirmState is the confirmation dialog's position in the trade
// lifecycle. The visible-* states mean the user is being asked to confirm
// that action; Opening means a trade is in flight; Invisible is idle.
type ConfirmState string

const (
	Invisible   ConfirmState = "invisible"
	Opening     ConfirmState = "opening"
	VisibleOpen ConfirmState = "visible-open"
	VisibleWin  ConfirmState = "visible-win"
	VisibleLoss ConfirmState = "visible-loss"
)

// ResetSignal tells the front end what to put back in the form after a
// settled trade: the new balance plus the default field values.
type ResetSignal struct {
	TotalMargin          float64
	LossPercentViaMargin float64
	Leverage             float64
	ExpectedRR           float64
	RealLossPercent      float64
	MaxLoss              float64
	PositionType         journal.PositionType
	EntryPrice           *float64
	NetProfit            float64
}

func resetSignal(totalMargin float64) *ResetSignal {
	return &ResetSignal{
		TotalMargin:          totalMargin,
		LossPercentViaMargin: 1,
		Leverage:             44,
		ExpectedRR:           2,
		RealLossPercent:      0,
		MaxLoss:              1,
		PositionType:         journal.Long,
		EntryPrice:           nil,
		NetProfit:            0,
	}
}

type Engine struct {
	log      *journal.Log
	store    store.Store
	notifier notify.Notifier
	opts     report.Options
	state    ConfirmState

	// now is swappable for tests.
	now func() time.Time
}

func New(log *journal.Log, s store.Store, n notify.Notifier, opts report.Options) *Engine {
	if n == nil {
		n = notify.Nop{}
	}
	return &Engine{
		log:      log,
		store:    s,
		notifier: n,
		opts:     opts,
		state:    Invisible,
		now:      time.Now,
	}
}

func (e *Engine) State() ConfirmState { return e.state }

// RequestConfirm moves the dialog to one of the visible-* states. It never
// touches the log; the actual work happens in Confirm.
func (e *Engine) RequestConfirm(s ConfirmState) {
	switch s {
	case VisibleOpen, VisibleWin, VisibleLoss:
		e.state = s
	}
}

// Confirm executes the action the current state asks for.
//
// From VisibleOpen the draft is stamped with the current time and appended
// as an opening record; netProfit is not consulted. From VisibleWin or
// VisibleLoss the open slot is amended to the settled outcome, the running
// balance moves by the signed profit, reports are recomputed and published,
// and the returned ResetSignal carries the new balance and form defaults.
//
// A zero netProfit on win/loss is ignored: at zero magnitude the win/loss
// direction carries no information. Confirm from any other state is a
// no-op. Both return (nil, nil).
func (e *Engine) Confirm(draft journal.TradeRecord, netProfit, totalMargin float64) (*ResetSignal, []string) {
	switch e.state {
	case VisibleOpen:
		draft.Status = journal.StatusOpening
		draft.Time = e.now().Format(time.RFC3339)
		draft.NetProfit = 0
		if draft.ID == "" {
			draft.ID = id.New()
		}
		e.state = Opening
		e.log.Save(draft)
		return nil, nil

	case VisibleWin, VisibleLoss:
		if netProfit == 0 {
			return nil, nil
		}
		if e.state == VisibleWin {
			draft.Status = journal.StatusWin
			draft.NetProfit = netProfit
		} else {
			draft.Status = journal.StatusLoss
			draft.NetProfit = -netProfit
		}
		return e.settle(draft, totalMargin)
	}
	return nil, nil
}

func (e *Engine) settle(rec journal.TradeRecord, totalMargin float64) (*ResetSignal, []string) {
	e.state = Invisible
	e.log.Save(rec)

	balance := totalMargin + rec.NetProfit
	e.SetBalance(balance)

	reports := e.Reports()
	if err := e.notifier.Publish(reports); err != nil {
		// Reporting is best-effort; the trade is already settled.
		slog.Warn("engine: publish reports", "err", err)
	}
	return resetSignal(balance), reports
}

// Reports recomputes the three window summaries over the full log.
func (e *Engine) Reports() []string {
	return report.Sync(e.log.All(), e.now(), e.opts)
}

// Balance reads the persisted running balance; absent or malformed is 0.
func (e *Engine) Balance() float64 {
	raw, ok := e.store.GetString(BalanceKey)
	if !ok {
		return 0
	}
	b, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return b
}

func (e *Engine) SetBalance(b float64) {
	e.store.SetString(BalanceKey, strconv.FormatFloat(b, 'f', -1, 64))
}
