package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuhoang/autocal/journal"
	"github.com/vuhoang/autocal/report"
	"github.com/vuhoang/autocal/store"
)

type spyNotifier struct {
	published [][]string
}

func (s *spyNotifier) Publish(summaries []string) error {
	s.published = append(s.published, summaries)
	return nil
}

var testNow = time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *journal.Log, *spyNotifier) {
	t.Helper()

	st := store.NewMemory()
	log := journal.New(st)
	spy := &spyNotifier{}

	e := New(log, st, spy, report.DefaultOptions())
	e.now = func() time.Time { return testNow }
	return e, log, spy
}

func openTrade(t *testing.T, e *Engine) {
	t.Helper()
	e.RequestConfirm(VisibleOpen)
	reset, reports := e.Confirm(journal.TradeRecord{PositionType: journal.Long}, 0, 1000)
	assert.Nil(t, reset)
	assert.Nil(t, reports)
}

func TestConfirmOpen(t *testing.T) {
	t.Parallel()

	e, log, spy := newTestEngine(t)
	openTrade(t, e)

	assert.Equal(t, Opening, e.State())

	last, ok := log.Latest()
	require.True(t, ok)
	assert.Equal(t, journal.StatusOpening, last.Status)
	assert.Equal(t, testNow.Format(time.RFC3339), last.Time)
	assert.Equal(t, 0.0, last.NetProfit)
	assert.NotEmpty(t, last.ID)

	// Nothing is published until the trade settles.
	assert.Empty(t, spy.published)
}

func TestConfirmWinSettlesOpenSlot(t *testing.T) {
	t.Parallel()

	e, log, spy := newTestEngine(t)
	openTrade(t, e)

	last, _ := log.Latest()
	e.RequestConfirm(VisibleWin)
	reset, reports := e.Confirm(last, 50, 1000)

	require.NotNil(t, reset)
	assert.Equal(t, Invisible, e.State())

	recs := log.All()
	require.Len(t, recs, 1)
	assert.Equal(t, journal.StatusWin, recs[0].Status)
	assert.Equal(t, 50.0, recs[0].NetProfit)
	assert.Equal(t, testNow.Format(time.RFC3339), recs[0].Time)

	assert.Equal(t, 1050.0, reset.TotalMargin)
	assert.Equal(t, 1050.0, e.Balance())

	require.Len(t, reports, 3)
	require.Len(t, spy.published, 1)
	assert.Equal(t, reports, spy.published[0])
}

func TestConfirmLossNegatesProfit(t *testing.T) {
	t.Parallel()

	e, log, _ := newTestEngine(t)
	openTrade(t, e)

	last, _ := log.Latest()
	e.RequestConfirm(VisibleLoss)
	reset, _ := e.Confirm(last, 20, 1000)

	require.NotNil(t, reset)
	recs := log.All()
	require.Len(t, recs, 1)
	assert.Equal(t, journal.StatusLoss, recs[0].Status)
	assert.Equal(t, -20.0, recs[0].NetProfit)
	assert.Equal(t, 980.0, reset.TotalMargin)
}

func TestConfirmZeroProfitIsNoop(t *testing.T) {
	t.Parallel()

	e, log, spy := newTestEngine(t)
	openTrade(t, e)
	before := log.All()

	for _, state := range []ConfirmState{VisibleWin, VisibleLoss} {
		e.RequestConfirm(state)
		reset, reports := e.Confirm(journal.TradeRecord{}, 0, 1000)

		assert.Nil(t, reset)
		assert.Nil(t, reports)
		assert.Equal(t, state, e.State(), "state must not change")
		assert.Equal(t, before, log.All(), "log must not change")
	}
	assert.Empty(t, spy.published)
}

func TestConfirmFromIdleStatesIsNoop(t *testing.T) {
	t.Parallel()

	e, log, _ := newTestEngine(t)

	for _, state := range []ConfirmState{Invisible, Opening} {
		e.state = state
		reset, reports := e.Confirm(journal.TradeRecord{}, 50, 1000)

		assert.Nil(t, reset)
		assert.Nil(t, reports)
		assert.Equal(t, state, e.State())
		assert.Empty(t, log.All())
	}
}

func TestRequestConfirmOnlyVisibleStates(t *testing.T) {
	t.Parallel()

	e, _, _ := newTestEngine(t)

	e.RequestConfirm(VisibleWin)
	assert.Equal(t, VisibleWin, e.State())

	// Internal states cannot be requested from outside.
	e.RequestConfirm(Opening)
	assert.Equal(t, VisibleWin, e.State())
	e.RequestConfirm(Invisible)
	assert.Equal(t, VisibleWin, e.State())
}

func TestResetSignalDefaults(t *testing.T) {
	t.Parallel()

	e, log, _ := newTestEngine(t)
	openTrade(t, e)

	last, _ := log.Latest()
	e.RequestConfirm(VisibleWin)
	reset, _ := e.Confirm(last, 50, 1000)

	require.NotNil(t, reset)
	assert.Equal(t, 1.0, reset.LossPercentViaMargin)
	assert.Equal(t, 44.0, reset.Leverage)
	assert.Equal(t, 2.0, reset.ExpectedRR)
	assert.Equal(t, 0.0, reset.RealLossPercent)
	assert.Equal(t, journal.Long, reset.PositionType)
	assert.Nil(t, reset.EntryPrice)
	assert.Equal(t, 0.0, reset.NetProfit)
}

func TestBalance(t *testing.T) {
	t.Parallel()

	e, _, _ := newTestEngine(t)
	assert.Equal(t, 0.0, e.Balance())

	e.SetBalance(1234.56)
	assert.Equal(t, 1234.56, e.Balance())
}

func TestBalanceMalformed(t *testing.T) {
	t.Parallel()

	st := store.NewMemory()
	st.SetString(BalanceKey, "lots")

	e := New(journal.New(st), st, nil, report.DefaultOptions())
	assert.Equal(t, 0.0, e.Balance())
}
