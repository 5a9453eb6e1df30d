package report

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuhoang/autocal/journal"
)

// Wednesday, June 12 2024. With the default Sunday week start the current
// week began at midnight June 9.
var testNow = time.Date(2024, 6, 12, 15, 4, 5, 0, time.UTC)

func rec(ts string, status journal.Status, netProfit float64) journal.TradeRecord {
	return journal.TradeRecord{Time: ts, Status: status, NetProfit: netProfit}
}

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", FormatCurrency(0))
	assert.Equal(t, "0", FormatCurrency(math.NaN()))
	assert.Equal(t, "+30.00$", FormatCurrency(30))
	assert.Equal(t, "-20.00$", FormatCurrency(-20))
	assert.Equal(t, "+0.01$", FormatCurrency(0.005))
}

func TestFormatCurrencyMinus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", formatCurrencyMinus(0))
	assert.Equal(t, "0", formatCurrencyMinus(math.NaN()))
	// Gross loss is a magnitude but always renders as a loss.
	assert.Equal(t, "-20.00$", formatCurrencyMinus(20))
	assert.Equal(t, "-20.00$", formatCurrencyMinus(-20))
}

func TestSummarizeEmptyWindow(t *testing.T) {
	t.Parallel()

	s := Summarize(nil, Today, testNow, DefaultOptions())
	assert.Equal(t, 0, s.TradeCount)
	assert.Equal(t, 0, s.WinRate)
	assert.Equal(t, 0.0, s.Net)
}

func TestSummarizeWeek(t *testing.T) {
	t.Parallel()

	recs := []journal.TradeRecord{
		rec("2024-06-10T08:00:00Z", journal.StatusWin, 30),
		rec("2024-06-11T08:00:00Z", journal.StatusLoss, -20),
	}
	s := Summarize(recs, Week, testNow, DefaultOptions())

	assert.Equal(t, 2, s.TradeCount)
	assert.Equal(t, 1, s.WinCount)
	assert.Equal(t, 1, s.LossCount)
	assert.Equal(t, 50, s.WinRate)
	assert.Equal(t, "+30.00$", FormatCurrency(s.GrossWin))
	assert.Equal(t, "-20.00$", formatCurrencyMinus(s.GrossLoss))
	assert.Equal(t, "+10.00$", FormatCurrency(s.Net))
}

func TestWeekBoundary(t *testing.T) {
	t.Parallel()

	recs := []journal.TradeRecord{
		rec("2024-06-09T00:00:00Z", journal.StatusWin, 1),  // midnight of week start
		rec("2024-06-08T23:59:59Z", journal.StatusWin, 1),  // Saturday before
		rec("2024-06-05T12:00:00Z", journal.StatusLoss, -2), // previous week
	}

	got := Filter(recs, Week, testNow, time.Sunday)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-06-09T00:00:00Z", got[0].Time)
}

func TestWeekStartConfigurable(t *testing.T) {
	t.Parallel()

	// With a Monday week start, Sunday June 9 falls in the previous week.
	recs := []journal.TradeRecord{
		rec("2024-06-09T12:00:00Z", journal.StatusWin, 1),
		rec("2024-06-10T12:00:00Z", journal.StatusWin, 1),
	}

	got := Filter(recs, Week, testNow, time.Monday)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-06-10T12:00:00Z", got[0].Time)
}

func TestTodayIsCalendarDay(t *testing.T) {
	t.Parallel()

	recs := []journal.TradeRecord{
		rec("2024-06-12T00:00:01Z", journal.StatusWin, 1),
		rec("2024-06-12T23:59:59Z", journal.StatusLoss, -1),
		rec("2024-06-11T23:59:59Z", journal.StatusWin, 1),
	}

	got := Filter(recs, Today, testNow, time.Sunday)
	assert.Len(t, got, 2)
}

func TestMonthIsCalendarMonth(t *testing.T) {
	t.Parallel()

	recs := []journal.TradeRecord{
		rec("2024-06-01T00:00:00Z", journal.StatusWin, 1),
		rec("2024-05-31T23:59:59Z", journal.StatusWin, 1),
		rec("2023-06-15T00:00:00Z", journal.StatusWin, 1), // same month, wrong year
	}

	got := Filter(recs, Month, testNow, time.Sunday)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-06-01T00:00:00Z", got[0].Time)
}

func TestFilterExcludesOpeningAndBadTimes(t *testing.T) {
	t.Parallel()

	recs := []journal.TradeRecord{
		rec("2024-06-12T08:00:00Z", journal.StatusOpening, 0),
		rec("not-a-time", journal.StatusWin, 10),
		rec("2024-06-12T08:00:00Z", journal.StatusWin, 10),
	}

	for _, w := range Windows {
		got := Filter(recs, w, testNow, time.Sunday)
		require.Len(t, got, 1, "window %s", w)
		assert.Equal(t, journal.StatusWin, got[0].Status)
	}
}

func TestWinRateRounding(t *testing.T) {
	t.Parallel()

	recs := []journal.TradeRecord{
		rec("2024-06-12T08:00:00Z", journal.StatusWin, 10),
		rec("2024-06-12T09:00:00Z", journal.StatusLoss, -1),
		rec("2024-06-12T10:00:00Z", journal.StatusLoss, -1),
	}
	s := Summarize(recs, Today, testNow, DefaultOptions())
	assert.Equal(t, 33, s.WinRate)
}

func TestSummaryFormat(t *testing.T) {
	t.Parallel()

	recs := []journal.TradeRecord{
		rec("2024-06-10T08:00:00Z", journal.StatusWin, 30),
		rec("2024-06-11T08:00:00Z", journal.StatusLoss, -20),
	}
	got := Summarize(recs, Week, testNow, DefaultOptions()).Format()

	want := "📈 *Tuần này*\n" +
		"Số lệnh: 2 (Win: 1 | Loss: 1)\n" +
		"Win rate: 50%\n" +
		"Gross: +30.00$ | -20.00$\n" +
		"Net: +10.00$"
	assert.Equal(t, want, got)
}

func TestSyncOrderAndIdempotence(t *testing.T) {
	t.Parallel()

	recs := []journal.TradeRecord{
		rec("2024-06-12T08:00:00Z", journal.StatusWin, 30),
	}
	opt := DefaultOptions()

	first := Sync(recs, testNow, opt)
	require.Len(t, first, 3)
	assert.Contains(t, first[0], "Hôm nay 12")
	assert.Contains(t, first[1], "Tuần này")
	assert.Contains(t, first[2], "Tháng này")

	second := Sync(recs, testNow, opt)
	assert.Equal(t, first, second)
}
