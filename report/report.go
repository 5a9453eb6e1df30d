// Package report turns the command log into windowed performance
// summaries. Everything here is a pure function of (records, now); nothing
// is cached or persisted.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vuhoang/autocal/journal"
)

type Window string

const (
	Today Window = "today"
	Week  Window = "week"
	Month Window = "month"
)

// Windows is the fixed report order.
var Windows = []Window{Today, Week, Month}

// Options carries the locale-dependent knobs: which day a week starts on
// and the display titles. TitleToday gets the day of month appended.
type Options struct {
	WeekStart  time.Weekday
	TitleToday string
	TitleWeek  string
	TitleMonth string
}

func DefaultOptions() Options {
	return Options{
		WeekStart:  time.Sunday,
		TitleToday: "Hôm nay",
		TitleWeek:  "Tuần này",
		TitleMonth: "Tháng này",
	}
}

// Summary is the derived view of one window. GrossLoss is a magnitude;
// Net is GrossWin - GrossLoss.
type Summary struct {
	Window     Window
	Title      string
	TradeCount int
	WinCount   int
	LossCount  int
	GrossWin   float64
	GrossLoss  float64
	WinRate    int
	Net        float64
}

// Filter returns the settled records of recs that fall inside w relative
// to now. Opening records and records with unparsable timestamps never
// match.
func Filter(recs []journal.TradeRecord, w Window, now time.Time, weekStart time.Weekday) []journal.TradeRecord {
	var out []journal.TradeRecord
	for _, rec := range recs {
		if rec.Status == journal.StatusOpening {
			continue
		}
		t, ok := rec.ParsedTime()
		if !ok {
			continue
		}
		if inWindow(t.In(now.Location()), w, now, weekStart) {
			out = append(out, rec)
		}
	}
	return out
}

func inWindow(t time.Time, w Window, now time.Time, weekStart time.Weekday) bool {
	switch w {
	case Today:
		return t.Year() == now.Year() && t.YearDay() == now.YearDay()
	case Week:
		return !t.Before(startOfWeek(now, weekStart))
	case Month:
		return t.Year() == now.Year() && t.Month() == now.Month()
	}
	return false
}

// startOfWeek is midnight of the most recent weekStart day, counting now's
// own day as part of the current week.
func startOfWeek(now time.Time, weekStart time.Weekday) time.Time {
	offset := (int(now.Weekday()) - int(weekStart) + 7) % 7
	day := now.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}

// Summarize computes the Summary for one window.
func Summarize(recs []journal.TradeRecord, w Window, now time.Time, opt Options) Summary {
	matched := Filter(recs, w, now, opt.WeekStart)

	s := Summary{Window: w, Title: title(w, now, opt)}
	for _, rec := range matched {
		s.TradeCount++
		switch rec.Status {
		case journal.StatusWin:
			s.WinCount++
			s.GrossWin += rec.NetProfit
		case journal.StatusLoss:
			s.LossCount++
			s.GrossLoss += math.Abs(rec.NetProfit)
		}
	}
	if s.TradeCount > 0 {
		s.WinRate = int(math.Round(float64(s.WinCount) / float64(s.TradeCount) * 100))
	}
	s.Net = s.GrossWin - s.GrossLoss
	return s
}

func title(w Window, now time.Time, opt Options) string {
	switch w {
	case Today:
		return fmt.Sprintf("%s %d", opt.TitleToday, now.Day())
	case Week:
		return opt.TitleWeek
	case Month:
		return opt.TitleMonth
	}
	return string(w)
}

// Format renders the summary as the multi-line report message. The gross
// loss is always shown with a leading minus when non-zero.
func (s Summary) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "📈 *%s*\n", s.Title)
	fmt.Fprintf(&b, "Số lệnh: %d (Win: %d | Loss: %d)\n", s.TradeCount, s.WinCount, s.LossCount)
	fmt.Fprintf(&b, "Win rate: %d%%\n", s.WinRate)
	fmt.Fprintf(&b, "Gross: %s | %s\n", FormatCurrency(s.GrossWin), formatCurrencyMinus(s.GrossLoss))
	fmt.Fprintf(&b, "Net: %s", FormatCurrency(s.Net))
	return b.String()
}

// Sync builds the three report strings in [today, week, month] order. This
// is the artifact handed to the notification capability.
func Sync(recs []journal.TradeRecord, now time.Time, opt Options) []string {
	out := make([]string, 0, len(Windows))
	for _, w := range Windows {
		out = append(out, Summarize(recs, w, now, opt).Format())
	}
	return out
}

// FormatCurrency renders a monetary amount. Zero and NaN render as "0";
// anything else as sign + magnitude to two decimals + "$".
func FormatCurrency(n float64) string {
	if n == 0 || math.IsNaN(n) {
		return "0"
	}
	sign := "+"
	if n < 0 {
		sign = "-"
	}
	return sign + strconv.FormatFloat(math.Abs(n), 'f', 2, 64) + "$"
}

// formatCurrencyMinus forces the minus sign for non-zero amounts. Used for
// gross loss, which is stored as a magnitude but displayed as a loss.
func formatCurrencyMinus(n float64) string {
	if n == 0 || math.IsNaN(n) {
		return "0"
	}
	return "-" + strconv.FormatFloat(math.Abs(n), 'f', 2, 64) + "$"
}
