// Package journal keeps the command log: the ordered sequence of trade
// records the calculator produces. The log is append-only with one
// exception, spelled out in Save.
package journal

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/vuhoang/autocal/store"
)

// CommandsKey is the storage key the serialized log lives under. The value
// is the same key the original web build used, so an imported localStorage
// dump loads as-is.
const CommandsKey = "AUTO-CAL-FUTURE-FUTURE_COMMANDS"

type PositionType string

const (
	Long  PositionType = "long"
	Short PositionType = "short"
)

type Status string

const (
	// StatusOpening marks the one in-flight trade. At most one record may
	// carry it and that record is always the last in the log.
	StatusOpening Status = "opening"
	StatusWin     Status = "win"
	StatusLoss    Status = "loss"
)

// TradeRecord is one row of the command log. Time is kept as the RFC 3339
// string it was stamped with; everything below NetProfit is a snapshot of
// the calculator form at open time and round-trips untouched.
type TradeRecord struct {
	ID           string       `json:"id,omitempty"`
	Time         string       `json:"time"`
	PositionType PositionType `json:"positionType"`
	Status       Status       `json:"status"`
	NetProfit    float64      `json:"netProfit"`

	TotalMargin          float64  `json:"totalMargin,omitempty"`
	LossPercentViaMargin float64  `json:"lossPercentViaMargin,omitempty"`
	Leverage             float64  `json:"leverage,omitempty"`
	ExpectedRR           float64  `json:"expectedRR,omitempty"`
	RealLossPercent      float64  `json:"realLossPercent,omitempty"`
	MaxLoss              float64  `json:"maxLoss,omitempty"`
	EntryPrice           *float64 `json:"entryPrice,omitempty"`
}

// ParsedTime returns the record's timestamp, ok=false if it does not parse.
func (r TradeRecord) ParsedTime() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, r.Time)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Log is the command log over a store.Store. Save is serialized so the
// replace-last-if-opening rule holds even with concurrent callers.
type Log struct {
	mu    sync.Mutex
	store store.Store
	key   string
}

func New(s store.Store) *Log {
	return &Log{store: s, key: CommandsKey}
}

// Latest returns the last record in the log.
func (l *Log) Latest() (TradeRecord, bool) {
	recs := l.All()
	if len(recs) == 0 {
		return TradeRecord{}, false
	}
	return recs[len(recs)-1], true
}

// All returns the full log in insertion order. An absent or malformed
// stored value is an empty log.
func (l *Log) All() []TradeRecord {
	raw, ok := l.store.GetString(l.key)
	if !ok {
		return nil
	}

	var recs []TradeRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		slog.Warn("journal: malformed log, treating as empty", "err", err)
		return nil
	}
	return recs
}

// Save appends rec to the log, unless the last record has status opening:
// then rec replaces it, keeping the original record's timestamp. That is
// how a settled outcome lands in the slot its open created, and it keeps
// the at-most-one-opening invariant without ever scanning the log.
func (l *Log) Save(rec TradeRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	recs := l.All()
	if n := len(recs); n > 0 && recs[n-1].Status == StatusOpening {
		rec.Time = recs[n-1].Time
		recs[n-1] = rec
	} else {
		recs = append(recs, rec)
	}

	buf, err := json.Marshal(recs)
	if err != nil {
		slog.Error("journal: marshal log", "err", err)
		return
	}
	l.store.SetString(l.key, string(buf))
}

// Replace swaps the entire stored sequence, used by archive import.
func (l *Log) Replace(recs []TradeRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	buf, err := json.Marshal(recs)
	if err != nil {
		slog.Error("journal: marshal log", "err", err)
		return
	}
	l.store.SetString(l.key, string(buf))
}
