package recognition

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rollmark/rollmark/internal/storage"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// MarkOutcome reports whether MarkIfAbsent wrote a new record. Time is the
// recorded time of day when Marked is true.
type MarkOutcome struct {
	Marked bool
	Time   string
}

// Ledger records attendance at most once per student per calendar day.
//
// The dedup lives entirely in the storage uniqueness constraint on
// (roll, date): the insert either lands or conflicts, there is no separate
// existence check. That keeps two concurrent calls for the same student on
// the same day correct even across independent processes sharing the
// database - exactly one call observes Marked.
type Ledger struct {
	store storage.AttendanceStore
	now   func() time.Time
}

// NewLedger creates a ledger backed by the given attendance store.
func NewLedger(store storage.AttendanceStore) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// MarkIfAbsent records attendance for roll on the given calendar day unless
// a record already exists. The day comes from the caller; only the time of
// day is read from the clock. An existing record is a normal outcome
// (Marked=false), not an error.
func (l *Ledger) MarkIfAbsent(ctx context.Context, roll, name string, day time.Time) (MarkOutcome, error) {
	rec := storage.AttendanceRecord{
		ID:   uuid.New().String(),
		Roll: roll,
		Name: name,
		Date: day.Format(dateLayout),
		Time: l.now().Format(timeLayout),
	}

	inserted, err := l.store.InsertIfAbsent(ctx, rec)
	if err != nil {
		return MarkOutcome{}, err
	}
	if !inserted {
		return MarkOutcome{Marked: false}, nil
	}
	return MarkOutcome{Marked: true, Time: rec.Time}, nil
}
