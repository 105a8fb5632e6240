package types

import (
	"errors"
	"strings"
	"time"
)

// Completion statuses. StatusCompleted and StatusMissed are the only values
// the ledger persists; the remaining values exist for derived views.
const (
	StatusCompleted = "completed"
	StatusMissed    = "missed"

	// StatusNoRecord is the ledger answer for a scheduled day nobody
	// recorded anything on. Never persisted.
	StatusNoRecord = "none"

	// StatusNotScheduled and StatusFuture appear only in calendar
	// projections. Never persisted.
	StatusNotScheduled = "not_scheduled"
	StatusFuture       = "future"
)

// validRecordStatuses is the set of statuses a persisted record may carry.
var validRecordStatuses = map[string]bool{
	StatusCompleted: true,
	StatusMissed:    true,
}

// Record validation errors.
var (
	ErrInvalidStatus   = errors.New("invalid record status")
	ErrInvalidRecordID = errors.New("invalid record ID")
)

// CompletionRecord is one ledger entry: what happened to a habit on a
// calendar day. The ledger holds at most one record per (habit, day);
// a second write for the same key replaces the first.
type CompletionRecord struct {
	HabitID    string    // Owning habit.
	Date       Day       // Calendar day the record is for.
	Status     string    // StatusCompleted or StatusMissed.
	Notes      string    // Optional free-form note.
	RecordedAt time.Time // Timestamp of the write.
}

// Validate checks that the record carries a habit ID, a date, and a
// persistable status.
func (r *CompletionRecord) Validate() error {
	if r.HabitID == "" {
		return ErrInvalidID
	}
	if r.Date.IsZero() {
		return ErrMissingStartDate
	}
	if !validRecordStatuses[r.Status] {
		return ErrInvalidStatus
	}
	return nil
}

// ID returns the composite record identifier used by the store:
// "<habitID>/<YYYY-MM-DD>".
func (r *CompletionRecord) ID() string {
	return RecordID(r.HabitID, r.Date)
}

// RecordID builds the composite store identifier for a (habit, day) key.
func RecordID(habitID string, day Day) string {
	return habitID + "/" + day.String()
}

// ParseRecordID splits a composite record identifier into its habit ID and
// day. Returns ErrInvalidRecordID if the identifier is malformed.
func ParseRecordID(id string) (string, Day, error) {
	i := strings.LastIndex(id, "/")
	if i <= 0 || i == len(id)-1 {
		return "", Day{}, ErrInvalidRecordID
	}
	day, err := ParseDay(id[i+1:])
	if err != nil {
		return "", Day{}, ErrInvalidRecordID
	}
	return id[:i], day, nil
}
