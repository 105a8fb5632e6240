package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mesh-intelligence/cadence/pkg/types"
)

// Ledger errors.
var (
	// ErrNotScheduled rejects a write for a day the habit's pattern does
	// not place it on. The ledger never holds a record for an unscheduled
	// day, so downstream rendering can never confuse an unscheduled day
	// with a missed one.
	ErrNotScheduled = errors.New("habit is not scheduled on that date")

	// ErrOutOfRange rejects a write for a day outside the habit's
	// [StartDate, EndDate] window.
	ErrOutOfRange = errors.New("date is outside the habit's date range")

	// ErrFutureDate rejects a write for a day after today. The projector
	// renders every day after today as future; letting a record exist
	// there would make the ledger and the projection disagree about the
	// same date.
	ErrFutureDate = errors.New("cannot record a future date")
)

// Ledger enforces the at-most-one-record-per-(habit, day) discipline over
// a Store. Writes validate against the recurrence rule before touching
// storage and are serialized per (habit, day) key; the upserts are
// idempotent, so a rapid double-tap on the same day converges to one
// record without a global lock.
//
// Storage failures surface to the caller unretried. Masking a failed
// write as success would corrupt every derived streak and statistic.
type Ledger struct {
	store types.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLedger creates a Ledger over an attached store.
func NewLedger(store types.Store) *Ledger {
	return &Ledger{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

// RecordCompletion upserts a completed record for the habit on the given
// day. Returns ErrNotFound for an unknown habit and ErrNotScheduled when
// the recurrence rule does not place the habit on that day.
func (l *Ledger) RecordCompletion(habitID string, day types.Day, notes string) error {
	return l.record(habitID, day, types.StatusCompleted, notes)
}

// RecordMissed upserts a missed record with the same contract as
// RecordCompletion.
func (l *Ledger) RecordMissed(habitID string, day types.Day, notes string) error {
	return l.record(habitID, day, types.StatusMissed, notes)
}

func (l *Ledger) record(habitID string, day types.Day, status, notes string) error {
	habit, err := l.Habit(habitID)
	if err != nil {
		return err
	}
	today := types.Today()
	if day.After(today) {
		return ErrFutureDate
	}
	if day.Before(habit.StartDate) || (habit.EndDate != nil && day.After(*habit.EndDate)) {
		return ErrOutOfRange
	}
	if !ScheduledOn(habit, day, today) {
		return ErrNotScheduled
	}

	table, err := l.store.GetTable(types.RecordsTable)
	if err != nil {
		return err
	}

	key := types.RecordID(habitID, day)
	lock := l.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	rec := &types.CompletionRecord{
		HabitID:    habitID,
		Date:       day,
		Status:     status,
		Notes:      notes,
		RecordedAt: time.Now().UTC(),
	}
	if _, err := table.Set(key, rec); err != nil {
		return fmt.Errorf("recording %s for habit %s on %s: %w", status, habitID, day, err)
	}
	return nil
}

// Undo deletes the record for the given day if present. Undoing a day that
// has no record succeeds as a no-op. Returns ErrNotFound for an unknown
// habit, matching the record path.
func (l *Ledger) Undo(habitID string, day types.Day) error {
	if _, err := l.Habit(habitID); err != nil {
		return err
	}

	table, err := l.store.GetTable(types.RecordsTable)
	if err != nil {
		return err
	}

	key := types.RecordID(habitID, day)
	lock := l.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if err := table.Delete(key); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("undoing record for habit %s on %s: %w", habitID, day, err)
	}
	return nil
}

// Status returns the recorded status for a (habit, day) key:
// StatusCompleted, StatusMissed, or StatusNoRecord.
func (l *Ledger) Status(habitID string, day types.Day) (string, error) {
	table, err := l.store.GetTable(types.RecordsTable)
	if err != nil {
		return "", err
	}

	entity, err := table.Get(types.RecordID(habitID, day))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return types.StatusNoRecord, nil
		}
		return "", fmt.Errorf("reading record for habit %s on %s: %w", habitID, day, err)
	}
	rec, ok := entity.(*types.CompletionRecord)
	if !ok {
		return "", types.ErrInvalidData
	}
	return rec.Status, nil
}

// History returns a snapshot of every record for the habit. Derived views
// rebuild this on each read instead of maintaining a mirror of ledger
// state.
func (l *Ledger) History(habitID string) (History, error) {
	table, err := l.store.GetTable(types.RecordsTable)
	if err != nil {
		return nil, err
	}

	entities, err := table.Fetch(map[string]any{"habit_id": habitID})
	if err != nil {
		return nil, fmt.Errorf("fetching records for habit %s: %w", habitID, err)
	}

	records := make([]*types.CompletionRecord, 0, len(entities))
	for _, e := range entities {
		rec, ok := e.(*types.CompletionRecord)
		if !ok {
			return nil, types.ErrInvalidData
		}
		records = append(records, rec)
	}
	return NewHistory(records), nil
}

// Habit loads a habit from the store. Returns ErrNotFound for an unknown
// ID.
func (l *Ledger) Habit(habitID string) (types.Habit, error) {
	table, err := l.store.GetTable(types.HabitsTable)
	if err != nil {
		return types.Habit{}, err
	}

	entity, err := table.Get(habitID)
	if err != nil {
		return types.Habit{}, err
	}
	habit, ok := entity.(*types.Habit)
	if !ok {
		return types.Habit{}, types.ErrInvalidData
	}
	return *habit, nil
}

// keyLock returns the mutex serializing writes for one (habit, day) key.
func (l *Ledger) keyLock(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	return lock
}
