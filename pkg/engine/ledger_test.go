package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/cadence/pkg/sqlite"
	"github.com/mesh-intelligence/cadence/pkg/types"
)

// newTestLedger attaches a backend in a temp dir and seeds one everyday
// habit that started a month ago.
func newTestLedger(t *testing.T) (*Ledger, types.Habit) {
	t.Helper()

	store := sqlite.NewBackend()
	err := store.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Detach())
	})

	habit := types.Habit{
		HabitID:   "h-ledger",
		Name:      "Stretch",
		Category:  "health",
		Pattern:   types.PatternEveryday,
		StartDate: types.Today().AddDays(-30),
		Active:    true,
	}
	table, err := store.GetTable(types.HabitsTable)
	require.NoError(t, err)
	_, err = table.Set(habit.HabitID, &habit)
	require.NoError(t, err)

	return NewLedger(store), habit
}

func TestLedgerRecordAndStatus(t *testing.T) {
	ledger, habit := newTestLedger(t)
	today := types.Today()

	status, err := ledger.Status(habit.HabitID, today)
	require.NoError(t, err)
	assert.Equal(t, types.StatusNoRecord, status)

	require.NoError(t, ledger.RecordCompletion(habit.HabitID, today, "morning"))

	status, err = ledger.Status(habit.HabitID, today)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, status)
}

func TestLedgerDoubleRecordConverges(t *testing.T) {
	ledger, habit := newTestLedger(t)
	today := types.Today()

	require.NoError(t, ledger.RecordCompletion(habit.HabitID, today, ""))
	require.NoError(t, ledger.RecordCompletion(habit.HabitID, today, ""))

	hist, err := ledger.History(habit.HabitID)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestLedgerMissedOverwritesCompletion(t *testing.T) {
	ledger, habit := newTestLedger(t)
	yesterday := types.Today().AddDays(-1)

	require.NoError(t, ledger.RecordCompletion(habit.HabitID, yesterday, ""))
	require.NoError(t, ledger.RecordMissed(habit.HabitID, yesterday, "skipped"))

	status, err := ledger.Status(habit.HabitID, yesterday)
	require.NoError(t, err)
	assert.Equal(t, types.StatusMissed, status)

	hist, err := ledger.History(habit.HabitID)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestLedgerRejectsDayBeforeStart(t *testing.T) {
	ledger, habit := newTestLedger(t)
	beforeStart := habit.StartDate.AddDays(-1)

	err := ledger.RecordCompletion(habit.HabitID, beforeStart, "")
	assert.ErrorIs(t, err, ErrOutOfRange)

	status, err := ledger.Status(habit.HabitID, beforeStart)
	require.NoError(t, err)
	assert.Equal(t, types.StatusNoRecord, status)
}

func TestLedgerRejectsUnscheduledDay(t *testing.T) {
	ledger, _ := newTestLedger(t)

	weekend := types.Habit{
		HabitID:   "h-weekend",
		Name:      "Hike",
		Pattern:   types.PatternWeekends,
		StartDate: types.Today().AddDays(-30),
		Active:    true,
	}
	table, err := ledger.store.GetTable(types.HabitsTable)
	require.NoError(t, err)
	_, err = table.Set(weekend.HabitID, &weekend)
	require.NoError(t, err)

	// Most recent weekday within the window.
	day := types.Today()
	for day.Weekday() >= 6 {
		day = day.AddDays(-1)
	}

	err = ledger.RecordCompletion(weekend.HabitID, day, "")
	assert.ErrorIs(t, err, ErrNotScheduled)
}

func TestLedgerUnknownHabit(t *testing.T) {
	ledger, _ := newTestLedger(t)

	err := ledger.RecordCompletion("no-such-habit", types.Today(), "")
	assert.ErrorIs(t, err, types.ErrNotFound)

	err = ledger.Undo("no-such-habit", types.Today())
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestLedgerRejectsFutureDay(t *testing.T) {
	ledger, habit := newTestLedger(t)
	tomorrow := types.Today().AddDays(1)

	err := ledger.RecordCompletion(habit.HabitID, tomorrow, "")
	assert.ErrorIs(t, err, ErrFutureDate)
	err = ledger.RecordMissed(habit.HabitID, tomorrow, "")
	assert.ErrorIs(t, err, ErrFutureDate)

	// The ledger and the projection must agree on every day: tomorrow
	// stays unrecorded in the ledger and future in the projection.
	status, err := ledger.Status(habit.HabitID, tomorrow)
	require.NoError(t, err)
	assert.Equal(t, types.StatusNoRecord, status)

	hist, err := ledger.History(habit.HabitID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusFuture, StatusAt(habit, hist, tomorrow, types.Today()))
}

func TestLedgerUndo(t *testing.T) {
	ledger, habit := newTestLedger(t)
	today := types.Today()

	require.NoError(t, ledger.RecordCompletion(habit.HabitID, today, ""))
	require.NoError(t, ledger.Undo(habit.HabitID, today))

	status, err := ledger.Status(habit.HabitID, today)
	require.NoError(t, err)
	assert.Equal(t, types.StatusNoRecord, status)

	// Undoing an empty day is a no-op.
	require.NoError(t, ledger.Undo(habit.HabitID, today))
}

func TestLedgerHistoryFeedsCalculators(t *testing.T) {
	ledger, habit := newTestLedger(t)
	today := types.Today()

	for i := 2; i >= 0; i-- {
		require.NoError(t, ledger.RecordCompletion(habit.HabitID, today.AddDays(-i), ""))
	}

	hist, err := ledger.History(habit.HabitID)
	require.NoError(t, err)
	assert.Equal(t, 3, CurrentStreak(habit, hist, today))
	assert.Equal(t, 3, LongestStreak(habit, hist, today))
}
