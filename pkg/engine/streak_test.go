package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/cadence/pkg/types"
)

// historyOf builds a History from day-string to status pairs.
func historyOf(habitID string, entries map[string]string) History {
	records := make([]*types.CompletionRecord, 0, len(entries))
	for day, status := range entries {
		records = append(records, &types.CompletionRecord{
			HabitID: habitID,
			Date:    types.MustParseDay(day),
			Status:  status,
		})
	}
	return NewHistory(records)
}

func TestCurrentStreakPendingTodayDoesNotBreak(t *testing.T) {
	h := testHabit(types.PatternEveryday)
	hist := historyOf("h1", map[string]string{
		"2024-01-01": types.StatusCompleted,
		"2024-01-02": types.StatusCompleted,
		"2024-01-03": types.StatusCompleted,
	})

	// Nothing recorded on the 4th yet: the walk starts at the 3rd.
	assert.Equal(t, 3, CurrentStreak(h, hist, types.MustParseDay("2024-01-04")))
}

func TestCurrentStreakCountsToday(t *testing.T) {
	h := testHabit(types.PatternEveryday)
	hist := historyOf("h1", map[string]string{
		"2024-01-01": types.StatusCompleted,
		"2024-01-02": types.StatusCompleted,
	})

	assert.Equal(t, 2, CurrentStreak(h, hist, types.MustParseDay("2024-01-02")))
}

func TestCurrentStreakBrokenByMiss(t *testing.T) {
	h := testHabit(types.PatternEveryday)
	hist := historyOf("h1", map[string]string{
		"2024-01-01": types.StatusCompleted,
		"2024-01-02": types.StatusMissed,
		"2024-01-03": types.StatusCompleted,
	})

	assert.Equal(t, 1, CurrentStreak(h, hist, types.MustParseDay("2024-01-03")))
	assert.Equal(t, 0, CurrentStreak(h, hist, types.MustParseDay("2024-01-02")))
}

func TestCurrentStreakSkipsUnscheduledDays(t *testing.T) {
	// Weekdays only: Friday to Monday is adjacent, the weekend is not a gap.
	h := testHabit(types.PatternWeekdays)
	hist := historyOf("h1", map[string]string{
		"2024-01-04": types.StatusCompleted, // Thu
		"2024-01-05": types.StatusCompleted, // Fri
		"2024-01-08": types.StatusCompleted, // Mon
	})

	assert.Equal(t, 3, CurrentStreak(h, hist, types.MustParseDay("2024-01-08")))
	// Evaluated on the Saturday: unscheduled asOf, walk starts Friday.
	assert.Equal(t, 2, CurrentStreak(h, hist, types.MustParseDay("2024-01-06")))
}

func TestCurrentStreakEmptyHistory(t *testing.T) {
	h := testHabit(types.PatternEveryday)
	assert.Equal(t, 0, CurrentStreak(h, History{}, types.MustParseDay("2024-01-10")))
	assert.Equal(t, 0, CurrentStreak(h, History{}, types.MustParseDay("2024-01-01")), "asOf on start date with no prior days")
}

func TestLongestStreakCustomDays(t *testing.T) {
	// Mon/Wed/Fri habit: three consecutive occurrences completed, the
	// fourth missed.
	h := testHabit(types.PatternCustomDays)
	h.CustomDays = []int{1, 3, 5}
	hist := historyOf("h1", map[string]string{
		"2024-01-01": types.StatusCompleted, // Mon
		"2024-01-03": types.StatusCompleted, // Wed
		"2024-01-05": types.StatusCompleted, // Fri
		"2024-01-08": types.StatusMissed,    // Mon
	})

	fifth := types.MustParseDay("2024-01-10") // Wed, fifth occurrence
	assert.Equal(t, 3, LongestStreak(h, hist, fifth))
	assert.Equal(t, 0, CurrentStreak(h, hist, fifth))
}

func TestLongestStreakPicksMiddleRun(t *testing.T) {
	h := testHabit(types.PatternEveryday)
	hist := historyOf("h1", map[string]string{
		"2024-01-01": types.StatusCompleted,
		"2024-01-03": types.StatusCompleted,
		"2024-01-04": types.StatusCompleted,
		"2024-01-05": types.StatusCompleted,
		"2024-01-07": types.StatusCompleted,
	})

	assert.Equal(t, 3, LongestStreak(h, hist, types.MustParseDay("2024-01-08")))
}

func TestLongestStreakClampsToEndDate(t *testing.T) {
	h := testHabit(types.PatternEveryday)
	end := types.MustParseDay("2024-01-03")
	h.EndDate = &end
	hist := historyOf("h1", map[string]string{
		"2024-01-01": types.StatusCompleted,
		"2024-01-02": types.StatusCompleted,
		"2024-01-03": types.StatusCompleted,
	})

	assert.Equal(t, 3, LongestStreak(h, hist, types.MustParseDay("2024-06-01")))
}

func TestCompletionRate(t *testing.T) {
	h := testHabit(types.PatternWeekdays)
	hist := historyOf("h1", map[string]string{
		"2024-01-01": types.StatusCompleted,
		"2024-01-02": types.StatusCompleted,
		"2024-01-03": types.StatusMissed,
	})

	// Five scheduled weekdays Jan 1-5; weekend days never count.
	rate := CompletionRate(h, hist, types.MustParseDay("2024-01-07"))
	assert.InDelta(t, 0.4, rate, 1e-9)
}

func TestCompletionRateNothingScheduled(t *testing.T) {
	// Weekend habit evaluated during its first week, before any weekend.
	h := testHabit(types.PatternWeekends)
	assert.Zero(t, CompletionRate(h, History{}, types.MustParseDay("2024-01-05")))
}

func TestMissedCount(t *testing.T) {
	h := testHabit(types.PatternEveryday)
	hist := historyOf("h1", map[string]string{
		"2024-01-01": types.StatusCompleted,
		"2024-01-02": types.StatusMissed,
		// Jan 3 has no record: still missed.
		"2024-01-04": types.StatusCompleted,
	})

	assert.Equal(t, 2, MissedCount(h, hist, types.MustParseDay("2024-01-04")))
}
