package engine

import "github.com/mesh-intelligence/cadence/pkg/types"

// ScheduledOn reports whether the habit's recurrence pattern places it on
// day. Pure and total: callable for any day, past or future, so the same
// rule backs today's list, historical calendars, and statistics.
//
// The window check runs first: a day before StartDate or after EndDate is
// never scheduled. An inactive habit stays scheduled for days strictly
// before asOf — its history remains truthful — and is never scheduled on
// or after asOf.
//
// This switch is the single pattern dispatch site in the engine. Every
// caller that needs a scheduling decision goes through it.
func ScheduledOn(h types.Habit, day, asOf types.Day) bool {
	if day.Before(h.StartDate) {
		return false
	}
	if h.EndDate != nil && day.After(*h.EndDate) {
		return false
	}
	if !h.Active && !day.Before(asOf) {
		return false
	}

	switch h.Pattern {
	case types.PatternEveryday:
		return true
	case types.PatternWeekdays:
		return day.Weekday() <= 5
	case types.PatternWeekends:
		return day.Weekday() >= 6
	case types.PatternWeekly:
		return day.Weekday() == h.StartDate.Weekday()
	case types.PatternCustomDays:
		return h.OnCustomDay(day.Weekday())
	case types.PatternEveryOtherDay:
		// Parity is anchored to StartDate, not a fixed epoch: the start
		// day itself is always scheduled.
		return day.DaysSince(h.StartDate)%2 == 0
	default:
		return false
	}
}

// PrevScheduled returns the most recent scheduled day strictly before day,
// or false if none exists on or after StartDate.
func PrevScheduled(h types.Habit, day, asOf types.Day) (types.Day, bool) {
	for d := day.AddDays(-1); !d.Before(h.StartDate); d = d.AddDays(-1) {
		if ScheduledOn(h, d, asOf) {
			return d, true
		}
	}
	return types.Day{}, false
}

// NextScheduled returns the earliest scheduled day strictly after day, or
// false if none exists before the habit's end date. For open-ended habits
// the scan is bounded by the pattern's longest repeat interval.
func NextScheduled(h types.Habit, day, asOf types.Day) (types.Day, bool) {
	limit := day.AddDays(7 * 2)
	if h.EndDate != nil {
		limit = *h.EndDate
	}
	for d := day.AddDays(1); !d.After(limit); d = d.AddDays(1) {
		if ScheduledOn(h, d, asOf) {
			return d, true
		}
	}
	return types.Day{}, false
}

// ScheduledCount returns the number of scheduled days in [from, to],
// inclusive on both ends. Zero when the range is empty or inverted.
func ScheduledCount(h types.Habit, from, to, asOf types.Day) int {
	count := 0
	for d := from; !d.After(to); d = d.AddDays(1) {
		if ScheduledOn(h, d, asOf) {
			count++
		}
	}
	return count
}
