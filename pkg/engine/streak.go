package engine

import "github.com/mesh-intelligence/cadence/pkg/types"

// CurrentStreak returns the number of consecutive scheduled days with a
// completed record, walking backward from asOf. Unscheduled days are
// skipped, not counted as gaps. A pending asOf — scheduled but with no
// record yet — does not break the streak; the walk simply starts at the
// most recent scheduled day before it. The walk stops at the first
// scheduled day that is missed or unrecorded, or when it passes StartDate.
func CurrentStreak(h types.Habit, hist History, asOf types.Day) int {
	day := asOf
	if !ScheduledOn(h, day, asOf) || hist.StatusOn(day) == types.StatusNoRecord {
		prev, ok := PrevScheduled(h, day, asOf)
		if !ok {
			return 0
		}
		day = prev
	}

	streak := 0
	for {
		if hist.StatusOn(day) != types.StatusCompleted {
			return streak
		}
		streak++
		prev, ok := PrevScheduled(h, day, asOf)
		if !ok {
			return streak
		}
		day = prev
	}
}

// LongestStreak returns the longest run of consecutive completed scheduled
// days between StartDate and min(asOf, EndDate), using the same adjacency
// rule as CurrentStreak.
func LongestStreak(h types.Habit, hist History, asOf types.Day) int {
	end := asOf
	if h.EndDate != nil && h.EndDate.Before(end) {
		end = *h.EndDate
	}

	longest, run := 0, 0
	for d := h.StartDate; !d.After(end); d = d.AddDays(1) {
		if !ScheduledOn(h, d, asOf) {
			continue
		}
		switch hist.StatusOn(d) {
		case types.StatusCompleted:
			run++
			if run > longest {
				longest = run
			}
		default:
			run = 0
		}
	}
	return longest
}

// CompletionRate returns completed/scheduled over [StartDate, asOf], both
// counts restricted to scheduled days. Returns 0 when nothing was ever
// scheduled.
func CompletionRate(h types.Habit, hist History, asOf types.Day) float64 {
	scheduled, completed := scheduledAndCompleted(h, hist, asOf)
	if scheduled == 0 {
		return 0
	}
	return float64(completed) / float64(scheduled)
}

// MissedCount returns the number of scheduled days in [StartDate, asOf]
// without a completed record. Both explicit missed records and scheduled
// days with no record count as missed.
func MissedCount(h types.Habit, hist History, asOf types.Day) int {
	scheduled, completed := scheduledAndCompleted(h, hist, asOf)
	return scheduled - completed
}

// scheduledAndCompleted counts scheduled days and completed scheduled days
// over [StartDate, asOf].
func scheduledAndCompleted(h types.Habit, hist History, asOf types.Day) (int, int) {
	end := asOf
	if h.EndDate != nil && h.EndDate.Before(end) {
		end = *h.EndDate
	}

	scheduled, completed := 0, 0
	for d := h.StartDate; !d.After(end); d = d.AddDays(1) {
		if !ScheduledOn(h, d, asOf) {
			continue
		}
		scheduled++
		if hist.StatusOn(d) == types.StatusCompleted {
			completed++
		}
	}
	return scheduled, completed
}
