package engine

import "github.com/mesh-intelligence/cadence/pkg/types"

// DayStatus is one cell of a calendar projection.
type DayStatus struct {
	Date   types.Day `json:"date"`
	Status string    `json:"status"`
}

// Project returns the per-day status sequence for [rangeStart, rangeEnd],
// ordered by date. Status is one of StatusCompleted, StatusMissed,
// StatusNotScheduled, or StatusFuture.
//
// Days after asOf are always StatusFuture regardless of pattern — the
// future cannot have been completed. Days the pattern does not place the
// habit on, including everything before StartDate, are StatusNotScheduled.
// A scheduled past day with no record is StatusMissed.
func Project(h types.Habit, hist History, rangeStart, rangeEnd, asOf types.Day) []DayStatus {
	if rangeEnd.Before(rangeStart) {
		return []DayStatus{}
	}

	out := make([]DayStatus, 0, rangeEnd.DaysSince(rangeStart)+1)
	for d := rangeStart; !d.After(rangeEnd); d = d.AddDays(1) {
		out = append(out, DayStatus{Date: d, Status: statusOn(h, hist, d, asOf)})
	}
	return out
}

// StatusAt returns the projected status of a single day, identical to the
// corresponding entry of Project over a range containing it.
func StatusAt(h types.Habit, hist History, day, asOf types.Day) string {
	return statusOn(h, hist, day, asOf)
}

func statusOn(h types.Habit, hist History, day, asOf types.Day) string {
	if day.After(asOf) {
		return types.StatusFuture
	}
	if !ScheduledOn(h, day, asOf) {
		return types.StatusNotScheduled
	}
	switch hist.StatusOn(day) {
	case types.StatusCompleted:
		return types.StatusCompleted
	default:
		// Missed records and scheduled days nobody recorded render the
		// same way: the day was due and did not happen.
		return types.StatusMissed
	}
}
