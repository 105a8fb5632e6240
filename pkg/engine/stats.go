package engine

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/cadence/pkg/types"
)

// Trend classifications for bucket comparisons.
const (
	TrendUp      = "up"
	TrendDown    = "down"
	TrendNeutral = "neutral"
)

// Bucket is a calendar-aligned aggregate of scheduled-vs-completed counts.
type Bucket struct {
	Label                 string    `json:"label"`
	Start                 types.Day `json:"start"`
	End                   types.Day `json:"end"`
	ScheduledCount        int       `json:"scheduled_count"`
	CompletedCount        int       `json:"completed_count"`
	CompletionRatePercent float64   `json:"completion_rate_percent"`
}

// WeeklyBuckets partitions the last weeksBack calendar weeks, the week
// containing asOf included, into buckets ordered oldest to newest.
// weekStart is the ISO weekday ordinal the week begins on (1=Monday).
// Scheduled and completed counts only cover days up to asOf; days later in
// the current week cannot have happened yet.
//
// Labels carry the ISO week of the span's fourth day, so a bucket anchored
// on a non-Monday weekStart is labeled with the ISO week the majority of
// its days fall in. For Monday-anchored buckets this is the span's own ISO
// week.
func WeeklyBuckets(h types.Habit, hist History, weeksBack int, asOf types.Day, weekStart int) []Bucket {
	if weeksBack <= 0 {
		return []Bucket{}
	}

	buckets := make([]Bucket, 0, weeksBack)
	currentStart := asOf.StartOfWeek(weekStart)
	for i := weeksBack - 1; i >= 0; i-- {
		start := currentStart.AddDays(-7 * i)
		end := start.AddDays(6)
		year, week := start.AddDays(3).Time().ISOWeek()
		b := fillBucket(h, hist, start, end, asOf)
		b.Label = fmt.Sprintf("%04d-W%02d", year, week)
		buckets = append(buckets, b)
	}
	return buckets
}

// MonthlyBuckets partitions the last monthsBack calendar months, the month
// containing asOf included, into buckets ordered oldest to newest.
func MonthlyBuckets(h types.Habit, hist History, monthsBack int, asOf types.Day) []Bucket {
	if monthsBack <= 0 {
		return []Bucket{}
	}

	buckets := make([]Bucket, 0, monthsBack)
	currentStart := asOf.StartOfMonth()
	for i := monthsBack - 1; i >= 0; i-- {
		start := currentStart.Time().AddDate(0, -i, 0)
		startDay := types.DayOf(start)
		b := fillBucket(h, hist, startDay, startDay.EndOfMonth(), asOf)
		b.Label = start.Format("2006-01")
		buckets = append(buckets, b)
	}
	return buckets
}

// fillBucket counts scheduled and completed days in [start, end], clamped
// to asOf, and computes the completion rate percentage.
func fillBucket(h types.Habit, hist History, start, end, asOf types.Day) Bucket {
	b := Bucket{Start: start, End: end}

	countEnd := end
	if asOf.Before(countEnd) {
		countEnd = asOf
	}
	for d := start; !d.After(countEnd); d = d.AddDays(1) {
		if !ScheduledOn(h, d, asOf) {
			continue
		}
		b.ScheduledCount++
		if hist.StatusOn(d) == types.StatusCompleted {
			b.CompletedCount++
		}
	}
	if b.ScheduledCount > 0 {
		b.CompletionRatePercent = float64(b.CompletedCount) / float64(b.ScheduledCount) * 100
	}
	return b
}

// Trend compares the two most recent buckets and classifies the movement
// of the completion rate. threshold is the minimum change, in percentage
// points, that counts as movement; callers supply their own threshold
// since different metrics tolerate different noise. Fewer than two buckets
// is always TrendNeutral.
func Trend(buckets []Bucket, threshold float64) string {
	if len(buckets) < 2 {
		return TrendNeutral
	}
	prev := buckets[len(buckets)-2]
	last := buckets[len(buckets)-1]
	delta := last.CompletionRatePercent - prev.CompletionRatePercent
	switch {
	case delta > threshold:
		return TrendUp
	case delta < -threshold:
		return TrendDown
	default:
		return TrendNeutral
	}
}

// HabitHistory pairs a habit with its ledger snapshot for cross-habit
// aggregation.
type HabitHistory struct {
	Habit   types.Habit
	History History
}

// CategoryStats is one per-category row of a dashboard rollup.
type CategoryStats struct {
	Category       string `json:"category"`
	ScheduledToday int    `json:"scheduled_today"`
	CompletedToday int    `json:"completed_today"`
}

// Rollup is a cross-habit dashboard summary for a single day.
type Rollup struct {
	Date            types.Day       `json:"date"`
	HabitCount      int             `json:"habit_count"`
	ScheduledToday  int             `json:"scheduled_today"`
	CompletedToday  int             `json:"completed_today"`
	BestStreak      int             `json:"best_streak"`
	BestStreakHabit string          `json:"best_streak_habit"`
	AverageStreak   float64         `json:"average_streak"`
	Categories      []CategoryStats `json:"categories"`
}

// DashboardRollup aggregates today's scheduled/completed totals, a
// per-category breakdown, and max/average current streak across a habit
// set. Categories are ordered by name for stable output.
func DashboardRollup(entries []HabitHistory, asOf types.Day) Rollup {
	r := Rollup{Date: asOf, HabitCount: len(entries)}
	byCategory := make(map[string]*CategoryStats)
	streakSum := 0

	for _, e := range entries {
		streak := CurrentStreak(e.Habit, e.History, asOf)
		streakSum += streak
		if streak > r.BestStreak {
			r.BestStreak = streak
			r.BestStreakHabit = e.Habit.Name
		}

		if !ScheduledOn(e.Habit, asOf, asOf) {
			continue
		}
		r.ScheduledToday++
		completed := e.History.StatusOn(asOf) == types.StatusCompleted
		if completed {
			r.CompletedToday++
		}

		cs, ok := byCategory[e.Habit.Category]
		if !ok {
			cs = &CategoryStats{Category: e.Habit.Category}
			byCategory[e.Habit.Category] = cs
		}
		cs.ScheduledToday++
		if completed {
			cs.CompletedToday++
		}
	}

	if len(entries) > 0 {
		r.AverageStreak = float64(streakSum) / float64(len(entries))
	}

	r.Categories = make([]CategoryStats, 0, len(byCategory))
	for _, cs := range byCategory {
		r.Categories = append(r.Categories, *cs)
	}
	sort.Slice(r.Categories, func(i, j int) bool {
		return r.Categories[i].Category < r.Categories[j].Category
	})
	return r
}
