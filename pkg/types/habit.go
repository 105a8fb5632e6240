package types

import (
	"errors"
	"time"
)

// Recurrence patterns. The set is closed; every pattern-dependent decision
// in the engine goes through a single exhaustive switch on these values.
const (
	PatternEveryday      = "everyday"
	PatternWeekdays      = "weekdays"
	PatternWeekends      = "weekends"
	PatternWeekly        = "weekly"
	PatternCustomDays    = "custom_days"
	PatternEveryOtherDay = "every_other_day"
)

// validPatterns is the set of recognized recurrence pattern values.
var validPatterns = map[string]bool{
	PatternEveryday:      true,
	PatternWeekdays:      true,
	PatternWeekends:      true,
	PatternWeekly:        true,
	PatternCustomDays:    true,
	PatternEveryOtherDay: true,
}

// StandardPatterns lists all recurrence patterns for enumeration.
var StandardPatterns = []string{
	PatternEveryday,
	PatternWeekdays,
	PatternWeekends,
	PatternWeekly,
	PatternCustomDays,
	PatternEveryOtherDay,
}

// Habit validation errors.
var (
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidPattern   = errors.New("invalid recurrence pattern")
	ErrEmptyCustomDays  = errors.New("custom_days pattern requires at least one weekday")
	ErrInvalidWeekday   = errors.New("weekday ordinal must be between 1 and 7")
	ErrInvalidDateRange = errors.New("end date precedes start date")
	ErrMissingStartDate = errors.New("start date is required")
)

// Habit is a user-defined recurring habit. The engine treats habits as
// read-only input; ownership of the entity lives with the habit store.
type Habit struct {
	HabitID    string     // UUID v7, generated on creation.
	Name       string     // Human-readable name (required, non-empty).
	Category   string     // Free-form grouping label (optional).
	Pattern    string     // One of the Pattern constants.
	CustomDays []int      // ISO weekday ordinals 1-7; used only by custom_days.
	StartDate  Day        // First day the habit can be scheduled.
	EndDate    *Day       // Last day the habit can be scheduled; nil means open-ended.
	Active     bool       // Archived habits stop being scheduled going forward.
	CreatedAt  time.Time  // Timestamp of creation.
	UpdatedAt  time.Time  // Timestamp of last modification.
}

// Validate checks that the habit is well-formed: known pattern, non-empty
// name, a start date, ordered date range, and for custom_days a non-empty
// set of valid weekday ordinals.
func (h *Habit) Validate() error {
	if h.Name == "" {
		return ErrInvalidName
	}
	if !validPatterns[h.Pattern] {
		return ErrInvalidPattern
	}
	if h.StartDate.IsZero() {
		return ErrMissingStartDate
	}
	if h.EndDate != nil && h.EndDate.Before(h.StartDate) {
		return ErrInvalidDateRange
	}
	if h.Pattern == PatternCustomDays {
		if len(h.CustomDays) == 0 {
			return ErrEmptyCustomDays
		}
		for _, wd := range h.CustomDays {
			if wd < 1 || wd > 7 {
				return ErrInvalidWeekday
			}
		}
	}
	return nil
}

// Archive deactivates the habit. Archived habits keep their historical
// records and derived stats but are never scheduled going forward.
// Idempotent.
func (h *Habit) Archive() {
	h.Active = false
	h.UpdatedAt = time.Now()
}

// OnCustomDay reports whether the given ISO weekday ordinal is in the
// habit's custom day set.
func (h *Habit) OnCustomDay(weekday int) bool {
	for _, wd := range h.CustomDays {
		if wd == weekday {
			return true
		}
	}
	return false
}
