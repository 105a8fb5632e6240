package types

import (
	"fmt"
	"strconv"
	"time"
)

// DayLayout is the canonical string form of a Day.
const DayLayout = "2006-01-02"

// Day is a calendar day with no time-of-day component. The zero value is
// the zero Day. Internally a Day is a UTC-midnight time.Time, so two Days
// built from the same calendar date compare equal regardless of the
// location the source time carried.
type Day struct {
	t time.Time
}

// NewDay constructs a Day from year, month, and day-of-month.
func NewDay(year int, month time.Month, dayOfMonth int) Day {
	return Day{t: time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a time to its calendar day in the time's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return NewDay(y, m, d)
}

// Today returns the current calendar day in local time.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses a Day from the canonical YYYY-MM-DD form.
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return Day{}, fmt.Errorf("parsing day %q: %w", s, err)
	}
	return Day{t: t}, nil
}

// MustParseDay parses a Day and panics on malformed input. Test helper.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether the Day is the zero value.
func (d Day) IsZero() bool { return d.t.IsZero() }

// String returns the canonical YYYY-MM-DD form.
func (d Day) String() string { return d.t.Format(DayLayout) }

// Time returns the Day as a UTC-midnight time.Time.
func (d Day) Time() time.Time { return d.t }

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool { return d.t.Before(other.t) }

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool { return d.t.After(other.t) }

// Equal reports whether d and other are the same calendar day.
func (d Day) Equal(other Day) bool { return d.t.Equal(other.t) }

// AddDays returns the Day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// DaysSince returns the number of whole days from other to d.
// Negative when d is earlier than other.
func (d Day) DaysSince(other Day) int {
	return int(d.t.Sub(other.t) / (24 * time.Hour))
}

// Weekday returns the ISO weekday ordinal: 1=Monday through 7=Sunday.
func (d Day) Weekday() int {
	wd := int(d.t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// StartOfWeek returns the most recent day on or before d whose ISO weekday
// equals weekStart (1=Monday through 7=Sunday).
func (d Day) StartOfWeek(weekStart int) Day {
	offset := (d.Weekday() - weekStart + 7) % 7
	return d.AddDays(-offset)
}

// StartOfMonth returns the first day of d's calendar month.
func (d Day) StartOfMonth() Day {
	y, m, _ := d.t.Date()
	return NewDay(y, m, 1)
}

// EndOfMonth returns the last day of d's calendar month.
func (d Day) EndOfMonth() Day {
	return d.StartOfMonth().addMonths(1).AddDays(-1)
}

// addMonths shifts the Day by whole months, clamped to the first of the
// target month when called on a first-of-month Day.
func (d Day) addMonths(n int) Day {
	y, m, day := d.t.Date()
	return Day{t: time.Date(y, m+time.Month(n), day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON encodes the Day as a YYYY-MM-DD string.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON decodes the Day from a YYYY-MM-DD string.
func (d *Day) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("unquoting day: %w", err)
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
