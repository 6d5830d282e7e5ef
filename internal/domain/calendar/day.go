// Package calendar provides the normalized calendar-date type used for all
// day-based filtering and comparison in the scheduling core.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/okodanev/deskhub/internal/domain/errs"
)

// DayLayout is the canonical textual form of a Day.
const DayLayout = "2006-01-02"

// acceptedLayouts are the textual forms CoerceDay understands. Widgets and
// external drag sources are not consistent about what they serialize, so the
// normalizer accepts anything reasonably date-shaped.
var acceptedLayouts = []string{
	DayLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Day is a calendar date stripped of its time-of-day component.
// Two Day values compare equal iff their year, month, and day match.
// The zero Day is not a valid date; use IsZero to detect it.
type Day struct {
	t time.Time
}

// DayOf normalizes t to the calendar day it falls on, in t's location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.Local)}
}

// NewDay constructs a Day from explicit calendar fields.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// Today returns the current wall-clock day.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses a textual date into a Day. Any time-of-day component in
// the input is discarded.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Day{}, fmt.Errorf("%w: empty date", errs.ErrInvalidInput)
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t), nil
		}
	}
	return Day{}, fmt.Errorf("%w: unrecognized date %q", errs.ErrInvalidInput, s)
}

// CoerceDay normalizes any date-like value to a Day. Store read paths call
// this defensively: some callers hand over raw strings, others time.Time
// values, others already-normalized Days.
func CoerceDay(v any) (Day, error) {
	switch d := v.(type) {
	case Day:
		return Normalize(d), nil
	case *Day:
		if d == nil {
			return Day{}, fmt.Errorf("%w: nil date", errs.ErrInvalidInput)
		}
		return Normalize(*d), nil
	case time.Time:
		return DayOf(d), nil
	case string:
		return ParseDay(d)
	default:
		return Day{}, fmt.Errorf("%w: cannot interpret %T as a date", errs.ErrInvalidInput, v)
	}
}

// Normalize re-normalizes d. Normalizing an already-normalized Day is the
// identity, so Normalize(Normalize(d)) == Normalize(d).
func Normalize(d Day) Day {
	return DayOf(d.t)
}

// SameDay reports whether a and b fall on the same calendar day. Both sides
// are normalized first, so argument order and input representation (string,
// time.Time, Day) do not matter. Values that cannot be interpreted as dates
// never match anything.
func SameDay(a, b any) bool {
	da, err := CoerceDay(a)
	if err != nil {
		return false
	}
	db, err := CoerceDay(b)
	if err != nil {
		return false
	}
	return da == db
}

// Year returns the calendar year.
func (d Day) Year() int { return d.t.Year() }

// Month returns the calendar month.
func (d Day) Month() time.Month { return d.t.Month() }

// DayOfMonth returns the day of the month.
func (d Day) DayOfMonth() int { return d.t.Day() }

// Time returns the midnight instant backing this Day.
func (d Day) Time() time.Time { return d.t }

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool { return d.t.IsZero() }

// Equal reports whether d and other are the same calendar day.
func (d Day) Equal(other Day) bool {
	return Normalize(d) == Normalize(other)
}

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.t.AddDate(0, 0, n))
}

// String formats d as YYYY-MM-DD.
func (d Day) String() string {
	return d.t.Format(DayLayout)
}

// MarshalText implements encoding.TextMarshaler, so Day works as both a
// JSON value and a JSON map key.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
