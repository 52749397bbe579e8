package todo

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"

	// timestampLayout is the ISO-8601 form used for "date". The offset
	// keeps the repeated hour of a daylight-saving change unambiguous.
	timestampLayout = "2006-01-02T15:04:05.000000-07:00"

	// dueLayout is the form used for "due_date": midnight, no offset.
	dueLayout = "2006-01-02T15:04:05"
)

// Date is a calendar date with no time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for y-m-d, normalizing out-of-range values the
// way time.Date does (e.g. April 31 becomes May 1).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the date component of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the local calendar date of now.
func Today(now time.Time) Date {
	return DateOf(now.In(time.Local))
}

// ParseDate parses a due date. It accepts YYYY-MM-DD or any timestamp
// ParseTimestamp accepts; only the date component is kept.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) == len(dateLayout) {
		if t, err := time.Parse(dateLayout, s); err == nil {
			return DateOf(t), nil
		}
	} else if len(s) > len(dateLayout) {
		if t, err := ParseTimestamp(s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, &ValidationError{
		Path: "due_date",
		Err:  fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s),
	}
}

// ParseDueInput parses a due date typed by a user. Besides the ParseDate
// forms it accepts today, tomorrow and yesterday relative to today.
func ParseDueInput(s string, today Date) (Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	return ParseDate(s)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Format formats d with a time.Format layout.
func (d Date) Format(layout string) string {
	return d.Time(time.UTC).Format(layout)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// ParseTimestamp parses an ISO-8601 timestamp. Values with an offset are
// parsed as RFC 3339; values without one are read as local time. A bare
// date is local midnight.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	// A fractional second after the seconds field is accepted even though
	// the layout omits it.
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02 15:04", dateLayout} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func formatTimestamp(t time.Time) string {
	return t.In(time.Local).Format(timestampLayout)
}

func formatDue(d Date) string {
	return d.Time(time.UTC).Format(dueLayout)
}
