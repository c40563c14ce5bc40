// Package calendar holds the calendar-day key used to bucket shot records.
//
// A Day carries no clock or zone: two records belong to the same bucket
// exactly when their year, month and day match.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

const (
	layout        = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

var ErrInvalidDay = errors.New("day must be formatted YYYY-MM-DD")

// Day is a comparable calendar date.
type Day struct {
	year  int
	month time.Month
	day   int
}

// Of returns the calendar day of t in t's own location. Pass time.Now() for
// the local calendar.
func Of(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

// Today is the local calendar day.
func Today() Day {
	return Of(time.Now())
}

// New builds a Day, normalising out-of-range values the way time.Date does.
func New(year int, month time.Month, day int) Day {
	return Of(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (Day, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return Of(t), nil
}

// MustParse panics on malformed input. Fixtures only.
func MustParse(s string) Day {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Day) IsZero() bool { return d == Day{} }

func (d Day) Year() int         { return d.year }
func (d Day) Month() time.Month { return d.month }
func (d Day) DayOfMonth() int   { return d.day }

// Time is midnight UTC of the day, the form stored in DATE columns.
func (d Day) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// AddDays moves n calendar days, crossing month and year boundaries.
func (d Day) AddDays(n int) Day {
	return New(d.year, d.month, d.day+n)
}

func (d Day) Before(o Day) bool { return d.Compare(o) < 0 }
func (d Day) After(o Day) bool  { return d.Compare(o) > 0 }

// Compare returns -1, 0 or +1.
func (d Day) Compare(o Day) int {
	switch {
	case d.year != o.year:
		return cmp(d.year, o.year)
	case d.month != o.month:
		return cmp(int(d.month), int(o.month))
	default:
		return cmp(d.day, o.day)
	}
}

// DaysUntil counts calendar days from d to o; negative when o is earlier.
// Unix seconds are used so spans beyond a time.Duration stay exact.
func (d Day) DaysUntil(o Day) int {
	return int((o.Time().Unix() - d.Time().Unix()) / secondsPerDay)
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(layout)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
