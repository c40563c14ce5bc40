package stats

import (
	"errors"
	"fmt"

	"backend-shottracker/internal/calendar"
	"backend-shottracker/internal/shot"
)

var ErrUnknownPeriod = errors.New("period must be one of 1month, 1year, all")

// Period selects how far back the trend and heatmap views look.
type Period int

const (
	PeriodMonth Period = iota + 1
	PeriodYear
	PeriodAll
)

// ParsePeriod accepts 1month, 1year and all. An empty string means 1month.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "", "1month":
		return PeriodMonth, nil
	case "1year":
		return PeriodYear, nil
	case "all":
		return PeriodAll, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

func (p Period) String() string {
	switch p {
	case PeriodMonth:
		return "1month"
	case PeriodYear:
		return "1year"
	case PeriodAll:
		return "all"
	}
	return fmt.Sprintf("Period(%d)", int(p))
}

// Days is the fixed window length, or 0 for PeriodAll.
func (p Period) Days() int {
	switch p {
	case PeriodMonth:
		return 30
	case PeriodYear:
		return 365
	}
	return 0
}

func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Period) UnmarshalText(b []byte) error {
	parsed, err := ParsePeriod(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// window returns the first day and length of the period ending today.
// PeriodAll starts at the earliest record on or before today.
func (p Period) window(records []shot.Record, today calendar.Day) (calendar.Day, int) {
	if n := p.Days(); n > 0 {
		return today.AddDays(-(n - 1)), n
	}
	start := today
	for _, r := range records {
		if r.Date.Before(start) {
			start = r.Date
		}
	}
	return start, start.DaysUntil(today) + 1
}

// FilterPeriod keeps the records dated inside the period ending today.
// Records dated after today are dropped for every period.
func FilterPeriod(records []shot.Record, p Period, today calendar.Day) []shot.Record {
	start, _ := p.window(records, today)
	out := make([]shot.Record, 0, len(records))
	for _, r := range records {
		if r.Date.Before(start) || r.Date.After(today) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// days lists n consecutive days from start and indexes them by date.
func days(start calendar.Day, n int) ([]calendar.Day, map[calendar.Day]int) {
	list := make([]calendar.Day, n)
	index := make(map[calendar.Day]int, n)
	for i := range list {
		d := start.AddDays(i)
		list[i] = d
		index[d] = i
	}
	return list, index
}
