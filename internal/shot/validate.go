package shot

import (
	"errors"
	"fmt"
	"math"
	"time"

	"backend-shottracker/internal/calendar"
	"backend-shottracker/internal/court"
)

var (
	ErrUnknownZone         = errors.New("unknown zone")
	ErrNegativeCount       = errors.New("makes and attempts must not be negative")
	ErrMakesExceedAttempts = errors.New("makes must not exceed attempts")
	ErrMissingDate         = errors.New("date required")
	ErrDateOutOfRange      = errors.New("date out of range")
	ErrCountTooLarge       = errors.New("attempts too large")
)

// MaxCount bounds makes and attempts to what an INTEGER column holds.
const MaxCount = math.MaxInt32

// EarliestDay is the oldest day a record can be logged for.
var EarliestDay = calendar.New(1900, time.January, 1)

// Build validates in and turns it into a Record owned by userID. The category
// always comes from the zone catalog.
func Build(userID string, in Input) (Record, error) {
	zone, ok := court.Lookup(in.ZoneID)
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownZone, in.ZoneID)
	}
	if in.Date.IsZero() {
		return Record{}, ErrMissingDate
	}
	if in.Date.Before(EarliestDay) {
		return Record{}, fmt.Errorf("%w: %s is before %s", ErrDateOutOfRange, in.Date, EarliestDay)
	}
	if in.Makes < 0 || in.Attempts < 0 {
		return Record{}, ErrNegativeCount
	}
	if in.Attempts > MaxCount {
		return Record{}, fmt.Errorf("%w: %d > %d", ErrCountTooLarge, in.Attempts, MaxCount)
	}
	if in.Makes > in.Attempts {
		return Record{}, fmt.Errorf("%w: %d > %d", ErrMakesExceedAttempts, in.Makes, in.Attempts)
	}
	return Record{
		UserID:   userID,
		Date:     in.Date,
		ZoneID:   zone.ID,
		Category: zone.Category,
		Makes:    in.Makes,
		Attempts: in.Attempts,
	}, nil
}

// Normalize re-derives the category of a record received from elsewhere and
// checks the same invariants as Build.
func Normalize(r Record) (Record, error) {
	built, err := Build(r.UserID, Input{Date: r.Date, ZoneID: r.ZoneID, Makes: r.Makes, Attempts: r.Attempts})
	if err != nil {
		return Record{}, err
	}
	built.ID = r.ID
	return built, nil
}

// CheckNotFuture rejects days after tomorrow. One day of slack covers a
// client whose time zone is ahead of the server's.
func CheckNotFuture(d, today calendar.Day) error {
	if latest := today.AddDays(1); d.After(latest) {
		return fmt.Errorf("%w: %s is after %s", ErrDateOutOfRange, d, latest)
	}
	return nil
}

// InputFor defaults a missing date to today.
func InputFor(in Input, today calendar.Day) Input {
	if in.Date.IsZero() {
		in.Date = today
	}
	return in
}
