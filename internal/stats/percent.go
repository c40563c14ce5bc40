// Package stats turns shot records into the series and per-zone totals that
// the dashboard charts and the court heatmap render.
//
// Every function here is pure: it reads a snapshot of records and never
// mutates or fetches anything.
package stats

import "math/bits"

// Percent is makes/attempts as a whole percentage, rounded half up, or nil
// when there were no attempts. Tier boundaries compare these rounded values.
// Negative makes have no percentage either.
func Percent(makes, attempts int) *int {
	if attempts <= 0 || makes < 0 {
		return nil
	}
	p := 100*(makes/attempts) + roundedShare(makes%attempts, attempts)
	return &p
}

// roundedShare is 100*r/a rounded half up, for 0 <= r < a. The product is
// taken in 128 bits so it cannot overflow.
func roundedShare(r, a int) int {
	hi, lo := bits.Mul64(uint64(r), 200)
	lo, carry := bits.Add64(lo, uint64(a), 0)
	quo, _ := bits.Div64(hi+carry, lo, 2*uint64(a))
	return int(quo)
}

// Tally accumulates makes and attempts.
type Tally struct {
	Makes    int `json:"makes"`
	Attempts int `json:"attempts"`
}

func (t *Tally) Add(makes, attempts int) {
	t.Makes += makes
	t.Attempts += attempts
}

func (t Tally) Pct() *int {
	return Percent(t.Makes, t.Attempts)
}
