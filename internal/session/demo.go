package session

import (
	"math/rand/v2"

	"backend-shottracker/internal/calendar"
	"backend-shottracker/internal/court"
	"backend-shottracker/internal/shot"
)

// DemoDays is how far back generated demo data reaches.
const DemoDays = 60

// baseRate is the typical make rate per category used for demo data.
var baseRate = map[court.Category]float64{
	court.Paint:      0.75,
	court.Mid:        0.55,
	court.ThreePoint: 0.38,
}

// DemoRecords generates a plausible history ending today. About 60% of days
// are practice days and each zone is worked on about 40% of those.
func DemoRecords(today calendar.Day, rng *rand.Rand) []shot.Record {
	var out []shot.Record
	id := int64(0)
	for i := 0; i < DemoDays; i++ {
		day := today.AddDays(-i)
		if rng.Float64() <= 0.4 {
			continue
		}
		for _, z := range court.Zones() {
			if rng.Float64() <= 0.6 {
				continue
			}
			attempts := rng.IntN(15) + 5
			rate := baseRate[z.Category] + rng.Float64()*0.3 - 0.15
			rate = min(1, max(0, rate))
			id++
			out = append(out, shot.Record{
				ID:       id,
				UserID:   "demo",
				Date:     day,
				ZoneID:   z.ID,
				Category: z.Category,
				Makes:    int(float64(attempts) * rate),
				Attempts: attempts,
			})
		}
	}
	return out
}
