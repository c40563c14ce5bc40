package stats

import (
	"fmt"

	"backend-shottracker/internal/court"
	"backend-shottracker/internal/shot"
)

// Tier is the color band a zone falls into on the heatmap.
type Tier int

const (
	TierNoData Tier = iota
	TierHot
	TierAboveGoal
	TierNearGoal
	TierWarm
	TierCool
	TierCold
)

func (t Tier) String() string {
	switch t {
	case TierNoData:
		return "no-data"
	case TierHot:
		return "hot"
	case TierAboveGoal:
		return "above-goal"
	case TierNearGoal:
		return "near-goal"
	case TierWarm:
		return "warm"
	case TierCool:
		return "cool"
	case TierCold:
		return "cold"
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// Color is the fill used by the court renderer.
func (t Tier) Color() string {
	switch t {
	case TierHot:
		return "#ef4444"
	case TierAboveGoal, TierWarm:
		return "#f97316"
	case TierNearGoal, TierCool:
		return "#eab308"
	case TierCold:
		return "#3b82f6"
	}
	return "#f3f4f6"
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	for c := TierNoData; c <= TierCold; c++ {
		if c.String() == string(b) {
			*t = c
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", b)
}

// Classify bands a rounded percentage. With a goal the bands are relative
// to it in steps of 10; without one they are fixed at 30/40/50.
func Classify(pct, attempts int, goal *int) Tier {
	if attempts == 0 {
		return TierNoData
	}
	if goal != nil {
		g := *goal
		switch {
		case pct >= g+10:
			return TierHot
		case pct >= g:
			return TierAboveGoal
		case pct >= g-10:
			return TierNearGoal
		default:
			return TierCold
		}
	}
	switch {
	case pct >= 50:
		return TierHot
	case pct >= 40:
		return TierWarm
	case pct >= 30:
		return TierCool
	default:
		return TierCold
	}
}

type ZoneStat struct {
	Zone     court.Zone `json:"zone"`
	Makes    int        `json:"makes"`
	Attempts int        `json:"attempts"`
	Pct      *int       `json:"pct"`
	Tier     Tier       `json:"tier"`
	Color    string     `json:"color"`
}

// Heatmap totals records per zone, in the order of zones, and classifies
// each zone against goal. Records for zones not in zones are ignored.
func Heatmap(records []shot.Record, zones []court.Zone, goal *int) []ZoneStat {
	index := make(map[string]int, len(zones))
	tallies := make([]Tally, len(zones))
	for i, z := range zones {
		index[z.ID] = i
	}
	for _, r := range records {
		if i, ok := index[r.ZoneID]; ok {
			tallies[i].Add(r.Makes, r.Attempts)
		}
	}

	out := make([]ZoneStat, len(zones))
	for i, z := range zones {
		t := tallies[i]
		pct := t.Pct()
		rounded := 0
		if pct != nil {
			rounded = *pct
		}
		tier := Classify(rounded, t.Attempts, goal)
		out[i] = ZoneStat{
			Zone:     z,
			Makes:    t.Makes,
			Attempts: t.Attempts,
			Pct:      pct,
			Tier:     tier,
			Color:    tier.Color(),
		}
	}
	return out
}
