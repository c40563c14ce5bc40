package stats

import (
	"backend-shottracker/internal/calendar"
	"backend-shottracker/internal/shot"
)

// RecentDays is the length of the recent-sessions series.
const RecentDays = 30

// DailyRecords returns the records logged on day, in store order.
func DailyRecords(records []shot.Record, day calendar.Day) []shot.Record {
	out := make([]shot.Record, 0)
	for _, r := range records {
		if r.Date == day {
			out = append(out, r)
		}
	}
	return out
}

// FindRecord returns the record for zoneID on day, if one was logged.
func FindRecord(records []shot.Record, day calendar.Day, zoneID string) (shot.Record, bool) {
	for _, r := range records {
		if r.Date == day && r.ZoneID == zoneID {
			return r, true
		}
	}
	return shot.Record{}, false
}

type DailyPoint struct {
	Date     calendar.Day `json:"date"`
	Makes    int          `json:"makes"`
	Attempts int          `json:"attempts"`
	Pct      *int         `json:"pct"`
}

type RecentSummary struct {
	TotalAttempts int  `json:"totalAttempts"`
	TotalMakes    int  `json:"totalMakes"`
	AvgPct        *int `json:"avgPct"`
	SessionCount  int  `json:"sessionCount"`
}

type Recent struct {
	Days    []DailyPoint  `json:"days"`
	Summary RecentSummary `json:"summary"`
}

// RecentDaily sums every zone per day over the RecentDays days ending today,
// oldest first. Days without attempts stay in the series with a nil Pct.
func RecentDaily(records []shot.Record, today calendar.Day) Recent {
	list, index := days(today.AddDays(-(RecentDays - 1)), RecentDays)

	tallies := make([]Tally, len(list))
	for _, r := range records {
		if i, ok := index[r.Date]; ok {
			tallies[i].Add(r.Makes, r.Attempts)
		}
	}

	out := Recent{Days: make([]DailyPoint, len(list))}
	for i, d := range list {
		t := tallies[i]
		out.Days[i] = DailyPoint{Date: d, Makes: t.Makes, Attempts: t.Attempts, Pct: t.Pct()}
		if t.Attempts > 0 {
			out.Summary.TotalAttempts += t.Attempts
			out.Summary.TotalMakes += t.Makes
			out.Summary.SessionCount++
		}
	}
	out.Summary.AvgPct = Percent(out.Summary.TotalMakes, out.Summary.TotalAttempts)
	return out
}
