package shot

import (
	"backend-shottracker/internal/calendar"
	"backend-shottracker/internal/court"
)

// Record is one day's makes and attempts from one zone. A user has at most
// one record per (date, zone).
type Record struct {
	ID       int64          `json:"id,omitempty"`
	UserID   string         `json:"userId,omitempty"`
	Date     calendar.Day   `json:"date"`
	ZoneID   string         `json:"zoneId"`
	Category court.Category `json:"category"`
	Makes    int            `json:"makes"`
	Attempts int            `json:"attempts"`
}

// SameSlot reports whether r and o occupy the same (date, zone) slot.
func (r Record) SameSlot(o Record) bool {
	return r.Date == o.Date && r.ZoneID == o.ZoneID
}

// Input is the payload accepted when logging a zone. Category is not
// accepted from callers; it is derived from the zone.
type Input struct {
	Date     calendar.Day `json:"date"`
	ZoneID   string       `json:"zoneId"`
	Makes    int          `json:"makes"`
	Attempts int          `json:"attempts"`
}
