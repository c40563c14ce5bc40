package stats

import (
	"errors"
	"fmt"

	"backend-shottracker/internal/calendar"
	"backend-shottracker/internal/court"
	"backend-shottracker/internal/shot"
)

var ErrUnknownLine = errors.New("line must be one of Total, Paint, Mid, 3PT")

// TrendBucket is one day of the category trend. A nil value means that
// category had no attempts that day, which is different from 0%.
type TrendBucket struct {
	Date       calendar.Day `json:"date"`
	Total      *int         `json:"Total"`
	Paint      *int         `json:"Paint"`
	Mid        *int         `json:"Mid"`
	ThreePoint *int         `json:"3PT"`
}

// CategoryTrend returns one bucket per day of the period ending today,
// oldest first, with no gaps.
func CategoryTrend(records []shot.Record, p Period, today calendar.Day) []TrendBucket {
	start, n := p.window(records, today)
	list, index := days(start, n)

	type dayTally struct {
		total, paint, mid, three Tally
	}
	tallies := make([]dayTally, n)
	for _, r := range records {
		i, ok := index[r.Date]
		if !ok {
			continue
		}
		t := &tallies[i]
		t.total.Add(r.Makes, r.Attempts)
		switch r.Category {
		case court.Paint:
			t.paint.Add(r.Makes, r.Attempts)
		case court.Mid:
			t.mid.Add(r.Makes, r.Attempts)
		case court.ThreePoint:
			t.three.Add(r.Makes, r.Attempts)
		}
	}

	out := make([]TrendBucket, n)
	for i, d := range list {
		t := tallies[i]
		out[i] = TrendBucket{
			Date:       d,
			Total:      t.total.Pct(),
			Paint:      t.paint.Pct(),
			Mid:        t.mid.Pct(),
			ThreePoint: t.three.Pct(),
		}
	}
	return out
}

// Line picks one series out of a trend: the total or a single category.
type Line int

const (
	LineTotal Line = iota
	LinePaint
	LineMid
	LineThreePoint
)

func ParseLine(s string) (Line, error) {
	switch s {
	case "", "Total":
		return LineTotal, nil
	case "Paint":
		return LinePaint, nil
	case "Mid":
		return LineMid, nil
	case "3PT":
		return LineThreePoint, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLine, s)
}

func LineFor(c court.Category) Line {
	switch c {
	case court.Paint:
		return LinePaint
	case court.Mid:
		return LineMid
	case court.ThreePoint:
		return LineThreePoint
	}
	return LineTotal
}

func (l Line) String() string {
	switch l {
	case LinePaint:
		return "Paint"
	case LineMid:
		return "Mid"
	case LineThreePoint:
		return "3PT"
	}
	return "Total"
}

func (b TrendBucket) Value(l Line) *int {
	switch l {
	case LinePaint:
		return b.Paint
	case LineMid:
		return b.Mid
	case LineThreePoint:
		return b.ThreePoint
	}
	return b.Total
}

type SeriesPoint struct {
	Date calendar.Day `json:"date"`
	Pct  *int         `json:"pct"`
}

// Series projects buckets onto a single line.
func Series(buckets []TrendBucket, l Line) []SeriesPoint {
	out := make([]SeriesPoint, len(buckets))
	for i, b := range buckets {
		out[i] = SeriesPoint{Date: b.Date, Pct: b.Value(l)}
	}
	return out
}
