// Package session drives one shooter's input and analysis screens against
// the remote API: it owns the record store, the selected date, zone and
// filters, and recomputes the aggregated views from the store on demand.
//
// A Session is meant to be driven from one goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"backend-shottracker/internal/calendar"
	"backend-shottracker/internal/court"
	"backend-shottracker/internal/setting"
	"backend-shottracker/internal/shot"
	"backend-shottracker/internal/stats"
	"backend-shottracker/internal/store"
	"backend-shottracker/pkg/logger"
)

var (
	ErrLoadFailed     = errors.New("load failed")
	ErrSaveFailed     = errors.New("save failed")
	ErrNoZoneSelected = errors.New("no zone selected")
)

// Default counts offered when a zone without a record is opened.
const (
	DefaultMakes    = 5
	DefaultAttempts = 10
)

// API is the remote collaborator. *client.Client implements it.
type API interface {
	ListShots(ctx context.Context) ([]shot.Record, error)
	SaveShot(ctx context.Context, in shot.Input) (shot.Record, error)
	Goal(ctx context.Context) (*int, error)
	SetGoal(ctx context.Context, goal *int) (*int, error)
}

type Tab int

const (
	TabInput Tab = iota
	TabAnalysis
)

func (t Tab) String() string {
	if t == TabAnalysis {
		return "analysis"
	}
	return "input"
}

// Selection is what the entry form shows for a zone on the selected date.
type Selection struct {
	Zone     court.Zone
	Existing *shot.Record
	Makes    int
	Attempts int
}

type Session struct {
	api   API
	store *store.Store
	log   logger.Logger
	now   func() time.Time
	rng   *rand.Rand

	demoFallback bool
	demo         bool
	loaded       bool
	nextDemoID   int64

	tab    Tab
	date   calendar.Day
	zone   *court.Zone
	period stats.Period
	line   stats.Line
	goal   *int
}

type Option func(*Session)

func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDemoFallback makes a failed Load seed generated records when nothing
// has been loaded yet, and routes later saves to the local store. Once real
// records have been loaded, failed reloads keep them.
func WithDemoFallback(seed uint64) Option {
	return func(s *Session) {
		s.demoFallback = true
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

func New(api API, opts ...Option) *Session {
	s := &Session{
		api:    api,
		store:  store.New(nil),
		log:    logger.Nop(),
		now:    time.Now,
		period: stats.PeriodMonth,
		line:   stats.LineTotal,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.date = s.Today()
	return s
}

func (s *Session) Today() calendar.Day { return calendar.Of(s.now()) }

func (s *Session) Tab() Tab                 { return s.tab }
func (s *Session) SetTab(t Tab)             { s.tab = t }
func (s *Session) Date() calendar.Day       { return s.date }
func (s *Session) SetDate(d calendar.Day)   { s.date = d }
func (s *Session) ShiftDate(days int)       { s.date = s.date.AddDays(days) }
func (s *Session) Period() stats.Period     { return s.period }
func (s *Session) SetPeriod(p stats.Period) { s.period = p }
func (s *Session) Line() stats.Line         { return s.line }
func (s *Session) SetLine(l stats.Line)     { s.line = l }
func (s *Session) Goal() *int               { return s.goal }
func (s *Session) Demo() bool               { return s.demo }
func (s *Session) Records() []shot.Record   { return s.store.Snapshot() }

// Load fetches records and the goal. A failed record fetch keeps the
// previous records. Only a session that never loaded switches to demo data,
// and only when demo fallback is enabled. A failed goal fetch keeps the
// previous goal.
func (s *Session) Load(ctx context.Context) error {
	records, err := s.api.ListShots(ctx)
	if err != nil {
		s.log.Warn(ctx, "load records", logger.Error(err))
		if !s.demoFallback || s.loaded {
			return fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
		if s.demo {
			return nil
		}
		demo := DemoRecords(s.Today(), s.rng)
		s.store.Replace(demo)
		s.nextDemoID = int64(len(demo))
		s.demo = true
		s.log.Info(ctx, "using demo records", logger.Int("records", len(demo)))
		return nil
	}

	s.store.Replace(records)
	s.demo = false
	s.loaded = true

	goal, err := s.api.Goal(ctx)
	if err != nil {
		s.log.Warn(ctx, "load goal", logger.Error(err))
		return nil
	}
	s.goal = goal
	return nil
}

// SelectZone opens the entry form for id on the selected date, pre-filled
// with the existing record if there is one.
func (s *Session) SelectZone(id string) (Selection, error) {
	z, ok := court.Lookup(id)
	if !ok {
		return Selection{}, fmt.Errorf("%w: %q", shot.ErrUnknownZone, id)
	}
	s.zone = &z

	sel := Selection{Zone: z, Makes: DefaultMakes, Attempts: DefaultAttempts}
	if r, ok := stats.FindRecord(s.store.Snapshot(), s.date, z.ID); ok {
		sel.Existing = &r
		sel.Makes = r.Makes
		sel.Attempts = r.Attempts
	}
	return sel, nil
}

func (s *Session) Selected() (court.Zone, bool) {
	if s.zone == nil {
		return court.Zone{}, false
	}
	return *s.zone, true
}

func (s *Session) ClearSelection() { s.zone = nil }

// Submit saves makes/attempts for the selected zone and date. On failure the
// store and the selection are left as they were so the caller can retry.
func (s *Session) Submit(ctx context.Context, makes, attempts int) (shot.Record, error) {
	if s.zone == nil {
		return shot.Record{}, ErrNoZoneSelected
	}
	in := shot.Input{Date: s.date, ZoneID: s.zone.ID, Makes: makes, Attempts: attempts}
	rec, err := shot.Build("", in)
	if err != nil {
		return shot.Record{}, err
	}
	if err := shot.CheckNotFuture(rec.Date, s.Today()); err != nil {
		return shot.Record{}, err
	}

	if s.demo {
		s.nextDemoID++
		rec.ID = s.nextDemoID
		rec.UserID = "demo"
	} else {
		saved, err := s.api.SaveShot(ctx, in)
		if err != nil {
			s.log.Error(ctx, "save record", logger.String("zone_id", in.ZoneID), logger.Error(err))
			return shot.Record{}, fmt.Errorf("%w: %w", ErrSaveFailed, err)
		}
		if rec, err = shot.Normalize(saved); err != nil {
			return shot.Record{}, fmt.Errorf("%w: %w", ErrSaveFailed, err)
		}
	}

	s.store.Upsert(rec)
	s.zone = nil
	return rec, nil
}

// SaveGoal stores goal (nil clears it). A failed save keeps the old goal.
func (s *Session) SaveGoal(ctx context.Context, goal *int) error {
	if err := setting.ValidateGoal(goal); err != nil {
		return err
	}
	if s.demo {
		s.goal = goal
		return nil
	}
	stored, err := s.api.SetGoal(ctx, goal)
	if err != nil {
		s.log.Error(ctx, "save goal", logger.Error(err))
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	s.goal = stored
	return nil
}

// Daily returns what was logged on the selected date.
func (s *Session) Daily() []shot.Record {
	return stats.DailyRecords(s.store.Snapshot(), s.date)
}

func (s *Session) Recent() stats.Recent {
	return stats.RecentDaily(s.store.Snapshot(), s.Today())
}

func (s *Session) Trend() []stats.TrendBucket {
	return stats.CategoryTrend(s.store.Snapshot(), s.period, s.Today())
}

// Series is the trend projected onto the selected line.
func (s *Session) Series() []stats.SeriesPoint {
	return stats.Series(s.Trend(), s.line)
}

func (s *Session) Heatmap() []stats.ZoneStat {
	records := stats.FilterPeriod(s.store.Snapshot(), s.period, s.Today())
	return stats.Heatmap(records, court.Zones(), s.goal)
}
