package shot

import (
	"context"
	"fmt"
	"time"

	"backend-shottracker/internal/calendar"
	"backend-shottracker/internal/court"
	"backend-shottracker/internal/db"
	"backend-shottracker/pkg/logger"
	"backend-shottracker/pkg/metrics"

	"github.com/jackc/pgx/v5"
)

// Observer is told about every record that was written.
type Observer func(ctx context.Context, rec Record)

type Service struct {
	db        db.Querier
	now       func() time.Time
	log       logger.Logger
	metrics   *metrics.Manager
	observers []Observer
}

type Option func(*Service)

func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides time.Now for "today" defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(db db.Querier, opts ...Option) *Service {
	s := &Service{db: db, now: time.Now, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the service's local calendar day.
func (s *Service) Today() calendar.Day {
	return calendar.Of(s.now())
}

const selectRecords = `
	SELECT id, user_id, date, zone_id, category, makes, attempts
	FROM shot_records`

func (s *Service) List(ctx context.Context, userID string) ([]Record, error) {
	rows, err := s.db.Query(ctx, selectRecords+`
		WHERE user_id=$1
		ORDER BY date, id
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (s *Service) ListByDate(ctx context.Context, userID string, day calendar.Day) ([]Record, error) {
	rows, err := s.db.Query(ctx, selectRecords+`
		WHERE user_id=$1 AND date=$2
		ORDER BY id
	`, userID, day.Time())
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// Save validates in and writes it as userID's record for its (date, zone),
// replacing whatever was there. A missing date means today.
func (s *Service) Save(ctx context.Context, userID string, in Input) (Record, error) {
	today := s.Today()
	rec, err := Build(userID, InputFor(in, today))
	if err != nil {
		return Record{}, err
	}
	if err := CheckNotFuture(rec.Date, today); err != nil {
		return Record{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO shot_records (user_id, date, zone_id, category, makes, attempts)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (user_id, date, zone_id)
		DO UPDATE SET category=EXCLUDED.category, makes=EXCLUDED.makes, attempts=EXCLUDED.attempts
		RETURNING id
	`, rec.UserID, rec.Date.Time(), rec.ZoneID, rec.Category.String(), rec.Makes, rec.Attempts)
	if err := row.Scan(&rec.ID); err != nil {
		s.metrics.ShotSaveFailed()
		s.log.Error(ctx, "save shot record", logger.String("user_id", userID), logger.String("zone_id", rec.ZoneID), logger.Error(err))
		return Record{}, err
	}

	s.metrics.ShotSaved(rec.Category.String())
	for _, o := range s.observers {
		o(ctx, rec)
	}
	return rec, nil
}

func collect(rows pgx.Rows) ([]Record, error) {
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanRecord(row pgx.Row) (Record, error) {
	var (
		r        Record
		date     time.Time
		category string
	)
	if err := row.Scan(&r.ID, &r.UserID, &date, &r.ZoneID, &category, &r.Makes, &r.Attempts); err != nil {
		return Record{}, err
	}
	c, err := court.ParseCategory(category)
	if err != nil {
		return Record{}, fmt.Errorf("record %d: %w", r.ID, err)
	}
	r.Date = calendar.Of(date)
	r.Category = c
	return r, nil
}
