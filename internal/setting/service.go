package setting

import (
	"context"
	"errors"

	"backend-shottracker/internal/db"
	"backend-shottracker/pkg/metrics"

	"github.com/jackc/pgx/v5"
)

// Observer is told when a user's goal changes.
type Observer func(ctx context.Context, userID string, goal *int)

type Service struct {
	db        db.Querier
	metrics   *metrics.Manager
	observers []Observer
}

type Option func(*Service)

func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) { s.metrics = m }
}

func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

func NewService(db db.Querier, opts ...Option) *Service {
	s := &Service{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Goal returns the user's goal, nil when none is set or no row exists.
func (s *Service) Goal(ctx context.Context, userID string) (*int, error) {
	row := s.db.QueryRow(ctx, `
		SELECT goal_pct FROM user_settings WHERE user_id=$1
	`, userID)
	var goal *int
	if err := row.Scan(&goal); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return goal, nil
}

// SetGoal stores goal (nil clears it) and returns the stored value.
func (s *Service) SetGoal(ctx context.Context, userID string, goal *int) (*int, error) {
	if err := ValidateGoal(goal); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO user_settings (user_id, goal_pct)
		VALUES ($1,$2)
		ON CONFLICT (user_id) DO UPDATE SET goal_pct=EXCLUDED.goal_pct
		RETURNING goal_pct
	`, userID, goal)
	var stored *int
	if err := row.Scan(&stored); err != nil {
		return nil, err
	}

	s.metrics.GoalUpdated()
	for _, o := range s.observers {
		o(ctx, userID, stored)
	}
	return stored, nil
}
