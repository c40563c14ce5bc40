// Package cache keeps computed stats views in Redis, keyed per user and
// invalidated as a whole whenever that user's data changes.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"backend-shottracker/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "stats:"

// Stats is a per-user view cache. A nil *Stats, or one built without a
// Redis client, never hits and never stores.
type Stats struct {
	rdb *redis.Client
	ttl time.Duration
	log logger.Logger
}

func NewStats(rdb *redis.Client, ttl time.Duration) *Stats {
	return &Stats{rdb: rdb, ttl: ttl, log: logger.Named("cache")}
}

func (s *Stats) enabled() bool {
	return s != nil && s.rdb != nil && s.ttl > 0
}

// Get decodes the cached view into dst and reports whether it was there.
func (s *Stats) Get(ctx context.Context, userID, view string, dst any) (bool, error) {
	if !s.enabled() {
		return false, nil
	}
	key, err := s.key(ctx, userID, view)
	if err != nil {
		return false, err
	}
	return s.getKey(ctx, key, dst)
}

func (s *Stats) Set(ctx context.Context, userID, view string, v any) error {
	if !s.enabled() {
		return nil
	}
	key, err := s.key(ctx, userID, view)
	if err != nil {
		return err
	}
	return s.setKey(ctx, key, v)
}

func (s *Stats) getKey(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Stats) setKey(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, raw, s.ttl).Err()
}

// Invalidate drops every cached view of userID by bumping its generation.
func (s *Stats) Invalidate(ctx context.Context, userID string) error {
	if !s.enabled() {
		return nil
	}
	return s.rdb.Incr(ctx, versionKey(userID)).Err()
}

// Load returns the cached view or computes and stores it. Cache failures are
// logged and fall through to compute. The result is stored under the
// generation read before computing, so an Invalidate that lands while
// compute runs leaves it unreachable.
func Load[T any](ctx context.Context, s *Stats, userID, view string, compute func() (T, error)) (T, bool, error) {
	if !s.enabled() {
		v, err := compute()
		return v, false, err
	}

	key, err := s.key(ctx, userID, view)
	if err != nil {
		s.log.Warn(ctx, "stats cache read", logger.String("view", view), logger.Error(err))
		v, err := compute()
		return v, false, err
	}
	var v T
	hit, err := s.getKey(ctx, key, &v)
	if err != nil {
		s.log.Warn(ctx, "stats cache read", logger.String("view", view), logger.Error(err))
	}
	if hit {
		return v, true, nil
	}

	v, err = compute()
	if err != nil {
		return v, false, err
	}
	if err := s.setKey(ctx, key, v); err != nil {
		s.log.Warn(ctx, "stats cache write", logger.String("view", view), logger.Error(err))
	}
	return v, false, nil
}

func (s *Stats) key(ctx context.Context, userID, view string) (string, error) {
	gen, err := s.rdb.Get(ctx, versionKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return keyPrefix + userID + ":" + strconv.FormatInt(gen, 10) + ":" + view, nil
}

func versionKey(userID string) string {
	return keyPrefix + userID + ":gen"
}
