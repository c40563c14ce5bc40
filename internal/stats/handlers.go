package stats

import (
	"context"
	"time"

	"backend-shottracker/internal/auth"
	"backend-shottracker/internal/cache"
	"backend-shottracker/internal/calendar"
	"backend-shottracker/internal/court"
	"backend-shottracker/internal/shot"
	"backend-shottracker/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// RecordSource loads every record a user owns.
type RecordSource interface {
	List(ctx context.Context, userID string) ([]shot.Record, error)
	Today() calendar.Day
}

type GoalSource interface {
	Goal(ctx context.Context, userID string) (*int, error)
}

// Views serves the aggregated views over HTTP. Cache and Metrics may be nil.
type Views struct {
	Records RecordSource
	Goals   GoalSource
	Cache   *cache.Stats
	Metrics *metrics.Manager
}

type TrendView struct {
	Period  Period        `json:"period"`
	Buckets []TrendBucket `json:"buckets"`
}

type SeriesView struct {
	Period Period        `json:"period"`
	Line   string        `json:"line"`
	Points []SeriesPoint `json:"points"`
}

type HeatmapView struct {
	Period  Period     `json:"period"`
	GoalPct *int       `json:"goalPct"`
	Zones   []ZoneStat `json:"zones"`
}

func RegisterRoutes(r fiber.Router, v Views, authMiddleware fiber.Handler) {
	r.Get("/recent", authMiddleware, func(c *fiber.Ctx) error {
		userID := auth.UserID(c)
		today := v.Records.Today()
		out, err := load(c.Context(), v, userID, "recent:"+today.String(), "recent", func(records []shot.Record) (Recent, error) {
			return RecentDaily(records, today), nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(out)
	})

	r.Get("/trend", authMiddleware, func(c *fiber.Ctx) error {
		p, err := ParsePeriod(c.Query("period"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		raw := c.Query("line")
		line, err := ParseLine(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		userID := auth.UserID(c)
		today := v.Records.Today()
		key := "trend:" + p.String() + ":" + today.String()
		buckets, err := load(c.Context(), v, userID, key, "trend", func(records []shot.Record) ([]TrendBucket, error) {
			return CategoryTrend(records, p, today), nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if raw != "" {
			return c.JSON(SeriesView{Period: p, Line: line.String(), Points: Series(buckets, line)})
		}
		return c.JSON(TrendView{Period: p, Buckets: buckets})
	})

	r.Get("/heatmap", authMiddleware, func(c *fiber.Ctx) error {
		p, err := ParsePeriod(c.Query("period"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		userID := auth.UserID(c)
		today := v.Records.Today()
		key := "heatmap:" + p.String() + ":" + today.String()
		out, err := load(c.Context(), v, userID, key, "heatmap", func(records []shot.Record) (HeatmapView, error) {
			goal, err := v.Goals.Goal(c.Context(), userID)
			if err != nil {
				return HeatmapView{}, err
			}
			return HeatmapView{
				Period:  p,
				GoalPct: goal,
				Zones:   Heatmap(FilterPeriod(records, p, today), court.Zones(), goal),
			}, nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(out)
	})
}

// load serves key from the cache or lists the user's records and runs build.
func load[T any](ctx context.Context, v Views, userID, key, view string, build func([]shot.Record) (T, error)) (T, error) {
	out, hit, err := cache.Load(ctx, v.Cache, userID, key, func() (T, error) {
		var zero T
		records, err := v.Records.List(ctx, userID)
		if err != nil {
			return zero, err
		}
		start := time.Now()
		out, err := build(records)
		v.Metrics.ObserveAggregate(view, time.Since(start))
		return out, err
	})
	if err != nil {
		return out, err
	}
	v.Metrics.StatsServed(view, hit)
	return out, nil
}
