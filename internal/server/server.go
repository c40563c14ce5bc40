package server

import (
	"context"
	"errors"
	"strings"

	"backend-shottracker/internal/auth"
	"backend-shottracker/internal/cache"
	"backend-shottracker/internal/config"
	"backend-shottracker/internal/court"
	"backend-shottracker/internal/db"
	"backend-shottracker/internal/setting"
	"backend-shottracker/internal/shot"
	"backend-shottracker/internal/stats"
	"backend-shottracker/internal/stream"
	applog "backend-shottracker/pkg/logger"
	"backend-shottracker/pkg/metrics"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App     *fiber.App
	Cfg     config.Config
	DB      db.Querier
	Redis   *redis.Client
	Stream  *stream.Hub
	Cache   *cache.Stats
	Metrics *metrics.Manager
}

func NewServer(cfg config.Config, q db.Querier, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "shottracker",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	s := &Server{
		App:     app,
		Cfg:     cfg,
		DB:      q,
		Redis:   redisClient,
		Stream:  stream.NewHub(redisClient),
		Cache:   cache.NewStats(redisClient, cfg.StatsCacheTTL),
		Metrics: metrics.NewManager(),
	}

	registerRoutes(s)
	return s
}

// Close releases what NewServer started. The app itself is shut down by the caller.
func (s *Server) Close() error {
	return s.Stream.Close()
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", adaptor.HTTPHandler(s.Metrics.Handler()))

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	log := applog.Named("server")

	shotSvc := shot.NewService(s.DB,
		shot.WithMetrics(s.Metrics),
		shot.WithLogger(applog.Named("shot")),
		shot.WithObserver(func(ctx context.Context, rec shot.Record) {
			if err := s.Cache.Invalidate(ctx, rec.UserID); err != nil {
				log.Warn(ctx, "invalidate stats cache", applog.String("user_id", rec.UserID), applog.Error(err))
			}
			s.Stream.Publish(ctx, rec.UserID, stream.ShotSaved(rec))
		}),
	)
	settingSvc := setting.NewService(s.DB,
		setting.WithMetrics(s.Metrics),
		setting.WithObserver(func(ctx context.Context, userID string, goal *int) {
			if err := s.Cache.Invalidate(ctx, userID); err != nil {
				log.Warn(ctx, "invalidate stats cache", applog.String("user_id", userID), applog.Error(err))
			}
			s.Stream.Publish(ctx, userID, stream.GoalChanged(goal))
		}),
	)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))

	api := s.App.Group("/api")
	court.RegisterRoutes(api.Group("/zones"))
	shot.RegisterRoutes(api.Group("/shots"), shotSvc, jwtMiddleware)
	setting.RegisterRoutes(api.Group("/settings"), settingSvc, jwtMiddleware)
	stats.RegisterRoutes(api.Group("/stats"), stats.Views{
		Records: shotSvc,
		Goals:   settingSvc,
		Cache:   s.Cache,
		Metrics: s.Metrics,
	}, jwtMiddleware)

	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, jwtMiddleware)
}

// errorHandler renders every error as {"error": message}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
