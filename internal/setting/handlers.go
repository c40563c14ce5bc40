package setting

import (
	"errors"

	"backend-shottracker/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		goal, err := svc.Goal(c.Context(), auth.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(Settings{GoalPct: goal})
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Settings
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		goal, err := svc.SetGoal(c.Context(), auth.UserID(c), req.GoalPct)
		if err != nil {
			if errors.Is(err, ErrGoalOutOfRange) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(Settings{GoalPct: goal})
	})
}
