package shot

import (
	"errors"

	"backend-shottracker/internal/auth"
	"backend-shottracker/internal/calendar"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		userID := auth.UserID(c)
		if raw := c.Query("date"); raw != "" {
			day, err := calendar.Parse(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			records, err := svc.ListByDate(c.Context(), userID, day)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			return c.JSON(records)
		}

		records, err := svc.List(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(records)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var in Input
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		rec, err := svc.Save(c.Context(), auth.UserID(c), in)
		if err != nil {
			return fiber.NewError(statusFor(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownZone),
		errors.Is(err, ErrNegativeCount),
		errors.Is(err, ErrMakesExceedAttempts),
		errors.Is(err, ErrMissingDate),
		errors.Is(err, ErrDateOutOfRange),
		errors.Is(err, ErrCountTooLarge):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
