package court

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(Zones())
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		zone, ok := Lookup(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "zone not found")
		}
		return c.JSON(zone)
	})
}
