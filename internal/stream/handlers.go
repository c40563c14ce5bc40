package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts GET /ws. Browsers cannot set headers on a websocket
// handshake, so a token query parameter is accepted as the bearer credential.
func RegisterRoutes(r fiber.Router, hub *Hub, authMiddleware fiber.Handler) {
	r.Get("/ws", tokenFromQuery, authMiddleware, func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	}, websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals("user_id").(string)
		client := hub.Register(userID)

		done := make(chan struct{})
		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		// Closing Send ends the writer.
		hub.Unregister(client)
		<-done
	}))
}

func tokenFromQuery(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) == "" {
		if token := c.Query("token"); token != "" {
			c.Request().Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
	}
	return c.Next()
}
