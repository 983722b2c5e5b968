package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade rejects requests to WebSocket endpoints that are not
// upgrade attempts, and carries the game and player identifiers across
// the upgrade into the connection's locals.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		playerID := c.Locals("playerID")
		if playerID == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		// The connection context differs from the upgrade context, so
		// stash what the handler will need.
		c.Locals("wsGameID", c.Params("gameId"))
		c.Locals("wsPlayerID", playerID)

		return c.Next()
	}
}
