package middleware

import (
	"errors"
	"log/slog"

	"fittrack/internal/models"
	"fittrack/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID     = "userId"
	localResourceID = "resourceId"
)

// AuthRequired rejects requests without an authenticated session and stores
// the session's user id for subsequent handlers.
func AuthRequired(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := sessions.UserID(c)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				slog.WarnContext(c.UserContext(), "session lookup failed", slog.String("error", err.Error()))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
				"code":    models.CodeUnauthorized,
			})
		}

		c.Locals(localUserID, userID)
		return c.Next()
	}
}

// UserID returns the id stored by AuthRequired, or 0 outside authenticated routes.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(localUserID).(uint)
	return id
}
