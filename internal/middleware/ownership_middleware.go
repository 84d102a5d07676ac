package middleware

import (
	"log/slog"

	"fittrack/internal/models"
	"fittrack/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// RequireOwnership loads the resource named by the :id route parameter and
// lets the request through only when it belongs to the session user. Foreign
// and missing resources both answer 404 with notFound as message.
// Must run after AuthRequired.
func RequireOwnership(owners repositories.OwnershipRepository, kind repositories.ResourceKind, notFound string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": notFound,
				"code":    models.CodeNotFound,
			})
		}

		owned, err := owners.Owns(c.UserContext(), kind, uint(id), UserID(c))
		if err != nil {
			slog.ErrorContext(c.UserContext(), "ownership check failed",
				slog.String("kind", string(kind)),
				slog.Int("id", id),
				slog.String("error", err.Error()),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
				"code":    models.CodeInternal,
			})
		}
		if !owned {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": notFound,
				"code":    models.CodeNotFound,
			})
		}

		c.Locals(localResourceID, uint(id))
		return c.Next()
	}
}

// ResourceID returns the id verified by RequireOwnership.
func ResourceID(c *fiber.Ctx) uint {
	id, _ := c.Locals(localResourceID).(uint)
	return id
}
