package handlers

import (
	"errors"
	"log/slog"

	"fittrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

func statusFor(code string) int {
	switch code {
	case models.CodeValidation, models.CodeConflict:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeNotFound:
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// respondError writes err as {"message", "code", "errors"?}. Internal causes
// are logged and never sent to the client.
func respondError(c *fiber.Ctx, err error) error {
	appErr := models.AsAppError(err)
	if appErr.Code == models.CodeInternal {
		slog.ErrorContext(c.UserContext(), "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", appErr.Error()),
		)
	}

	body := fiber.Map{
		"message": appErr.Message,
		"code":    appErr.Code,
	}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	return c.Status(statusFor(appErr.Code)).JSON(body)
}

func invalidBody(c *fiber.Ctx, err error) error {
	slog.DebugContext(c.UserContext(), "invalid request body", slog.String("error", err.Error()))
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"code":    models.CodeValidation,
	})
}

// ErrorHandler is the app-wide fiber error handler. Routing errors keep
// their status; anything else goes through respondError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := models.CodeInternal
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			code = models.CodeNotFound
		case fiber.StatusBadRequest:
			code = models.CodeValidation
		case fiber.StatusUnauthorized:
			code = models.CodeUnauthorized
		}
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"message": fiberErr.Message,
			"code":    code,
		})
	}
	return respondError(c, err)
}
