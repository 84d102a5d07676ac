package handlers

import (
	"fittrack/internal/middleware"
	"fittrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles onboarding and profile edits.
type ProfileHandler struct {
	service *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// RegisterRoutes registers the profile routes on an authenticated router.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Post("/setup", h.HandleSetup)
	profileRoutes.Put("/", h.HandleUpdate)
}

func (h *ProfileHandler) HandleSetup(c *fiber.Ctx) error {
	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	user, err := h.service.Setup(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user.Public())
}

func (h *ProfileHandler) HandleUpdate(c *fiber.Ctx) error {
	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	user, err := h.service.Update(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user.Public())
}
