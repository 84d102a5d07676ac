package handlers

import (
	"fittrack/internal/middleware"
	"fittrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NutritionHandler serves nutrition goals and daily summaries.
type NutritionHandler struct {
	service *services.NutritionService
}

// NewNutritionHandler creates a new NutritionHandler.
func NewNutritionHandler(service *services.NutritionService) *NutritionHandler {
	return &NutritionHandler{service: service}
}

// RegisterRoutes registers the nutrition routes on an authenticated router.
func (h *NutritionHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/nutrition-goals", h.HandleGetGoal)
	router.Post("/nutrition-goals", h.HandleSetGoal)
	router.Get("/nutrition/daily", h.HandleDailySummary)
}

// HandleGetGoal always answers with a goal, falling back to the default one.
func (h *NutritionHandler) HandleGetGoal(c *fiber.Ctx) error {
	goal, err := h.service.ActiveGoal(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(goal)
}

func (h *NutritionHandler) HandleSetGoal(c *fiber.Ctx) error {
	var input services.GoalInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	goal, err := h.service.SetGoal(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (h *NutritionHandler) HandleDailySummary(c *fiber.Ctx) error {
	summary, err := h.service.DailySummary(c.UserContext(), middleware.UserID(c), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
