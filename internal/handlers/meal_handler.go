package handlers

import (
	"fittrack/internal/middleware"
	"fittrack/internal/repositories"
	"fittrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MealHandler serves the food catalog and logged meals.
type MealHandler struct {
	service *services.MealService
	owners  repositories.OwnershipRepository
}

// NewMealHandler creates a new MealHandler.
func NewMealHandler(service *services.MealService, owners repositories.OwnershipRepository) *MealHandler {
	return &MealHandler{service: service, owners: owners}
}

// RegisterRoutes registers the food and meal routes on an authenticated router.
func (h *MealHandler) RegisterRoutes(router fiber.Router) {
	foodRoutes := router.Group("/food-items")
	foodRoutes.Get("/", h.HandleListFoods)
	foodRoutes.Get("/search", h.HandleSearchFoods)
	foodRoutes.Get("/barcode/:barcode", h.HandleFoodByBarcode)
	foodRoutes.Post("/", h.HandleCreateFood)

	mealRoutes := router.Group("/meals")
	mealRoutes.Get("/by-date", h.HandleMealsByDate)
	mealRoutes.Get("/by-date-and-type", h.HandleMealsByDateAndType)
	mealRoutes.Post("/", h.HandleCreateMeal)
	mealRoutes.Post("/:id/items",
		middleware.RequireOwnership(h.owners, repositories.KindMeal, "Meal not found"),
		h.HandleAddMealItem,
	)
}

func (h *MealHandler) HandleListFoods(c *fiber.Ctx) error {
	foods, err := h.service.ListFoods(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(foods)
}

func (h *MealHandler) HandleSearchFoods(c *fiber.Ctx) error {
	foods, err := h.service.SearchFoods(c.UserContext(), middleware.UserID(c), c.Query("query"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(foods)
}

func (h *MealHandler) HandleFoodByBarcode(c *fiber.Ctx) error {
	food, err := h.service.FoodByBarcode(c.UserContext(), middleware.UserID(c), c.Params("barcode"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(food)
}

func (h *MealHandler) HandleCreateFood(c *fiber.Ctx) error {
	var input services.FoodInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	food, err := h.service.CreateFood(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(food)
}

func (h *MealHandler) HandleMealsByDate(c *fiber.Ctx) error {
	meals, err := h.service.MealsByDate(c.UserContext(), middleware.UserID(c), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(meals)
}

func (h *MealHandler) HandleMealsByDateAndType(c *fiber.Ctx) error {
	meals, err := h.service.MealsByDateAndType(c.UserContext(), middleware.UserID(c), c.Query("date"), c.Query("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(meals)
}

func (h *MealHandler) HandleCreateMeal(c *fiber.Ctx) error {
	var input services.MealInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	meal, err := h.service.CreateMeal(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(meal)
}

// HandleAddMealItem logs a food into an owned meal.
func (h *MealHandler) HandleAddMealItem(c *fiber.Ctx) error {
	var input services.MealItemInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	item, err := h.service.AddMealItem(c.UserContext(), middleware.UserID(c), middleware.ResourceID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}
