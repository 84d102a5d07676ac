package handlers

import (
	"fittrack/internal/middleware"
	"fittrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProgressHandler serves body measurements and progress photos.
type ProgressHandler struct {
	service *services.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(service *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// RegisterRoutes registers the progress routes on an authenticated router.
func (h *ProgressHandler) RegisterRoutes(router fiber.Router) {
	measurementRoutes := router.Group("/body-measurements")
	measurementRoutes.Get("/recent", h.HandleRecentMeasurements)
	measurementRoutes.Get("/range", h.HandleMeasurementRange)
	measurementRoutes.Post("/", h.HandleCreateMeasurement)

	photoRoutes := router.Group("/progress-photos")
	photoRoutes.Get("/", h.HandleListPhotos)
	photoRoutes.Post("/", h.HandleCreatePhoto)
}

func (h *ProgressHandler) HandleRecentMeasurements(c *fiber.Ctx) error {
	measurements, err := h.service.RecentMeasurements(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(measurements)
}

func (h *ProgressHandler) HandleMeasurementRange(c *fiber.Ctx) error {
	measurements, err := h.service.MeasurementsInRange(c.UserContext(), middleware.UserID(c), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(measurements)
}

func (h *ProgressHandler) HandleCreateMeasurement(c *fiber.Ctx) error {
	var input services.MeasurementInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	measurement, err := h.service.CreateMeasurement(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(measurement)
}

func (h *ProgressHandler) HandleListPhotos(c *fiber.Ctx) error {
	photos, err := h.service.ListPhotos(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(photos)
}

// HandleCreatePhoto accepts either a photoUrl or a base64 photoData upload.
func (h *ProgressHandler) HandleCreatePhoto(c *fiber.Ctx) error {
	var input services.PhotoInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	photo, err := h.service.CreatePhoto(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(photo)
}
