package handlers

import (
	"fittrack/internal/middleware"
	"fittrack/internal/models"
	"fittrack/internal/repositories"
	"fittrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WorkoutHandler serves exercises, programs, days and workout sessions.
type WorkoutHandler struct {
	service *services.WorkoutService
	owners  repositories.OwnershipRepository
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(service *services.WorkoutService, owners repositories.OwnershipRepository) *WorkoutHandler {
	return &WorkoutHandler{service: service, owners: owners}
}

// RegisterRoutes registers the workout routes on an authenticated router.
// Program, day and session scoped routes are ownership checked.
func (h *WorkoutHandler) RegisterRoutes(router fiber.Router) {
	ownsProgram := middleware.RequireOwnership(h.owners, repositories.KindProgram, "Workout program not found")
	ownsDay := middleware.RequireOwnership(h.owners, repositories.KindDay, "Workout day not found")
	ownsSession := middleware.RequireOwnership(h.owners, repositories.KindSession, "Workout session not found")

	exerciseRoutes := router.Group("/exercises")
	exerciseRoutes.Get("/", h.HandleListExercises)
	exerciseRoutes.Post("/", h.HandleCreateExercise)
	exerciseRoutes.Get("/:id", h.HandleGetExercise)

	programRoutes := router.Group("/workout-programs")
	programRoutes.Get("/", h.HandleListPrograms)
	programRoutes.Post("/", h.HandleCreateProgram)
	programRoutes.Get("/:id/days", ownsProgram, h.HandleListDays)
	programRoutes.Post("/:id/days", ownsProgram, h.HandleCreateDay)

	dayRoutes := router.Group("/workout-days")
	dayRoutes.Get("/:id/exercises", ownsDay, h.HandleListDayExercises)
	dayRoutes.Post("/:id/exercises", ownsDay, h.HandleAddDayExercise)

	sessionRoutes := router.Group("/workout-sessions")
	sessionRoutes.Post("/", h.HandleCreateSession)
	sessionRoutes.Get("/recent", h.HandleRecentSessions)
	sessionRoutes.Patch("/:id", ownsSession, h.HandleUpdateSession)
	sessionRoutes.Post("/:id/sets", ownsSession, h.HandleLogSet)
}

func (h *WorkoutHandler) HandleListExercises(c *fiber.Ctx) error {
	exercises, err := h.service.ListExercises(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(exercises)
}

func (h *WorkoutHandler) HandleGetExercise(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondError(c, models.NewNotFoundError("Exercise not found"))
	}
	exercise, err := h.service.GetExercise(c.UserContext(), middleware.UserID(c), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(exercise)
}

func (h *WorkoutHandler) HandleCreateExercise(c *fiber.Ctx) error {
	var input services.ExerciseInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	exercise, err := h.service.CreateExercise(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exercise)
}

func (h *WorkoutHandler) HandleListPrograms(c *fiber.Ctx) error {
	programs, err := h.service.ListPrograms(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(programs)
}

func (h *WorkoutHandler) HandleCreateProgram(c *fiber.Ctx) error {
	var input services.ProgramInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	program, err := h.service.CreateProgram(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(program)
}

func (h *WorkoutHandler) HandleListDays(c *fiber.Ctx) error {
	days, err := h.service.ListDays(c.UserContext(), middleware.ResourceID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(days)
}

func (h *WorkoutHandler) HandleCreateDay(c *fiber.Ctx) error {
	var input services.DayInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	day, err := h.service.CreateDay(c.UserContext(), middleware.ResourceID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(day)
}

func (h *WorkoutHandler) HandleListDayExercises(c *fiber.Ctx) error {
	exercises, err := h.service.ListDayExercises(c.UserContext(), middleware.ResourceID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(exercises)
}

func (h *WorkoutHandler) HandleAddDayExercise(c *fiber.Ctx) error {
	var input services.DayExerciseInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	dayExercise, err := h.service.AddDayExercise(c.UserContext(), middleware.UserID(c), middleware.ResourceID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dayExercise)
}

func (h *WorkoutHandler) HandleCreateSession(c *fiber.Ctx) error {
	var input services.SessionInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	session, err := h.service.CreateSession(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *WorkoutHandler) HandleRecentSessions(c *fiber.Ctx) error {
	sessions, err := h.service.RecentSessions(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sessions)
}

func (h *WorkoutHandler) HandleUpdateSession(c *fiber.Ctx) error {
	var input services.SessionUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	session, err := h.service.UpdateSession(c.UserContext(), middleware.ResourceID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (h *WorkoutHandler) HandleLogSet(c *fiber.Ctx) error {
	var input services.SetLogInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	setLog, err := h.service.LogSet(c.UserContext(), middleware.UserID(c), middleware.ResourceID(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(setLog)
}
