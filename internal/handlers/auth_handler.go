package handlers

import (
	"log/slog"

	"fittrack/internal/middleware"
	"fittrack/internal/services"
	"fittrack/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login, logout and the current user.
type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// RegisterRoutes registers the authentication routes. Only /auth/me needs a session.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/me", authRequired, h.HandleMe)
}

// HandleRegister creates the user and logs them in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	user, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.sessions.Establish(c, user.ID, user.Username); err != nil {
		slog.ErrorContext(c.UserContext(), "failed to establish session", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// HandleLogin checks credentials and starts a new session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	user, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.sessions.Establish(c, user.ID, user.Username); err != nil {
		slog.ErrorContext(c.UserContext(), "failed to establish session", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create session",
		})
	}

	return c.JSON(fiber.Map{
		"id":              user.ID,
		"username":        user.Username,
		"email":           user.Email,
		"profileComplete": user.ProfileComplete(),
	})
}

func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.sessions.Destroy(c); err != nil {
		slog.ErrorContext(c.UserContext(), "failed to destroy session", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to logout",
		})
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// HandleMe returns the session user without the password hash.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.authService.CurrentUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user.Public())
}
