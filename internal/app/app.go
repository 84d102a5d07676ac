// Package app assembles the HTTP application from its dependencies.
package app

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"fittrack/internal/config"
	"fittrack/internal/handlers"
	"fittrack/internal/middleware"
	"fittrack/internal/observability"
	"fittrack/internal/repositories"
	"fittrack/internal/services"
	"fittrack/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

const accessLogFormat = `{"time":"${time}","request_id":"${locals:requestid}","status":${status},"latency":"${latency}","method":"${method}","path":"${path}"}` + "\n"

// Dependencies are the external resources the app is built on. Only DB is
// required; nil optional fields switch the matching feature off.
type Dependencies struct {
	DB *gorm.DB
	// SessionStorage backs sessions; nil keeps them in memory.
	SessionStorage fiber.Storage
	Events         services.EventPublisher
	Photos         services.PhotoUploader
	Metrics        *observability.Metrics
	// AccessLog receives one line per request; nil means stdout.
	AccessLog io.Writer
}

// New builds the fiber app with middleware and all routes registered.
func New(cfg *config.Config, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "FitTrack API",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())

	accessLog := deps.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}
	app.Use(logger.New(logger.Config{
		Format:     accessLogFormat,
		TimeFormat: time.RFC3339,
		Output:     accessLog,
	}))

	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
	}
	app.Use(helmet.New())

	origins := cfg.AllowedOrigins()
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Get("/health", healthHandler(deps.DB))
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	api := app.Group("/api")
	if cfg.RateLimit > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return c.Method() == fiber.MethodOptions
			},
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"message": "Too many requests, please try again later",
				})
			},
		}))
	}
	registerRoutes(api, cfg, deps)
	return app
}

func registerRoutes(api fiber.Router, cfg *config.Config, deps Dependencies) {
	// Repositories
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	exerciseRepo := repositories.NewGORMExerciseRepository(deps.DB)
	programRepo := repositories.NewGORMProgramRepository(deps.DB)
	sessionRepo := repositories.NewGORMSessionRepository(deps.DB)
	foodRepo := repositories.NewGORMFoodRepository(deps.DB)
	mealRepo := repositories.NewGORMMealRepository(deps.DB)
	goalRepo := repositories.NewGORMGoalRepository(deps.DB)
	progressRepo := repositories.NewGORMProgressRepository(deps.DB)
	owners := repositories.NewGORMOwnershipRepository(deps.DB)

	// Services
	authService := services.NewAuthService(userRepo, deps.Events, deps.Metrics)
	profileService := services.NewProfileService(userRepo)
	workoutService := services.NewWorkoutService(exerciseRepo, programRepo, sessionRepo, owners, deps.Events)
	mealService := services.NewMealService(foodRepo, mealRepo, deps.Metrics)
	nutritionService := services.NewNutritionService(mealRepo, goalRepo, deps.Events, deps.Metrics)
	progressService := services.NewProgressService(progressRepo, deps.Photos)

	sessions := session.NewManager(session.Options{Secure: cfg.IsProduction()}, deps.SessionStorage)
	authRequired := middleware.AuthRequired(sessions)

	// Public auth routes, /auth/me guards itself
	handlers.NewAuthHandler(authService, sessions).RegisterRoutes(api, authRequired)

	protected := api.Group("", authRequired)
	handlers.NewProfileHandler(profileService).RegisterRoutes(protected)
	handlers.NewWorkoutHandler(workoutService, owners).RegisterRoutes(protected)
	handlers.NewMealHandler(mealService, owners).RegisterRoutes(protected)
	handlers.NewNutritionHandler(nutritionService).RegisterRoutes(protected)
	handlers.NewProgressHandler(progressService).RegisterRoutes(protected)
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.StatusOK
		body := fiber.Map{
			"status":   "healthy",
			"database": "up",
			"time":     time.Now().Format(time.RFC3339),
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status = fiber.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["database"] = "down"
		}
		return c.Status(status).JSON(body)
	}
}
