package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ABeGood/klim-fit/internal/config"
	"github.com/ABeGood/klim-fit/internal/handler"
	"github.com/ABeGood/klim-fit/internal/middleware"
	"github.com/ABeGood/klim-fit/internal/repository"
	"github.com/ABeGood/klim-fit/internal/session"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	// Initialize repositories
	redisRepo := repository.NewRedisCacheRepository(deps.RedisClient)
	userRepo := repository.NewMongoUserRepository(deps.MongoDB)
	workoutRepo := repository.NewMongoWorkoutRepository(deps.MongoDB)
	setRepo := repository.NewMongoExerciseSetRepository(deps.MongoDB)
	exerciseRepo := repository.NewCachedExerciseRepository(
		repository.NewMongoExerciseRepository(deps.MongoDB),
		redisRepo,
	)

	// Editing sessions
	sessionManager := session.NewManager(exerciseRepo, userRepo, workoutRepo, setRepo)

	// Initialize handlers
	catalogHandler := handler.NewCatalogHandler(exerciseRepo)
	clientHandler := handler.NewClientHandler(userRepo, workoutRepo, setRepo)
	sessionHandler := handler.NewSessionHandler(sessionManager)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "KlimFit Coach API",
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "klim-fit",
		})
	})

	// API v1 routes
	v1 := app.Group("/v1")

	// ===========================================
	// EXERCISE LIBRARY - public read, coach write
	// ===========================================
	exercises := v1.Group("/exercises")
	exercises.Get("/", catalogHandler.ListExercises)
	exercises.Get("/:id", catalogHandler.GetExercise)
	exercises.Post("/", middleware.VerifyCoachToken(deps.Config.JWT.Secret), catalogHandler.CreateExercise)
	exercises.Put("/:id", middleware.VerifyCoachToken(deps.Config.JWT.Secret), catalogHandler.UpdateExercise)
	exercises.Delete("/:id", middleware.VerifyCoachToken(deps.Config.JWT.Secret), catalogHandler.DeleteExercise)

	// ===========================================
	// CLIENTS & WORKOUT PLANS - /v1/users, /v1/workouts
	// ===========================================
	users := v1.Group("/users")
	users.Use(middleware.VerifyCoachToken(deps.Config.JWT.Secret))
	users.Get("/", clientHandler.ListUsers)
	users.Post("/", clientHandler.CreateUser)
	users.Get("/:id", clientHandler.GetUser)
	users.Put("/:id", clientHandler.UpdateUser)
	users.Get("/:id/workouts", clientHandler.ListWorkouts)
	users.Post("/:id/workouts", clientHandler.CreateWorkout)

	workouts := v1.Group("/workouts")
	workouts.Use(middleware.VerifyCoachToken(deps.Config.JWT.Secret))
	workouts.Get("/:id", clientHandler.GetWorkout)
	workouts.Delete("/:id", clientHandler.DeleteWorkout)
	workouts.Get("/:id/sets", clientHandler.ListWorkoutSets)

	// ===========================================
	// COACH EDITING SESSION - /v1/coach/session
	// ===========================================
	sess := v1.Group("/coach/session")
	sess.Use(middleware.VerifyCoachToken(deps.Config.JWT.Secret))

	sess.Get("/", sessionHandler.GetSnapshot)
	sess.Delete("/", sessionHandler.EndSession)
	sess.Get("/catalog", sessionHandler.ListCatalog)

	sess.Post("/select-user", sessionHandler.SelectUser)
	sess.Post("/select-workout", sessionHandler.SelectWorkout)
	sess.Post("/deselect-workout", sessionHandler.DeselectWorkout)

	sess.Post("/drag", sessionHandler.DragExercise)
	sess.Post("/drag/cancel", sessionHandler.CancelDrag)
	sess.Post("/drop", sessionHandler.Drop)

	sess.Post("/sets/:id/open", sessionHandler.OpenSet)
	sess.Post("/sets/:id/close", sessionHandler.CloseSet)
	sess.Post("/sets/:id", sessionHandler.SubmitSet)
	sess.Post("/sets/:id/delete", sessionHandler.RequestRemoveSet)
	sess.Post("/sets/:id/delete/confirm", sessionHandler.ConfirmRemoveSet)
	sess.Post("/sets/:id/delete/cancel", sessionHandler.CancelRemoveSet)

	sess.Post("/notifications/:id/dismiss", sessionHandler.DismissNotification)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("Error: %v", err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
