// main.go
package main

import (
	"log"
	"os"
	"time"

	"readquest/database"
	"readquest/gamification"
	"readquest/handlers"
	"readquest/handlers/admin"
	"readquest/middleware"
	"readquest/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()

	// The achievement catalog is baked into the binary and validated at
	// startup; rows are materialized lazily on first use.
	catalog := gamification.DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		log.Fatalf("Invalid achievement catalog: %v", err)
	}
	handlers.InitProgressionHandlers(catalog)

	// Initialize cleanup service
	services.InitCleanupService()
	defer func() {
		if cleanupService := services.GetCleanupService(); cleanupService != nil {
			cleanupService.Stop()
		}
	}()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.FiberRateLimitMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.FiberAuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/register", handlers.Register)

	// Public catalog and stats routes
	api.Get("/catalog", handlers.GetCatalog)
	api.Get("/stats/readers", handlers.GetOnlineReadersCount)

	// User routes (require authentication)
	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", handlers.GetCurrentUser)
	userGroup.Put("/me", handlers.UpdateCurrentUser)

	// Reading routes
	readingGroup := api.Group("/reading")
	readingGroup.Use(middleware.AuthMiddleware)
	readingGroup.Post("/sessions", handlers.RecordReadingSession)

	// Flashcard routes
	flashcardGroup := api.Group("/flashcards")
	flashcardGroup.Use(middleware.AuthMiddleware)
	flashcardGroup.Post("/", handlers.CreateFlashcard)
	flashcardGroup.Post("/review", handlers.ReviewFlashcard)

	// Assessment routes
	assessmentGroup := api.Group("/assessments")
	assessmentGroup.Use(middleware.AuthMiddleware)
	assessmentGroup.Post("/submit", handlers.SubmitAssessment)

	// Forum routes
	forumGroup := api.Group("/forum")
	forumGroup.Use(middleware.AuthMiddleware)
	forumGroup.Post("/posts", handlers.CreatePost)
	forumGroup.Post("/posts/:id/replies", handlers.CreateReply)
	forumGroup.Put("/posts/:id/replies/:replyId/best", handlers.MarkBestAnswer)

	// Achievement routes
	achievementGroup := api.Group("/achievements")
	achievementGroup.Use(middleware.AuthMiddleware)
	achievementGroup.Get("/", handlers.GetAchievements)
	achievementGroup.Post("/check", handlers.CheckAchievements)

	// Progression routes
	progressionGroup := api.Group("/progression")
	progressionGroup.Use(middleware.AuthMiddleware)
	progressionGroup.Get("/", handlers.GetProgression)

	// Leaderboard routes
	leaderboardGroup := api.Group("/leaderboard")
	leaderboardGroup.Get("/", handlers.GetLeaderboard)
	leaderboardGroup.Get("/user/:id", handlers.GetUserRank)
	leaderboardGroup.Use("/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	leaderboardGroup.Get("/live", handlers.LeaderboardLive())

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware)
	adminGroup.Get("/users", admin.GetUsers)
	adminGroup.Post("/users/:id/ban", admin.BanUser)
	adminGroup.Get("/achievements", admin.GetAchievements)
	adminGroup.Put("/achievements/:code/active", admin.SetAchievementActive)
	adminGroup.Post("/cleanup/manual", admin.ManualCleanup)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 ReadQuest server listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func validateEnvironment() {
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("Warning: JWT_SECRET not set, using insecure default")
	}
	if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
		log.Println("Warning: no database configuration found, using localhost defaults")
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
