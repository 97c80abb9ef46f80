package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/selinak/habit-tracker-api/internal/config"
	"github.com/selinak/habit-tracker-api/internal/database"
	"github.com/selinak/habit-tracker-api/internal/handlers"
	"github.com/selinak/habit-tracker-api/internal/middleware"
	"github.com/selinak/habit-tracker-api/internal/repository"
	"github.com/selinak/habit-tracker-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(db); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Seed sample data when requested
	if cfg.SeedDB {
		if err := database.Seed(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	completionRepo := repository.NewCompletionRepository(db)

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo)
	habitService := services.NewHabitService(habitRepo, completionRepo)
	analyticsService := services.NewAnalyticsService(habitRepo, completionRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, tokenService)
	habitHandler := handlers.NewHabitHandler(habitService)
	analyticsHandler := handlers.NewAnalyticsHandler(habitService, analyticsService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Habit Tracker API is running",
		})
	})

	// Auth routes (public)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Habit routes (protected)
	habits := r.Group("/habits")
	habits.Use(middleware.RequireAuth(tokenService))
	{
		habits.POST("", habitHandler.CreateHabit)
		habits.GET("", habitHandler.ListHabits)
		habits.PUT("/:id", middleware.RequireHabitAccess(habitRepo), habitHandler.UpdateHabit)
		habits.DELETE("/:id", middleware.RequireHabitAccess(habitRepo), habitHandler.DeleteHabit)
		habits.POST("/:id/completions", middleware.RequireHabitAccess(habitRepo), habitHandler.RecordCompletion)
		habits.GET("/completions", habitHandler.ListCompletions)

		analytics := habits.Group("/analytics")
		{
			analytics.GET("/all", analyticsHandler.ListAllHabits)
			analytics.GET("/periodicity/:periodicity", analyticsHandler.ListHabitsByPeriodicity)
			analytics.GET("/longest_streak", analyticsHandler.LongestStreak)
			analytics.GET("/longest_streak/:id", analyticsHandler.LongestStreakForHabit)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
