package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/knagata/taskflow/internal/config"
	"github.com/knagata/taskflow/internal/constants"
	"github.com/knagata/taskflow/internal/database"
	"github.com/knagata/taskflow/internal/handlers"
	"github.com/knagata/taskflow/internal/middleware"
	"github.com/knagata/taskflow/internal/repository"
	"github.com/knagata/taskflow/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB(), cfg.DBDriver); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router with a recovery handler that renders the
	// fallback error page instead of an empty 500
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.HTML(http.StatusInternalServerError, "500.html", nil)
	}))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Load server-rendered views
	r.LoadHTMLGlob("web/templates/*.html")

	// Initialize repositories, services and handlers
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	authHandler := handlers.NewAuthHandler(authService)
	pageHandler := handlers.NewPageHandler(taskService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "taskflow is running",
		})
	})

	// HTML routes
	r.GET("/", authHandler.Landing)
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", middleware.RequireLogin(), authHandler.Logout)
	r.GET("/dashboard", middleware.RequireLogin(), pageHandler.Dashboard)
	r.GET("/tasks", middleware.RequireLogin(), pageHandler.Tasks)

	// JSON API routes (session gated, same cookie as the pages)
	api := r.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.GET("/me", authHandler.CurrentUser)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskOwnership(), taskHandler.GetTask)
			tasks.PUT("/:id", middleware.RequireTaskOwnership(), taskHandler.UpdateTask)
			tasks.PUT("/:id/archive", middleware.RequireTaskOwnership(), taskHandler.ArchiveTask)
			tasks.DELETE("/:id", middleware.RequireTaskOwnership(), taskHandler.DeleteTask)
		}
	}

	// Rendered fallback for unknown routes
	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "404.html", nil)
	})

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
