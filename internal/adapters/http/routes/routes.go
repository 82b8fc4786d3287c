package routes

import (
	"staffdesk/internal/adapters/http/handlers"
	"staffdesk/internal/adapters/http/middleware"
	"staffdesk/internal/adapters/persistence/repositories"
	"staffdesk/internal/config"
	"staffdesk/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	employeeService := services.NewEmployeeService(employeeRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	authRequired := middleware.AuthMiddleware(cfg, userRepo)

	// Auth routes
	auth := apiV1.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authRequired, authHandler.Me)
	auth.Put("/password", authRequired, authHandler.ChangePassword)

	// Employee routes (any authenticated user)
	employees := apiV1.Group("/employees", authRequired)
	employees.Post("/", employeeHandler.CreateEmployee)
	employees.Get("/", employeeHandler.ListEmployees)
	employees.Get("/:id", employeeHandler.GetEmployee)
	employees.Put("/:id", employeeHandler.UpdateEmployee)
	employees.Delete("/:id", employeeHandler.DeleteEmployee)

	// User management routes (admin only)
	users := apiV1.Group("/users", authRequired, middleware.AdminOnly())
	users.Get("/", userHandler.ListUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeactivateUser)
}
