package routes

import (
	"spacefinders/internal/adapters/http/handlers"
	"spacefinders/internal/adapters/http/middleware"
	"spacefinders/internal/adapters/persistence/repositories"
	"spacefinders/internal/config"
	"spacefinders/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	propertyRepo := repositories.NewPropertyRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	complaintRepo := repositories.NewComplaintRepository(db)
	auditRepo := repositories.NewAuditRepository(db)

	// Initialize services
	auditService := services.NewAuditService(auditRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, auditService, cfg)
	userService := services.NewUserService(userRepo, refreshTokenRepo, auditService)
	propertyService := services.NewPropertyService(propertyRepo, bookingRepo, userRepo, auditService)
	bookingService := services.NewBookingService(bookingRepo, propertyRepo, userRepo, auditService)
	complaintService := services.NewComplaintService(complaintRepo, bookingRepo, auditService)
	dashboardService := services.NewDashboardService(userRepo, propertyRepo, bookingRepo, complaintRepo, auditRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService, complaintService)
	propertyHandler := handlers.NewPropertyHandler(propertyService, bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	adminHandler := handlers.NewAdminHandler(userService, complaintService, dashboardService, auditService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Profile & complaint routes (authenticated users)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)

	complaintRoutes := apiV1.Group("/complaints")
	complaintRoutes.Use(middleware.AuthMiddleware(cfg))
	setupComplaintRoutes(complaintRoutes, userHandler)

	// Property routes (hosts)
	propertyRoutes := apiV1.Group("/properties")
	propertyRoutes.Use(middleware.AuthMiddleware(cfg))
	setupPropertyRoutes(propertyRoutes, propertyHandler)

	// Booking routes (authenticated users)
	bookingRoutes := apiV1.Group("/bookings")
	bookingRoutes.Use(middleware.AuthMiddleware(cfg))
	setupBookingRoutes(bookingRoutes, bookingHandler)

	// Admin routes (ADMIN only)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, adminHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited against brute force)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)

	// Protected routes
	router.Post("/logout", middleware.AuthMiddleware(cfg), handler.Logout)
}

// setupUserRoutes configures profile routes (authenticated)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/me", handler.Me)
	router.Put("/me", handler.UpdateProfile)
	router.Delete("/me", handler.DeleteAccount)
}

// setupComplaintRoutes configures complaint routes (authenticated)
func setupComplaintRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Post("/", handler.FileComplaint)
	router.Get("/", handler.MyComplaints)
}

// setupPropertyRoutes configures property routes. Mutations require the HOST
// role; detail reads are open to any authenticated user.
func setupPropertyRoutes(router fiber.Router, handler *handlers.PropertyHandler) {
	// Detail view is open to any authenticated user. The int constraint keeps
	// /deleted and /bookings from matching as an ID.
	router.Get("/:id<int>", handler.GetByID)

	hostRoutes := router.Group("")
	hostRoutes.Use(middleware.HostOnly())

	hostRoutes.Post("/", handler.Create)
	hostRoutes.Get("/", handler.ListMine)
	hostRoutes.Get("/deleted", handler.ListDeleted)
	hostRoutes.Get("/bookings", handler.HostBookings)
	hostRoutes.Put("/:id", handler.Update)
	hostRoutes.Delete("/:id", handler.Delete)
}

// setupBookingRoutes configures booking lifecycle routes (authenticated)
func setupBookingRoutes(router fiber.Router, handler *handlers.BookingHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.ListMine)
	router.Patch("/:id/confirm", handler.Confirm)
	router.Patch("/:id/cancel", handler.Cancel)
	router.Patch("/:id/complete", handler.Complete)
	router.Patch("/:id/pay", handler.MarkPaid)
}

// setupAdminRoutes configures admin routes (ADMIN only)
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler) {
	router.Get("/users", handler.ListUsers)
	router.Patch("/users/:id/block", handler.BlockUser)
	router.Patch("/users/:id/unblock", handler.UnblockUser)
	router.Get("/users/:id/audit", handler.UserAuditTrail)

	router.Get("/complaints", handler.PendingComplaints)
	router.Patch("/complaints/:id/resolve", handler.ResolveComplaint)
	router.Patch("/complaints/:id/reject", handler.RejectComplaint)

	router.Get("/dashboard", handler.Dashboard)
}
