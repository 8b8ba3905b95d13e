// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo         repository.UserRepository
	swapRepo         repository.SwapRepository
	ratingRepo       repository.RatingRepository
	announcementRepo repository.AnnouncementRepository

	userService   *service.UserService
	swapService   *service.SwapService
	ratingService *service.RatingService
	adminService  *service.AdminService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	swapRepo := repository.NewSwapRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)

	prom := middleware.InitMetrics("skillswap-api")

	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   prom,
		userRepo:         userRepo,
		swapRepo:         swapRepo,
		ratingRepo:       ratingRepo,
		announcementRepo: announcementRepo,
	}
	server.userService = service.NewUserService(userRepo)
	server.swapService = service.NewSwapService(swapRepo, userRepo, cfg.PendingRequestScope)
	server.ratingService = service.NewRatingService(ratingRepo, swapRepo, userRepo)
	server.adminService = service.NewAdminService(userRepo, swapRepo, ratingRepo, announcementRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/api/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "SkillSwap Backend Metrics Dashboard",
	}))

	// Auth routes
	authMax, authWindowMinutes := s.config.AuthRateLimit()
	authWindow := time.Duration(authWindowMinutes) * time.Minute
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, authMax, authWindow, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, authMax, authWindow, "login"), s.Login)

	auth.Get("/me", middleware.AuthRequired, s.RequireActiveUser, s.Me)

	// User routes. Browse and profile reads are public; a valid token widens
	// visibility for private profiles. Registered before the protected group
	// so its auth gate does not apply to them.
	users := api.Group("/users")
	users.Get("/", middleware.AuthOptional, s.OptionalUser, s.BrowseUsers)
	users.Get("/me", middleware.AuthRequired, s.RequireActiveUser, s.GetMyProfile)
	users.Put("/me", middleware.AuthRequired, s.RequireActiveUser, s.UpdateMyProfile)
	// Specific /:id/:resource routes BEFORE generic /:id route
	users.Get("/:id", middleware.AuthOptional, s.OptionalUser, s.GetUserProfile)
	users.Put("/:id", middleware.AuthRequired, s.RequireActiveUser, s.UpdateUserProfile)

	// Rating routes. Reads are public, mutations need an active account.
	ratings := api.Group("/ratings")
	ratings.Get("/user/:userId", s.GetUserRatings)
	ratings.Get("/average/:userId", s.GetUserRatingSummary)
	ratings.Post("/", middleware.AuthRequired, s.RequireActiveUser, s.SubmitRating)
	ratings.Put("/:id", middleware.AuthRequired, s.RequireActiveUser, s.EditRating)
	ratings.Delete("/:id", middleware.AuthRequired, s.RequireActiveUser, s.DeleteRating)

	// Protected routes: JWT validation first, then account standing check
	protected := api.Group("", middleware.AuthRequired, s.RequireActiveUser)

	// Swap request routes
	swaps := protected.Group("/swap-requests")
	swaps.Post("/", s.CreateSwapRequest)
	swaps.Get("/", s.ListSwapRequests)
	swaps.Patch("/:id/accept", s.AcceptSwapRequest)
	swaps.Patch("/:id/reject", s.RejectSwapRequest)
	swaps.Patch("/:id/cancel", s.CancelSwapRequest)
	swaps.Patch("/:id/complete", s.CompleteSwapRequest)
	swaps.Post("/:id/report", s.ReportSwapRequest)
	swaps.Get("/:id", s.GetSwapRequest)
	swaps.Delete("/:id", s.DeleteSwapRequest)

	// Active announcements, visible to any signed-in user
	protected.Get("/announcements", s.GetActiveAnnouncements)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired)
	admin.Get("/dashboard", s.AdminDashboard)
	admin.Get("/users", s.AdminListUsers)
	admin.Patch("/users/:id/status", s.AdminSetUserStatus)
	admin.Get("/swaps", s.AdminListSwaps)
	admin.Post("/swaps/:id/dismiss-report", s.AdminDismissReport)
	admin.Delete("/swaps/:id", s.AdminDeleteSwap)
	admin.Post("/announcements", s.AdminCreateAnnouncement)
	admin.Get("/announcements", s.AdminListAnnouncements)
	admin.Patch("/announcements/:id/active", s.AdminSetAnnouncementActive)
	admin.Delete("/announcements/:id", s.AdminDeleteAnnouncement)
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API degrades gracefully without Redis (no caching, fail-open
		// rate limits), so a missing client does not fail readiness.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "SkillSwap API",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// RequireActiveUser loads the authenticated user and blocks accounts that are
// no longer in good standing. Must run after middleware.AuthRequired so that
// userID is available in locals. The loaded user is stored in
// c.Locals("currentUser") for handlers.
func (s *Server) RequireActiveUser(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return models.RespondWithError(c, models.NewInvalidCredentialsError())
	}

	user, err := s.userService.GetByID(c.UserContext(), userID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			// The token subject no longer exists; treat as a bad credential.
			return models.RespondWithError(c, models.NewInvalidCredentialsError())
		}
		return models.RespondWithError(c, err)
	}
	if !user.IsActive() {
		return models.RespondWithError(c, models.NewAccountNotActiveError())
	}

	c.Locals("currentUser", user)
	return c.Next()
}

// OptionalUser loads the account behind a token resolved by AuthOptional.
// Anonymous requests and accounts no longer in good standing continue with no
// current user instead of being rejected.
func (s *Server) OptionalUser(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Next()
	}

	user, err := s.userService.GetByID(c.UserContext(), userID)
	if err == nil && user.IsActive() {
		c.Locals("currentUser", user)
	}
	return c.Next()
}

// AdminRequired rejects non-admin users with 403.
// Must be placed after RequireActiveUser so that currentUser is available.
func (s *Server) AdminRequired(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil || !user.IsAdmin() {
		return models.RespondWithError(c, models.NewForbiddenError("Admin access required"))
	}
	return c.Next()
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "SkillSwap API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, err)
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
