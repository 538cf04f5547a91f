// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"reviewworld/internal/cache"
	"reviewworld/internal/config"
	"reviewworld/internal/database"
	"reviewworld/internal/middleware"
	"reviewworld/internal/models"
	"reviewworld/internal/repository"
	"reviewworld/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
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

	userRepo      repository.UserRepository
	brandRepo     repository.BrandRepository
	lineRepo      repository.ProductLineRepository
	variationRepo repository.VariationRepository
	reviewRepo    repository.ReviewRepository
	reportRepo    repository.ReportRepository

	userService       *service.UserService
	moderationService *service.ModerationService
	reviewService     *service.ReviewService
	statsService      *service.StatsService
	reportService     *service.ReportService
	catalogService    *service.CatalogService
	searchService     *service.SearchService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory SQLite database and no Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)
	cache.SetStatsTTL(cfg.StatsCacheTTL)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: fiberprometheus.New("reviewworld-api"),
		userRepo:       repository.NewUserRepository(db),
		brandRepo:      repository.NewBrandRepository(db),
		lineRepo:       repository.NewProductLineRepository(db),
		variationRepo:  repository.NewVariationRepository(db),
		reviewRepo:     repository.NewReviewRepository(db),
		reportRepo:     repository.NewReportRepository(db),
	}

	server.userService = service.NewUserService(server.userRepo, server.reviewRepo)
	server.moderationService = service.NewModerationService(
		server.brandRepo, server.lineRepo, server.variationRepo, server.userService.IsAdmin)
	server.reviewService = service.NewReviewService(server.reviewRepo, server.variationRepo, server.lineRepo)
	server.statsService = service.NewStatsService(db, server.variationRepo)
	server.reportService = service.NewReportService(server.reportRepo, server.reviewRepo)
	server.catalogService = service.NewCatalogService(
		db, server.brandRepo, server.lineRepo, server.variationRepo, server.statsService)
	server.searchService = service.NewSearchService(server.brandRepo, server.variationRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	app.Use(s.promMiddleware.Middleware)
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit so browser
	// clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
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

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.HealthCheck)

	s.promMiddleware.RegisterAt(app, "/api/metrics")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public catalog routes
	brands := api.Group("/brands")
	brands.Get("/", s.GetBrands)
	brands.Get("/:brandSlug/lines/:lineSlug/variations/:varSlug", s.GetVariation)
	brands.Get("/:brandSlug/lines/:lineSlug", s.GetProductLine)
	brands.Get("/:brandSlug", s.GetBrand)

	// Public variation listings and reviews. Named routes before :id.
	variations := api.Group("/variations")
	variations.Get("/trending", s.GetTrending)
	variations.Get("/recent", s.GetRecentlyReviewed)
	variations.Get("/:id/stats", s.GetVariationStats)
	variations.Get("/:id/reviews", s.GetVariationReviews)

	api.Get("/search", middleware.RateLimit(
		s.redis, 30, time.Minute, "search"), s.Search)

	api.Get("/users/:id/reviews", s.GetUserReviews)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	protected.Post("/brands", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "submit"), s.SubmitBrand)
	protected.Post("/brands/:brandSlug/lines", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "submit"), s.SubmitProductLine)
	protected.Post("/lines/:lineSlug/variations", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "submit"), s.SubmitVariation)

	reviews := protected.Group("/reviews")
	reviews.Post("/", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "create_review"), s.CreateReview)
	reviews.Put("/:id", s.UpdateReview)
	reviews.Delete("/:id", s.DeleteReview)

	protected.Post("/reports", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "report"), s.CreateReport)

	users := protected.Group("/users")
	users.Get("/me", s.GetMe)
	users.Put("/me", s.UpdateMe)
	users.Delete("/me", s.DeleteMe)

	// Admin routes. Role enforcement lives in the moderation service and
	// fails closed; the group only requires authentication.
	admin := protected.Group("/admin")
	admin.Get("/submissions", s.GetSubmissions)
	admin.Patch("/submissions/:type/:id", s.DecideSubmission)
}

// HealthCheck is a simple alias for ReadinessCheck
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
		// Stats caching and rate limits degrade without Redis but the
		// API still serves requests.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "ReviewWorld API",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// generateToken creates a JWT token for the given user
func (s *Server) generateToken(user *models.User) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"name": user.Name,
		"iss":  "reviewworld-api",
		"aud":  "reviewworld-client",
		"exp":  now.Add(time.Hour * 24 * 7).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  fmt.Sprintf("%d-%s", now.Unix(), uuid.NewString()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "ReviewWorld API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "err", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
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
