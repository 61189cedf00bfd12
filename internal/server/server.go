// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"chirp/internal/cache"
	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/service"
	"chirp/internal/token"
	"chirp/internal/uploader"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *token.Service
	uploads        uploader.Uploader

	userRepo         repository.UserRepository
	followRepo       repository.FollowRepository
	postRepo         repository.PostRepository
	likeRepo         repository.LikeRepository
	notificationRepo repository.NotificationRepository

	graphService        *service.GraphService
	notificationService *service.NotificationService
}

// NewServer creates a server instance, establishing the database and Redis
// connections itself.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	var uploads uploader.Uploader
	if cfg.UploadBucket != "" {
		uploads, err = uploader.NewGCSUploader(context.Background(), cfg.UploadBucket, cfg.UploadCreds)
		if err != nil {
			return nil, fmt.Errorf("uploader initialization failed: %w", err)
		}
	}

	return NewServerWithDeps(cfg, db, cache.GetClient(), uploads), nil
}

// NewServerWithDeps creates a Server from already-initialized dependencies.
// Used by tests and by bootstrap layers that manage connections explicitly.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, uploads uploader.Uploader) *Server {
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	s := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   middleware.InitMetrics("chirp-api"),
		tokens:           token.NewService(cfg.JWTSecret),
		uploads:          uploads,
		userRepo:         userRepo,
		followRepo:       followRepo,
		postRepo:         postRepo,
		likeRepo:         likeRepo,
		notificationRepo: notificationRepo,
	}
	s.graphService = service.NewGraphService(userRepo, followRepo, postRepo, likeRepo, notificationRepo)
	s.notificationService = service.NewNotificationService(notificationRepo)
	return s
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	// Credentials must be allowed: the identity token travels in a cookie.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Auth routes. Logout needs no valid token; it only clears the cookie.
	api.Post("/signup", s.Signup)
	api.Post("/login", s.Login)
	api.Post("/logout", s.Logout)
	api.Get("/user", s.AuthRequired(), s.GetMe)

	users := api.Group("/users", s.AuthRequired())
	users.Get("/suggested", s.GetSuggestedUsers)
	users.Get("/profile/:username", s.GetUserProfile)
	users.Get("/followers/:username", s.GetFollowers)
	users.Get("/following/:username", s.GetFollowing)
	users.Post("/follow/:id", s.FollowUser)
	users.Post("/update", s.UpdateProfile)

	posts := api.Group("/posts", s.AuthRequired())
	posts.Get("/all", s.GetAllPosts)
	posts.Get("/following", s.GetFollowingPosts)
	posts.Get("/likes/:id", s.GetLikedPosts)
	posts.Get("/user/:username", s.GetUserPosts)
	posts.Post("/create", s.CreatePost)
	posts.Post("/like/:id", s.LikePost)
	posts.Post("/comment/:id", s.CommentOnPost)
	posts.Delete("/delete/:id", s.DeletePost)

	notifications := api.Group("/notifications", s.AuthRequired())
	notifications.Get("/", s.GetNotifications)
	notifications.Delete("/", s.DeleteNotifications)
	notifications.Delete("/:id", s.DeleteNotification)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports database and Redis health. Redis is optional, so a
// missing client degrades the report without failing readiness.
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
	if s.redis == nil {
		redisStatus = "unavailable"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It verifies the token
// cookie, resolves the user, and stores both the ID and the user in locals.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(token.CookieName)
		if cookie == "" {
			return models.RespondError(c, models.NewUnauthorizedError("Unauthorized: No token provided"))
		}

		userID, err := s.tokens.Verify(cookie)
		if err != nil {
			return models.RespondError(c, models.NewUnauthorizedError("Unauthorized: Invalid token"))
		}

		// A valid token for a since-deleted user is still unauthorized.
		user, err := s.userRepo.GetByIDCached(c.UserContext(), userID)
		if err != nil {
			return models.RespondError(c, models.NewUnauthorizedError("Unauthorized: User not found"))
		}
		user.Password = ""

		c.Locals("userID", userID)
		c.Locals("currentUser", user)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// currentUserID returns the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// Shutdown releases server-held resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Warn("Redis close failed", "error", err)
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
