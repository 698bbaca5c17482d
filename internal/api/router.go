package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/timetrack/timesheet-system/internal/api/handler"
	"github.com/timetrack/timesheet-system/internal/api/middleware"
	"github.com/timetrack/timesheet-system/internal/core/domain"
	"github.com/timetrack/timesheet-system/internal/core/service"
	mongodb "github.com/timetrack/timesheet-system/internal/infrastructure/db/mongo"
	redisdb "github.com/timetrack/timesheet-system/internal/infrastructure/db/redis"
)

// Options carries the settings the router needs beyond its connections.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("timesheet"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	timesheetRepo := mongodb.NewTimesheetRepository(db)
	revoker := redisdb.NewTokenRevoker(rdb)

	authService := service.NewAuthService(userRepo, opts.JWTSecret, opts.TokenTTL, opts.Logger)
	timesheetService := service.NewTimesheetService(timesheetRepo, opts.Logger)
	userService := service.NewUserService(userRepo, revoker, opts.TokenTTL, opts.Logger)

	authHandler := handler.NewAuthHandler(authService, revoker, opts.TokenTTL)
	timesheetHandler := handler.NewTimesheetHandler(timesheetService)
	userHandler := handler.NewUserHandler(userService)

	authMiddleware := middleware.Auth(opts.JWTSecret, revoker)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Timesheet routes ---
	timesheets := e.Group("/timesheets", authMiddleware)
	timesheets.POST("", timesheetHandler.Create)
	timesheets.GET("", timesheetHandler.List)
	timesheets.PUT("/:id", timesheetHandler.SetStatus, adminOnly)

	// --- User routes ---
	users := e.Group("/users", authMiddleware)
	users.GET("", userHandler.List, adminOnly)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
