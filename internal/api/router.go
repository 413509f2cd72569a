package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/peoplecore/identity-system/internal/api/handler"
	"github.com/peoplecore/identity-system/internal/api/middleware"
	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/ports"
	"github.com/peoplecore/identity-system/internal/core/service"
	"github.com/peoplecore/identity-system/internal/infrastructure/config"
	mongodb "github.com/peoplecore/identity-system/internal/infrastructure/db/mongo"
	redisdb "github.com/peoplecore/identity-system/internal/infrastructure/db/redis"
)

// Deps carries the infrastructure the router wires handlers onto.
type Deps struct {
	Config   *config.Config
	Log      zerolog.Logger
	DB       *mongo.Database
	Redis    *redis.Client
	Audit    ports.AuditSink
	AuditLog ports.AuditRepository
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	hasher := service.NewPasswordHasher()
	issuer, err := service.NewTokenIssuer(deps.Config.JWT.Secret, deps.Config.JWT.Issuer, deps.Config.JWT.TTL())
	if err != nil {
		return nil, err
	}
	throttle := redisdb.NewLoginThrottle(deps.Redis, deps.Config.Throttle.MaxAttempts, deps.Config.Throttle.Window())

	authService := service.NewAuthService(userRepo, hasher, issuer, throttle, deps.Audit, deps.Log)
	adminService := service.NewAdminService(userRepo, hasher, deps.AuditLog, deps.Audit, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	authMiddleware := middleware.Auth(deps.Config.JWT.Secret)

	// --- Auth routes ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", authMiddleware, middleware.RBAC(string(domain.RoleAdmin)))
	admin.GET("/users/:email", adminHandler.GetByEmail)
	admin.PUT("/users", adminHandler.Update)
	admin.DELETE("/users/:id", adminHandler.Delete)
	admin.GET("/users/:id/audit", adminHandler.AuditTrail)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
