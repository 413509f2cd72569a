package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peoplecore/identity-system/internal/api"
	"github.com/peoplecore/identity-system/internal/core/service"
	"github.com/peoplecore/identity-system/internal/infrastructure/config"
	mongodb "github.com/peoplecore/identity-system/internal/infrastructure/db/mongo"
	redisdb "github.com/peoplecore/identity-system/internal/infrastructure/db/redis"
	"github.com/peoplecore/identity-system/internal/infrastructure/queue"
	"github.com/peoplecore/identity-system/pkg/logger"

	_ "github.com/peoplecore/identity-system/docs"
)

// @title           Identity System API
// @version         1.0
// @description     User identity, credential verification, and role-scoped authorization.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Fail fast: a bad signing key must never reach the listener.
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(shutdownCtx)
	}()

	if err := mongodb.EnsureUserIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := mongodb.EnsureAuditIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure audit indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	// Async audit pipeline.
	auditRepo := mongodb.NewAuditRepository(db)
	auditService := service.NewAuditService(auditRepo, logger.Component("audit"))
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, logger.Component("audit-dispatcher"))
	dispatcher.Start(ctx)

	e, err := api.NewRouter(api.Deps{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Redis:    rdb,
		Audit:    dispatcher,
		AuditLog: auditRepo,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("identity system listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
