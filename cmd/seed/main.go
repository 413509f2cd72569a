// Command seed provisions the initial directory state: the department list
// and one bootstrap Admin. It is idempotent and safe to re-run.
package main

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/service"
	"github.com/peoplecore/identity-system/internal/infrastructure/config"
	mongodb "github.com/peoplecore/identity-system/internal/infrastructure/db/mongo"
	"github.com/peoplecore/identity-system/pkg/logger"
)

type seedConfig struct {
	AdminName     string `env:"SEED_ADMIN_NAME,     default=Super Admin"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL,    default=admin@peoplecore.local"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=ChangeMe!123"`
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log := logger.Init(logger.Options{Pretty: true})

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	var seed seedConfig
	if err := envconfig.Process(ctx, &seed); err != nil {
		log.Fatal().Err(err).Msg("failed to load seed configuration")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := mongodb.EnsureUserIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := mongodb.EnsureAuditIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure audit indexes")
	}
	if err := mongodb.EnsureDepartments(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed departments")
	}
	log.Info().Int("count", len(domain.SeedDepartments())).Msg("departments ensured")

	users := mongodb.NewUserRepository(db)
	exists, err := users.ExistsByEmail(ctx, seed.AdminEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to check for existing admin")
	}
	if exists {
		log.Info().Str("email", seed.AdminEmail).Msg("bootstrap admin already present, nothing to do")
		return
	}

	hash, err := service.NewPasswordHasher().Hash(seed.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}
	admin, err := domain.NewAdmin(seed.AdminName, seed.AdminEmail, hash)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build bootstrap admin")
	}
	admin.Manager.JobTitle = "Chief Administrator"

	created, err := users.Insert(ctx, admin)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to insert bootstrap admin")
	}
	log.Info().Str("id", created.ID).Str("email", created.Email).Msg("bootstrap admin seeded")
}
