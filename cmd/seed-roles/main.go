package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	registrypostgres "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/adapters/persistence/postgres"
	registryapp "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/application"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/migrations"
	platformpostgres "github.com/Apurer/pawsitive-drive-server/internal/platform/postgres"
)

// seed-roles migrates the schema and makes sure the required roles exist.
// Safe to run repeatedly.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot seed roles")
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	svc := registryapp.NewService(
		registrypostgres.NewUserRepository(db),
		registrypostgres.NewPetRepository(db),
		registrypostgres.NewRoleRepository(db),
	)
	roles, err := svc.SeedRoles(ctx)
	if err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	for _, role := range roles {
		logger.Info("role present", slog.Int64("id", role.ID), slog.String("name", role.Name))
	}
}
