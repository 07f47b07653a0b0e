package api

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	adoptionmemory "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/adapters/memory"
	adoptionobs "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/adapters/observability"
	adoptionpostgres "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/adapters/persistence/postgres"
	adoptionapp "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/application"
	adoptionports "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/ports"
	donationmemory "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/adapters/memory"
	donationobs "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/adapters/observability"
	donationpostgres "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/adapters/persistence/postgres"
	donationapp "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/application"
	donationports "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	registrymemory "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/adapters/memory"
	registryobs "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/adapters/observability"
	registrypostgres "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/adapters/persistence/postgres"
	registryapp "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/application"
	registryports "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/memstore"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/migrations"
	platformobservability "github.com/Apurer/pawsitive-drive-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/pawsitive-drive-server/internal/platform/postgres"
)

// Backend names the store the services were wired against.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

// Services are the decorated application services of every bounded context.
type Services struct {
	Backend   Backend
	Registry  registryports.Service
	Adoptions adoptionports.Service
	Donations donationports.Service
}

// BuildServices wires the services against PostgreSQL when cfg.PostgresDSN is
// reachable and against one shared in-memory store otherwise.
func BuildServices(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Services, func(), error) {
	logger := effectiveLogger(instruments)
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	var services *Services
	if db != nil {
		if cfg.AutoMigrate {
			if err := migrations.Run(db.WithContext(ctx)); err != nil {
				cleanup()
				return nil, func() {}, fmt.Errorf("failed to migrate schema: %w", err)
			}
			logger.Info("database schema migrated")
		}
		services = postgresServices(db, cfg)
	} else {
		services = memoryServices()
	}
	decorate(services, logger, instruments)
	logger.Info("services wired", slog.String("backend", string(services.Backend)))
	return services, cleanup, nil
}

func postgresServices(db *gorm.DB, cfg Config) *Services {
	users := registrypostgres.NewUserRepository(db)
	pets := registrypostgres.NewPetRepository(db)
	roles := registrypostgres.NewRoleRepository(db)
	return &Services{
		Backend:   BackendPostgres,
		Registry:  registryapp.NewService(users, pets, roles),
		Adoptions: adoptionapp.NewService(adoptionpostgres.NewRepositories(db), adoptionpostgres.NewUnitOfWork(db, cfg.StoreTimeout)),
		Donations: donationapp.NewService(donationpostgres.NewRepositories(db), donationpostgres.NewUnitOfWork(db, cfg.StoreTimeout)),
	}
}

func memoryServices() *Services {
	store := memstore.New()
	registry := registrymemory.NewRepositories(store)
	adoptionRepos := adoptionports.Repositories{
		Applications: adoptionmemory.NewApplicationRepository(store),
		Pets:         registry.Pets,
		Users:        registry.Users,
	}
	donationRepos := donationmemory.NewRepositories(store, registry.Users, registry.Pets)
	return &Services{
		Backend:   BackendMemory,
		Registry:  registryapp.NewService(registry.Users, registry.Pets, registry.Roles),
		Adoptions: adoptionapp.NewService(adoptionRepos, adoptionmemory.NewUnitOfWork(store, adoptionRepos)),
		Donations: donationapp.NewService(donationRepos, donationmemory.NewUnitOfWork(store, donationRepos)),
	}
}

func decorate(s *Services, logger *slog.Logger, instruments *platformobservability.Instruments) {
	s.Registry = registryobs.New(s.Registry,
		registryobs.WithLogger(logger),
		registryobs.WithTracer(instruments.Tracer("internal.registry.application")),
		registryobs.WithMeter(instruments.Meter("internal.registry.application")),
	)
	s.Adoptions = adoptionobs.New(s.Adoptions,
		adoptionobs.WithLogger(logger),
		adoptionobs.WithTracer(instruments.Tracer("internal.adoptions.application")),
		adoptionobs.WithMeter(instruments.Meter("internal.adoptions.application")),
	)
	s.Donations = donationobs.New(s.Donations,
		donationobs.WithLogger(logger),
		donationobs.WithTracer(instruments.Tracer("internal.donations.application")),
		donationobs.WithMeter(instruments.Meter("internal.donations.application")),
	)
}
