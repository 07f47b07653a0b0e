package migrations

import (
	"fmt"

	"gorm.io/gorm"

	adoptionpostgres "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/adapters/persistence/postgres"
	donationpostgres "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/adapters/persistence/postgres"
	registrypostgres "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/adapters/persistence/postgres"
)

// Models lists every persisted record in dependency order: registry tables
// come before the applications and donations that reference them.
func Models() []any {
	var models []any
	models = append(models, registrypostgres.Models()...)
	models = append(models, adoptionpostgres.Models()...)
	models = append(models, donationpostgres.Models()...)
	return models
}

// Run applies the schema for every bounded context.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
