package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	platformpostgres "github.com/Apurer/pawsitive-drive-server/internal/platform/postgres"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork runs donation intake in one database transaction bounded by timeout.
type UnitOfWork struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewUnitOfWork(db *gorm.DB, timeout time.Duration) *UnitOfWork {
	return &UnitOfWork{db: db, timeout: timeout}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	ctx, cancel := platformpostgres.WithTimeout(ctx, u.timeout)
	defer cancel()
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepositories(tx))
	})
	return platformpostgres.TranslateError(err)
}
