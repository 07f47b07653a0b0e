package memory

import (
	"context"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/memstore"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork runs donation intake as a memstore transaction. The repositories
// must be backed by the same store.
type UnitOfWork struct {
	store *memstore.Store
	repos ports.Repositories
}

func NewUnitOfWork(store *memstore.Store, repos ports.Repositories) *UnitOfWork {
	return &UnitOfWork{store: store, repos: repos}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	return u.store.RunInTransaction(ctx, func(ctx context.Context) error {
		return fn(ctx, u.repos)
	})
}
