package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/ports"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/memstore"
)

var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)

// ApplicationRepository keeps adoption applications in a memstore table.
type ApplicationRepository struct {
	store *memstore.Store
	rows  *memstore.Table[int64, domain.Application]
}

func NewApplicationRepository(store *memstore.Store) *ApplicationRepository {
	return &ApplicationRepository{store: store, rows: memstore.NewTable[int64, domain.Application](store, "adoption_applications")}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	clone := app.Clone()
	err := r.store.Write(ctx, func() error {
		if clone.ID == 0 {
			clone.ID = r.rows.NextID()
		} else {
			r.rows.Observe(clone.ID)
		}
		r.rows.Put(clone.ID, *clone.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	clone := app.Clone()
	err := r.store.Write(ctx, func() error {
		if _, ok := r.rows.Get(clone.ID); !ok {
			return ports.ErrApplicationNotFound
		}
		r.rows.Put(clone.ID, *clone.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	var found *domain.Application
	err := r.store.Read(ctx, func() error {
		app, ok := r.rows.Get(id)
		if !ok {
			return ports.ErrApplicationNotFound
		}
		found = app.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *ApplicationRepository) List(ctx context.Context) ([]*domain.Application, error) {
	return r.filter(ctx, func(*domain.Application) bool { return true })
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, userID int64) ([]*domain.Application, error) {
	return r.filter(ctx, func(app *domain.Application) bool { return app.UserID == userID })
}

func (r *ApplicationRepository) ListByPet(ctx context.Context, petID int64) ([]*domain.Application, error) {
	return r.filter(ctx, func(app *domain.Application) bool { return app.PetID == petID })
}

func (r *ApplicationRepository) filter(ctx context.Context, keep func(*domain.Application) bool) ([]*domain.Application, error) {
	list := []*domain.Application{}
	err := r.store.Read(ctx, func() error {
		for _, app := range r.rows.Values() {
			if keep(&app) {
				list = append(list, app.Clone())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(list, func(a, b *domain.Application) int { return cmp.Compare(a.ID, b.ID) })
	return list, nil
}
