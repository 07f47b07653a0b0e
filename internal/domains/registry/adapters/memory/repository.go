package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/memstore"
)

var (
	_ ports.UserRepository = (*UserRepository)(nil)
	_ ports.PetRepository  = (*PetRepository)(nil)
	_ ports.RoleRepository = (*RoleRepository)(nil)
)

// Repositories bundles the registry tables of one memstore.Store.
type Repositories struct {
	Users *UserRepository
	Pets  *PetRepository
	Roles *RoleRepository
}

// NewRepositories attaches the registry tables to store.
func NewRepositories(store *memstore.Store) Repositories {
	return Repositories{
		Users: NewUserRepository(store),
		Pets:  NewPetRepository(store),
		Roles: NewRoleRepository(store),
	}
}

// UserRepository keeps users in a memstore table.
type UserRepository struct {
	store *memstore.Store
	rows  *memstore.Table[int64, domain.User]
}

func NewUserRepository(store *memstore.Store) *UserRepository {
	return &UserRepository{store: store, rows: memstore.NewTable[int64, domain.User](store, "users")}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	clone := *user
	err := r.store.Write(ctx, func() error {
		if r.emailTaken(clone.Email, 0) {
			return ports.ErrEmailTaken
		}
		if clone.ID == 0 {
			clone.ID = r.rows.NextID()
		} else {
			r.rows.Observe(clone.ID)
		}
		r.rows.Put(clone.ID, clone)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	clone := *user
	err := r.store.Write(ctx, func() error {
		if _, ok := r.rows.Get(clone.ID); !ok {
			return ports.ErrUserNotFound
		}
		if r.emailTaken(clone.Email, clone.ID) {
			return ports.ErrEmailTaken
		}
		r.rows.Put(clone.ID, clone)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var found domain.User
	err := r.store.Read(ctx, func() error {
		user, ok := r.rows.Get(id)
		if !ok {
			return ports.ErrUserNotFound
		}
		found = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var found *domain.User
	err := r.store.Read(ctx, func() error {
		for _, user := range r.rows.Values() {
			if user.Email == email {
				found = &user
				return nil
			}
		}
		return ports.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var list []*domain.User
	err := r.store.Read(ctx, func() error {
		list = make([]*domain.User, 0, r.rows.Len())
		for _, user := range r.rows.Values() {
			list = append(list, &user)
		}
		return nil
	})
	slices.SortFunc(list, func(a, b *domain.User) int { return cmp.Compare(a.ID, b.ID) })
	return list, err
}

func (r *UserRepository) emailTaken(email string, exceptID int64) bool {
	for _, user := range r.rows.Values() {
		if user.Email == email && user.ID != exceptID {
			return true
		}
	}
	return false
}

// PetRepository keeps pets in a memstore table.
type PetRepository struct {
	store *memstore.Store
	rows  *memstore.Table[int64, domain.Pet]
}

func NewPetRepository(store *memstore.Store) *PetRepository {
	return &PetRepository{store: store, rows: memstore.NewTable[int64, domain.Pet](store, "pets")}
}

func (r *PetRepository) Create(ctx context.Context, pet *domain.Pet) (*domain.Pet, error) {
	clone := *pet
	err := r.store.Write(ctx, func() error {
		if clone.ID == 0 {
			clone.ID = r.rows.NextID()
		} else {
			r.rows.Observe(clone.ID)
		}
		r.rows.Put(clone.ID, clone)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

func (r *PetRepository) Update(ctx context.Context, pet *domain.Pet) (*domain.Pet, error) {
	clone := *pet
	err := r.store.Write(ctx, func() error {
		if _, ok := r.rows.Get(clone.ID); !ok {
			return ports.ErrPetNotFound
		}
		r.rows.Put(clone.ID, clone)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

func (r *PetRepository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	var found domain.Pet
	err := r.store.Read(ctx, func() error {
		pet, ok := r.rows.Get(id)
		if !ok {
			return ports.ErrPetNotFound
		}
		found = pet
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// GetForUpdate is GetByID: memstore transactions already hold the exclusive lock.
func (r *PetRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Pet, error) {
	return r.GetByID(ctx, id)
}

func (r *PetRepository) List(ctx context.Context, filter domain.PetFilter) ([]*domain.Pet, error) {
	var list []*domain.Pet
	err := r.store.Read(ctx, func() error {
		for _, pet := range r.rows.Values() {
			if filter.Matches(&pet) {
				list = append(list, &pet)
			}
		}
		return nil
	})
	slices.SortFunc(list, func(a, b *domain.Pet) int { return cmp.Compare(a.ID, b.ID) })
	return list, err
}

// RoleRepository keeps roles in a memstore table keyed by id.
type RoleRepository struct {
	store *memstore.Store
	rows  *memstore.Table[int64, domain.Role]
}

func NewRoleRepository(store *memstore.Store) *RoleRepository {
	return &RoleRepository{store: store, rows: memstore.NewTable[int64, domain.Role](store, "roles")}
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	clone := *role
	err := r.store.Write(ctx, func() error {
		if _, ok := r.findByName(clone.Name); ok {
			return ports.ErrRoleExists
		}
		if clone.ID == 0 {
			clone.ID = r.rows.NextID()
		} else {
			r.rows.Observe(clone.ID)
		}
		r.rows.Put(clone.ID, clone)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	var found domain.Role
	err := r.store.Read(ctx, func() error {
		role, ok := r.rows.Get(id)
		if !ok {
			return ports.ErrRoleNotFound
		}
		found = role
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	var found domain.Role
	err := r.store.Read(ctx, func() error {
		role, ok := r.findByName(name)
		if !ok {
			return ports.ErrRoleNotFound
		}
		found = role
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	var list []*domain.Role
	err := r.store.Read(ctx, func() error {
		for _, role := range r.rows.Values() {
			list = append(list, &role)
		}
		return nil
	})
	slices.SortFunc(list, func(a, b *domain.Role) int { return cmp.Compare(a.ID, b.ID) })
	return list, err
}

func (r *RoleRepository) findByName(name string) (domain.Role, bool) {
	key := domain.RoleKey(name)
	for _, role := range r.rows.Values() {
		if domain.RoleKey(role.Name) == key {
			return role, true
		}
	}
	return domain.Role{}, false
}
