package ports

import (
	"context"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

var (
	ErrUserNotFound = sharederrors.New(sharederrors.KindNotFound, "user not found")
	ErrPetNotFound  = sharederrors.New(sharederrors.KindNotFound, "pet not found")
	ErrRoleNotFound = sharederrors.New(sharederrors.KindNotFound, "role not found")

	ErrEmailTaken = sharederrors.New(sharederrors.KindConflict, "email already registered")
	ErrRoleExists = sharederrors.New(sharederrors.KindConflict, "role already exists")
)

// UserRepository stores users. Implementations return ErrUserNotFound for unknown ids
// and ErrEmailTaken when the unique email constraint is violated.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// PetRepository stores pets.
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) (*domain.Pet, error)
	Update(ctx context.Context, pet *domain.Pet) (*domain.Pet, error)
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
	// GetForUpdate loads a pet and holds a row lock until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*domain.Pet, error)
	List(ctx context.Context, filter domain.PetFilter) ([]*domain.Pet, error)
}

// RoleRepository stores roles. GetByName matches case-insensitively.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	GetByID(ctx context.Context, id int64) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
}
