package ports

import (
	"context"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/domain"
	registryports "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

var ErrApplicationNotFound = sharederrors.New(sharederrors.KindNotFound, "adoption application not found")

// ApplicationRepository stores adoption applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	Update(ctx context.Context, app *domain.Application) (*domain.Application, error)
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	List(ctx context.Context) ([]*domain.Application, error)
	ListByApplicant(ctx context.Context, userID int64) ([]*domain.Application, error)
	ListByPet(ctx context.Context, petID int64) ([]*domain.Application, error)
}

// Repositories is the set of stores an adoption operation reads and writes.
// Inside UnitOfWork.Do every repository shares one transaction.
type Repositories struct {
	Applications ApplicationRepository
	Pets         registryports.PetRepository
	Users        registryports.UserRepository
}

// UnitOfWork runs fn as one atomic unit. Any error from fn rolls back every write.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
