package ports

import (
	"context"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/domain"
)

// SubmitInput carries a new application. PetID and UserID are required.
type SubmitInput struct {
	PetID  *int64
	UserID *int64
	Status *string
}

// ReviewInput carries a review decision. Nil fields are left unchanged.
type ReviewInput struct {
	ApplicationID int64
	Status        *string
	ReviewerID    *int64
}

// Service exposes the adoption workflow to adapters.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Application, error)
	Review(ctx context.Context, input ReviewInput) (*domain.Application, error)
	Get(ctx context.Context, id int64) (*domain.Application, error)
	List(ctx context.Context) ([]*domain.Application, error)
	ListByApplicant(ctx context.Context, userID int64) ([]*domain.Application, error)
	ListByPet(ctx context.Context, petID int64) ([]*domain.Application, error)
}
