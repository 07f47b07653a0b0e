package ports

import (
	"context"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
)

// RegisterUserInput carries a new user. An empty RoleName resolves to the default role.
type RegisterUserInput struct {
	Name           string
	Email          string
	CredentialHash string
	RoleName       string
	Status         string
	ContactNumber  string
	Address        string
}

// UpdateUserInput changes profile fields. Nil fields are left untouched.
type UpdateUserInput struct {
	ID            int64
	Name          *string
	Email         *string
	ContactNumber *string
	Address       *string
	Status        *string
}

// AddPetInput carries a new pet listing.
type AddPetInput struct {
	Name        string
	Species     string
	Breed       string
	Age         int
	Gender      string
	Status      string
	Description string
	ImageURL    string
	AddedBy     *int64
}

// Service exposes the registry use cases to adapters.
type Service interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	AddPet(ctx context.Context, input AddPetInput) (*domain.Pet, error)
	GetPet(ctx context.Context, id int64) (*domain.Pet, error)
	ListPets(ctx context.Context, filter domain.PetFilter) ([]*domain.Pet, error)
	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]*domain.Role, error)
	SeedRoles(ctx context.Context) ([]*domain.Role, error)
}
