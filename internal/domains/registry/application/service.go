package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
)

var _ ports.Service = (*Service)(nil)

// Service orchestrates registry use cases: users, pets and roles.
type Service struct {
	users ports.UserRepository
	pets  ports.PetRepository
	roles ports.RoleRepository
	now   func() time.Time
}

// NewService wires the registry service with its repositories.
func NewService(users ports.UserRepository, pets ports.PetRepository, roles ports.RoleRepository) *Service {
	return &Service{users: users, pets: pets, roles: roles, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// RegisterUser creates a user with a unique email. The role is resolved by name.
func (s *Service) RegisterUser(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	status, err := domain.ParseUserStatus(input.Status)
	if err != nil {
		return nil, mapError(err)
	}
	roleName := input.RoleName
	if domain.RoleKey(roleName) == "" {
		roleName = domain.DefaultRoleName
	}
	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		return nil, fmt.Errorf("role %q: %w", roleName, err)
	}
	user, err := domain.NewUser(input.Name, input.Email, input.CredentialHash, role.ID, status, input.ContactNumber, input.Address, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		return nil, ports.ErrEmailTaken
	} else if !errors.Is(err, ports.ErrUserNotFound) {
		return nil, err
	}
	return s.users.Create(ctx, user)
}

// UpdateUser applies a partial profile change. Issued receipts keep their snapshot.
func (s *Service) UpdateUser(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if err := user.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Email != nil && *input.Email != user.Email {
		if err := user.ChangeEmail(*input.Email); err != nil {
			return nil, mapError(err)
		}
		if existing, err := s.users.GetByEmail(ctx, user.Email); err == nil && existing.ID != user.ID {
			return nil, ports.ErrEmailTaken
		} else if err != nil && !errors.Is(err, ports.ErrUserNotFound) {
			return nil, err
		}
	}
	if input.Status != nil {
		status, err := domain.ParseUserStatus(*input.Status)
		if err != nil {
			return nil, mapError(err)
		}
		if err := user.SetStatus(status); err != nil {
			return nil, mapError(err)
		}
	}
	user.UpdateContact(input.ContactNumber, input.Address)
	return s.users.Update(ctx, user)
}

// GetUser loads a single user.
func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListUsers returns every user ordered by id.
func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// AddPet lists a new pet. The user in AddedBy must exist.
func (s *Service) AddPet(ctx context.Context, input ports.AddPetInput) (*domain.Pet, error) {
	if input.AddedBy == nil {
		return nil, mapError(domain.ErrMissingAddedBy)
	}
	pet, err := domain.NewPet(input.Name, input.Species, input.Breed, input.Age, input.Gender,
		domain.PetStatus(input.Status), input.Description, input.ImageURL, *input.AddedBy, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	if _, err := s.users.GetByID(ctx, pet.AddedBy); err != nil {
		return nil, fmt.Errorf("addedBy %d: %w", pet.AddedBy, err)
	}
	return s.pets.Create(ctx, pet)
}

// GetPet loads a single pet.
func (s *Service) GetPet(ctx context.Context, id int64) (*domain.Pet, error) {
	return s.pets.GetByID(ctx, id)
}

// ListPets returns pets matching the filter ordered by id.
func (s *Service) ListPets(ctx context.Context, filter domain.PetFilter) ([]*domain.Pet, error) {
	return s.pets.List(ctx, filter)
}

// CreateRole adds a role. Names differing only by case are duplicates.
func (s *Service) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	role, err := domain.NewRole(name)
	if err != nil {
		return nil, mapError(err)
	}
	if _, err := s.roles.GetByName(ctx, role.Name); err == nil {
		return nil, ports.ErrRoleExists
	} else if !errors.Is(err, ports.ErrRoleNotFound) {
		return nil, err
	}
	return s.roles.Create(ctx, role)
}

// ListRoles returns every role ordered by id.
func (s *Service) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.List(ctx)
}

// SeedRoles makes sure every required role exists. Running it again creates nothing.
func (s *Service) SeedRoles(ctx context.Context) ([]*domain.Role, error) {
	seeded := make([]*domain.Role, 0, len(domain.RequiredRoles))
	for _, name := range domain.RequiredRoles {
		role, err := s.ensureRole(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("seed role %q: %w", name, err)
		}
		seeded = append(seeded, role)
	}
	return seeded, nil
}

func (s *Service) ensureRole(ctx context.Context, name string) (*domain.Role, error) {
	existing, err := s.roles.GetByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ports.ErrRoleNotFound) {
		return nil, err
	}
	role, err := domain.NewRole(name)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.roles.Create(ctx, role)
	if errors.Is(err, ports.ErrRoleExists) {
		// another seeder won the insert
		return s.roles.GetByName(ctx, name)
	}
	return created, err
}
