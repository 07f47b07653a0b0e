package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/ports"
)

var _ ports.Service = (*Service)(nil)

// Service runs the adoption application workflow. Every write path executes
// inside a single UnitOfWork so an approval and its pet update commit together.
type Service struct {
	repos ports.Repositories
	uow   ports.UnitOfWork
	now   func() time.Time
}

// NewService wires the workflow. repos serves the read-only operations.
func NewService(repos ports.Repositories, uow ports.UnitOfWork) *Service {
	return &Service{repos: repos, uow: uow, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Submit creates an application after resolving its pet and applicant.
func (s *Service) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Application, error) {
	if input.PetID == nil {
		return nil, mapError(domain.ErrMissingPet)
	}
	if input.UserID == nil {
		return nil, mapError(domain.ErrMissingApplicant)
	}
	var status domain.Status
	if input.Status != nil && *input.Status != "" {
		parsed, err := domain.ParseStatus(*input.Status)
		if err != nil {
			return nil, mapError(err)
		}
		status = parsed
	}
	app, err := domain.NewApplication(*input.PetID, *input.UserID, status, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}

	var created *domain.Application
	err = s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if _, err := repos.Pets.GetByID(ctx, app.PetID); err != nil {
			return fmt.Errorf("pet %d: %w", app.PetID, err)
		}
		if _, err := repos.Users.GetByID(ctx, app.UserID); err != nil {
			return fmt.Errorf("applicant %d: %w", app.UserID, err)
		}
		saved, err := repos.Applications.Create(ctx, app)
		if err != nil {
			return err
		}
		created = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Review applies a decision. Approving marks the pet Adopted in the same unit of work;
// approving a pet that is already Adopted is not an error.
func (s *Service) Review(ctx context.Context, input ports.ReviewInput) (*domain.Application, error) {
	var status domain.Status
	if input.Status != nil && *input.Status != "" {
		parsed, err := domain.ParseStatus(*input.Status)
		if err != nil {
			return nil, mapError(err)
		}
		status = parsed
	}

	var reviewed *domain.Application
	err := s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		app, err := repos.Applications.GetByID(ctx, input.ApplicationID)
		if err != nil {
			return err
		}
		if input.ReviewerID != nil {
			if _, err := repos.Users.GetByID(ctx, *input.ReviewerID); err != nil {
				return fmt.Errorf("reviewer %d: %w", *input.ReviewerID, err)
			}
		}
		app.Review(status, input.ReviewerID)

		if app.Approved() {
			pet, err := repos.Pets.GetForUpdate(ctx, app.PetID)
			if err != nil {
				return fmt.Errorf("pet %d: %w", app.PetID, err)
			}
			pet.MarkAdopted()
			if _, err := repos.Pets.Update(ctx, pet); err != nil {
				return err
			}
		}
		saved, err := repos.Applications.Update(ctx, app)
		if err != nil {
			return err
		}
		reviewed = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}

// Get loads a single application.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Application, error) {
	return s.repos.Applications.GetByID(ctx, id)
}

// List returns every application ordered by id.
func (s *Service) List(ctx context.Context) ([]*domain.Application, error) {
	return s.repos.Applications.List(ctx)
}

// ListByApplicant returns the applications a user submitted. The user must exist.
func (s *Service) ListByApplicant(ctx context.Context, userID int64) ([]*domain.Application, error) {
	if _, err := s.repos.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repos.Applications.ListByApplicant(ctx, userID)
}

// ListByPet returns the applications filed for a pet. The pet must exist.
func (s *Service) ListByPet(ctx context.Context, petID int64) ([]*domain.Application, error) {
	if _, err := s.repos.Pets.GetByID(ctx, petID); err != nil {
		return nil, err
	}
	return s.repos.Applications.ListByPet(ctx, petID)
}
