package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	registrydomain "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

var _ ports.Service = (*Service)(nil)

// Service runs donation intake. A donation, its Created history entry, its
// receipt and its idempotency key are written in one UnitOfWork.
type Service struct {
	repos ports.Repositories
	uow   ports.UnitOfWork
	now   func() time.Time
}

// NewService wires the pipeline. repos serves the read-only operations.
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

// RecordDonation validates the request, then creates the donation, its history
// entry and its receipt atomically. An unknown pet is dropped rather than rejected.
// Repeating an idempotency key with the same payload returns the original donation.
func (s *Service) RecordDonation(ctx context.Context, input ports.RecordDonationInput) (*domain.Donation, error) {
	if input.UserID == nil {
		return nil, mapError(domain.ErrMissingDonor)
	}
	amount, err := domain.ParseAmount(input.Amount)
	if err != nil {
		return nil, mapError(err)
	}
	var status domain.Status
	if strings.TrimSpace(input.Status) != "" {
		if status, err = domain.ParseStatus(input.Status); err != nil {
			return nil, mapError(err)
		}
	}
	now := s.now().UTC()
	donation, err := domain.NewDonation(*input.UserID, amount, input.PaymentMethod, status, nil, now)
	if err != nil {
		return nil, mapError(err)
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	var requestHash string
	if key != "" {
		if requestHash, err = FingerprintRecordDonation(input); err != nil {
			return nil, err
		}
	}

	var recorded *domain.Donation
	err = s.uow.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if key != "" {
			existing, err := repos.Idempotency.Get(ctx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				if existing.RequestHash != requestHash {
					return ports.ErrIdempotencyConflict
				}
				recorded, err = repos.Donations.GetByID(ctx, existing.DonationID)
				return err
			}
		}

		donor, err := repos.Users.GetByID(ctx, donation.UserID)
		if err != nil {
			return fmt.Errorf("donor %d: %w", donation.UserID, err)
		}
		if input.PetID != nil {
			pet, err := repos.Pets.GetByID(ctx, *input.PetID)
			switch {
			case err == nil:
				donation.DirectTo(&pet.ID)
			case sharederrors.KindOf(err) != sharederrors.KindNotFound:
				return err
			}
		}

		saved, err := repos.Donations.Create(ctx, donation)
		if err != nil {
			return err
		}
		if _, err := repos.History.Append(ctx, domain.NewHistoryEntry(saved.ID, domain.ActionCreated, now)); err != nil {
			return err
		}
		receipt, err := domain.IssueReceipt(saved, domain.Donor{
			Name:    donor.Name,
			Email:   donor.Email,
			Address: donor.Address,
		}, input.Notes, now)
		if err != nil {
			return err
		}
		if _, err := repos.Receipts.Create(ctx, receipt); err != nil {
			return err
		}
		if key != "" {
			if _, err := repos.Idempotency.Save(ctx, ports.IdempotencyRecord{
				Key:         key,
				RequestHash: requestHash,
				DonationID:  saved.ID,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}
		recorded = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}

// Get loads a single donation.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Donation, error) {
	return s.repos.Donations.GetByID(ctx, id)
}

// List returns every donation with its donor and pet resolved.
func (s *Service) List(ctx context.Context) ([]ports.DonationDetails, error) {
	donations, err := s.repos.Donations.List(ctx)
	if err != nil {
		return nil, err
	}
	donors := map[int64]*registrydomain.User{}
	pets := map[int64]*registrydomain.Pet{}
	details := make([]ports.DonationDetails, 0, len(donations))
	for _, d := range donations {
		item := ports.DonationDetails{Donation: d}
		if item.Donor, err = lookup(ctx, donors, d.UserID, s.repos.Users.GetByID); err != nil {
			return nil, err
		}
		if d.PetID != nil {
			if item.Pet, err = lookup(ctx, pets, *d.PetID, s.repos.Pets.GetByID); err != nil {
				return nil, err
			}
		}
		details = append(details, item)
	}
	return details, nil
}

// ListByUser returns a user's donations. The user must exist.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*domain.Donation, error) {
	if _, err := s.repos.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repos.Donations.ListByUser(ctx, userID)
}

// ListHistory returns the audit trail of a donation, oldest first.
func (s *Service) ListHistory(ctx context.Context, donationID int64) ([]*domain.HistoryEntry, error) {
	if _, err := s.repos.Donations.GetByID(ctx, donationID); err != nil {
		return nil, err
	}
	return s.repos.History.ListByDonation(ctx, donationID)
}

// GetReceipt returns the receipt issued with a donation.
func (s *Service) GetReceipt(ctx context.Context, donationID int64) (*domain.Receipt, error) {
	if _, err := s.repos.Donations.GetByID(ctx, donationID); err != nil {
		return nil, err
	}
	return s.repos.Receipts.GetByDonation(ctx, donationID)
}

// lookup memoises get by id; a missing record resolves to nil.
func lookup[T any](ctx context.Context, seen map[int64]*T, id int64, get func(context.Context, int64) (*T, error)) (*T, error) {
	if v, ok := seen[id]; ok {
		return v, nil
	}
	v, err := get(ctx, id)
	if err != nil {
		if sharederrors.KindOf(err) != sharederrors.KindNotFound {
			return nil, err
		}
		v = nil
	}
	seen[id] = v
	return v, nil
}
