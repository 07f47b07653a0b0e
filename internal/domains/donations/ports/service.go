package ports

import (
	"context"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	registrydomain "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
)

// RecordDonationInput carries a new donation. Amount is the decimal text as
// received; an empty amount records zero. IdempotencyKey is optional.
type RecordDonationInput struct {
	UserID         *int64
	Amount         string
	PaymentMethod  string
	Status         string
	PetID          *int64
	Notes          string
	IdempotencyKey string
}

// DonationDetails is a donation with its donor and pet resolved. Either may be
// nil when the referenced record no longer exists.
type DonationDetails struct {
	Donation *domain.Donation
	Donor    *registrydomain.User
	Pet      *registrydomain.Pet
}

// Service exposes the donation intake pipeline to adapters.
type Service interface {
	RecordDonation(ctx context.Context, input RecordDonationInput) (*domain.Donation, error)
	Get(ctx context.Context, id int64) (*domain.Donation, error)
	List(ctx context.Context) ([]DonationDetails, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Donation, error)
	ListHistory(ctx context.Context, donationID int64) ([]*domain.HistoryEntry, error)
	GetReceipt(ctx context.Context, donationID int64) (*domain.Receipt, error)
}

// WorkflowOrchestrator runs donation intake, durably when a workflow engine is available.
type WorkflowOrchestrator interface {
	RecordDonation(ctx context.Context, input RecordDonationInput) (*domain.Donation, error)
}
