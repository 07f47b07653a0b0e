package ports

import (
	"context"
	"time"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	registryports "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

var (
	ErrDonationNotFound    = sharederrors.New(sharederrors.KindNotFound, "donation not found")
	ErrReceiptNotFound     = sharederrors.New(sharederrors.KindNotFound, "donation receipt not found")
	ErrReceiptExists       = sharederrors.New(sharederrors.KindConflict, "donation receipt already issued")
	ErrIdempotencyConflict = sharederrors.New(sharederrors.KindConflict, "idempotency key reused with a different request")
)

// DonationRepository stores donations. List results are ordered by id.
type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) (*domain.Donation, error)
	GetByID(ctx context.Context, id int64) (*domain.Donation, error)
	List(ctx context.Context) ([]*domain.Donation, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Donation, error)
}

// HistoryRepository is the append-only audit trail of donations.
type HistoryRepository interface {
	Append(ctx context.Context, entry *domain.HistoryEntry) (*domain.HistoryEntry, error)
	ListByDonation(ctx context.Context, donationID int64) ([]*domain.HistoryEntry, error)
}

// ReceiptRepository stores one receipt per donation. Create returns
// ErrReceiptExists when the donation already has one or the number is taken.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error)
	GetByDonation(ctx context.Context, donationID int64) (*domain.Receipt, error)
}

// IdempotencyRecord ties a client-supplied key to the donation it produced.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	DonationID  int64
	CreatedAt   time.Time
}

// IdempotencyStore persists idempotency keys so retries can be replayed safely.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save inserts the record. An existing key yields ErrIdempotencyConflict.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}

// Repositories is the set of stores a donation operation reads and writes.
// Inside UnitOfWork.Do every repository shares one transaction.
type Repositories struct {
	Donations   DonationRepository
	History     HistoryRepository
	Receipts    ReceiptRepository
	Idempotency IdempotencyStore
	Users       registryports.UserRepository
	Pets        registryports.PetRepository
}

// UnitOfWork runs fn as one atomic unit. Any error from fn rolls back every write.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
