package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	registrypostgres "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/pawsitive-drive-server/internal/platform/postgres"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

var (
	_ ports.DonationRepository = (*DonationRepository)(nil)
	_ ports.HistoryRepository  = (*HistoryRepository)(nil)
	_ ports.ReceiptRepository  = (*ReceiptRepository)(nil)
	_ ports.IdempotencyStore   = (*IdempotencyStore)(nil)
)

var errNotConfigured = errors.New("postgres donation repository not configured")

// NewRepositories binds every donation repository to db.
func NewRepositories(db *gorm.DB) ports.Repositories {
	return ports.Repositories{
		Donations:   NewDonationRepository(db),
		History:     NewHistoryRepository(db),
		Receipts:    NewReceiptRepository(db),
		Idempotency: NewIdempotencyStore(db),
		Users:       registrypostgres.NewUserRepository(db),
		Pets:        registrypostgres.NewPetRepository(db),
	}
}

// DonationRepository persists donations with GORM. db may be a transaction handle.
type DonationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(ctx context.Context, donation *domain.Donation) (*domain.Donation, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	record := toDonationRecord(donation)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, platformpostgres.TranslateError(err)
	}
	return record.toDomain(), nil
}

func (r *DonationRepository) GetByID(ctx context.Context, id int64) (*domain.Donation, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var record donationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, ports.ErrDonationNotFound)
	}
	return record.toDomain(), nil
}

func (r *DonationRepository) List(ctx context.Context) ([]*domain.Donation, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	return r.find(ctx, r.db)
}

func (r *DonationRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Donation, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	return r.find(ctx, r.db.Where("user_id = ?", userID))
}

func (r *DonationRepository) find(ctx context.Context, query *gorm.DB) ([]*domain.Donation, error) {
	var records []donationRecord
	if err := query.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, platformpostgres.TranslateError(err)
	}
	donations := make([]*domain.Donation, 0, len(records))
	for i := range records {
		donations = append(donations, records[i].toDomain())
	}
	return donations, nil
}

// HistoryRepository appends donation history rows.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(ctx context.Context, entry *domain.HistoryEntry) (*domain.HistoryEntry, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	record := historyRecord{DonationID: entry.DonationID, Action: entry.Action, ActionDate: entry.ActionDate}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, platformpostgres.TranslateError(err)
	}
	return record.toDomain(), nil
}

func (r *HistoryRepository) ListByDonation(ctx context.Context, donationID int64) ([]*domain.HistoryEntry, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var records []historyRecord
	if err := r.db.WithContext(ctx).Where("donation_id = ?", donationID).Order("id").Find(&records).Error; err != nil {
		return nil, platformpostgres.TranslateError(err)
	}
	entries := make([]*domain.HistoryEntry, 0, len(records))
	for i := range records {
		entries = append(entries, records[i].toDomain())
	}
	return entries, nil
}

// ReceiptRepository persists receipts. donation_id and receipt_number are unique.
type ReceiptRepository struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

func (r *ReceiptRepository) Create(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	record := toReceiptRecord(receipt)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		err = platformpostgres.TranslateError(err)
		if errors.Is(err, sharederrors.ErrConflict) {
			return nil, ports.ErrReceiptExists
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *ReceiptRepository) GetByDonation(ctx context.Context, donationID int64) (*domain.Receipt, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var record receiptRecord
	if err := r.db.WithContext(ctx).First(&record, "donation_id = ?", donationID).Error; err != nil {
		return nil, notFoundOr(err, ports.ErrReceiptNotFound)
	}
	return record.toDomain(), nil
}

// IdempotencyStore persists idempotency keys in PostgreSQL.
type IdempotencyStore struct {
	db *gorm.DB
}

// NewIdempotencyStore wires a PostgreSQL-backed idempotency store.
func NewIdempotencyStore(db *gorm.DB) *IdempotencyStore {
	return &IdempotencyStore{db: db}
}

// Get loads a record by key, returning nil when absent.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	if s == nil || s.db == nil {
		return nil, errNotConfigured
	}
	var record idempotencyRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformpostgres.TranslateError(err)
	}
	return toPortRecord(&record), nil
}

// Save inserts the record. A concurrent insert of the same key surfaces as
// ErrIdempotencyConflict; inside a transaction the statement error aborts it,
// so the stored record cannot be re-read here.
func (s *IdempotencyStore) Save(ctx context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	if s == nil || s.db == nil {
		return nil, errNotConfigured
	}
	dbRecord := idempotencyRecord{
		Key:         record.Key,
		RequestHash: record.RequestHash,
		DonationID:  record.DonationID,
		CreatedAt:   record.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&dbRecord).Error; err != nil {
		err = platformpostgres.TranslateError(err)
		if errors.Is(err, sharederrors.ErrConflict) {
			return nil, ports.ErrIdempotencyConflict
		}
		return nil, err
	}
	return toPortRecord(&dbRecord), nil
}

func notFoundOr(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return platformpostgres.TranslateError(err)
}
