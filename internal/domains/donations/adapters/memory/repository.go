package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	registryports "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/memstore"
)

var (
	_ ports.DonationRepository = (*DonationRepository)(nil)
	_ ports.HistoryRepository  = (*HistoryRepository)(nil)
	_ ports.ReceiptRepository  = (*ReceiptRepository)(nil)
)

// NewRepositories attaches the donation tables to store and bundles them with
// the registry repositories of the same store.
func NewRepositories(store *memstore.Store, users registryports.UserRepository, pets registryports.PetRepository) ports.Repositories {
	return ports.Repositories{
		Donations:   NewDonationRepository(store),
		History:     NewHistoryRepository(store),
		Receipts:    NewReceiptRepository(store),
		Idempotency: NewIdempotencyStore(store),
		Users:       users,
		Pets:        pets,
	}
}

// DonationRepository keeps donations in a memstore table.
type DonationRepository struct {
	store *memstore.Store
	rows  *memstore.Table[int64, domain.Donation]
}

func NewDonationRepository(store *memstore.Store) *DonationRepository {
	return &DonationRepository{store: store, rows: memstore.NewTable[int64, domain.Donation](store, "donations")}
}

func (r *DonationRepository) Create(ctx context.Context, donation *domain.Donation) (*domain.Donation, error) {
	clone := donation.Clone()
	err := r.store.Write(ctx, func() error {
		if clone.ID == 0 {
			clone.ID = r.rows.NextID()
		} else {
			r.rows.Observe(clone.ID)
		}
		r.rows.Put(clone.ID, *clone.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}

func (r *DonationRepository) GetByID(ctx context.Context, id int64) (*domain.Donation, error) {
	var found *domain.Donation
	err := r.store.Read(ctx, func() error {
		d, ok := r.rows.Get(id)
		if !ok {
			return ports.ErrDonationNotFound
		}
		found = d.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *DonationRepository) List(ctx context.Context) ([]*domain.Donation, error) {
	return r.filter(ctx, func(*domain.Donation) bool { return true })
}

func (r *DonationRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Donation, error) {
	return r.filter(ctx, func(d *domain.Donation) bool { return d.UserID == userID })
}

func (r *DonationRepository) filter(ctx context.Context, keep func(*domain.Donation) bool) ([]*domain.Donation, error) {
	list := []*domain.Donation{}
	err := r.store.Read(ctx, func() error {
		for _, d := range r.rows.Values() {
			if keep(&d) {
				list = append(list, d.Clone())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(list, func(a, b *domain.Donation) int { return cmp.Compare(a.ID, b.ID) })
	return list, nil
}

// HistoryRepository keeps donation history entries in a memstore table.
type HistoryRepository struct {
	store *memstore.Store
	rows  *memstore.Table[int64, domain.HistoryEntry]
}

func NewHistoryRepository(store *memstore.Store) *HistoryRepository {
	return &HistoryRepository{store: store, rows: memstore.NewTable[int64, domain.HistoryEntry](store, "donation_history")}
}

func (r *HistoryRepository) Append(ctx context.Context, entry *domain.HistoryEntry) (*domain.HistoryEntry, error) {
	clone := *entry
	err := r.store.Write(ctx, func() error {
		clone.ID = r.rows.NextID()
		r.rows.Put(clone.ID, clone)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

func (r *HistoryRepository) ListByDonation(ctx context.Context, donationID int64) ([]*domain.HistoryEntry, error) {
	list := []*domain.HistoryEntry{}
	err := r.store.Read(ctx, func() error {
		for _, entry := range r.rows.Values() {
			if entry.DonationID == donationID {
				list = append(list, &entry)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(list, func(a, b *domain.HistoryEntry) int { return cmp.Compare(a.ID, b.ID) })
	return list, nil
}

// ReceiptRepository keeps receipts keyed by donation id.
type ReceiptRepository struct {
	store *memstore.Store
	rows  *memstore.Table[int64, domain.Receipt]
}

func NewReceiptRepository(store *memstore.Store) *ReceiptRepository {
	return &ReceiptRepository{store: store, rows: memstore.NewTable[int64, domain.Receipt](store, "donation_receipts")}
}

func (r *ReceiptRepository) Create(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error) {
	clone := *receipt
	err := r.store.Write(ctx, func() error {
		if _, ok := r.rows.Get(clone.DonationID); ok {
			return ports.ErrReceiptExists
		}
		for _, existing := range r.rows.Values() {
			if existing.ReceiptNumber == clone.ReceiptNumber {
				return ports.ErrReceiptExists
			}
		}
		clone.ID = r.rows.NextID()
		r.rows.Put(clone.DonationID, clone)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

func (r *ReceiptRepository) GetByDonation(ctx context.Context, donationID int64) (*domain.Receipt, error) {
	var found *domain.Receipt
	err := r.store.Read(ctx, func() error {
		receipt, ok := r.rows.Get(donationID)
		if !ok {
			return ports.ErrReceiptNotFound
		}
		found = &receipt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
