package memory

import (
	"context"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/memstore"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore provides an in-memory implementation for development and tests.
type IdempotencyStore struct {
	store   *memstore.Store
	records *memstore.Table[string, ports.IdempotencyRecord]
}

// NewIdempotencyStore attaches an empty key table to store.
func NewIdempotencyStore(store *memstore.Store) *IdempotencyStore {
	return &IdempotencyStore{
		store:   store,
		records: memstore.NewTable[string, ports.IdempotencyRecord](store, "donation_idempotency_keys"),
	}
}

// Get returns the stored record for the provided key, or nil when absent.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	var found *ports.IdempotencyRecord
	err := s.store.Read(ctx, func() error {
		if record, ok := s.records.Get(key); ok {
			found = &record
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Save persists the record. A key that is already stored is a conflict.
func (s *IdempotencyStore) Save(ctx context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	err := s.store.Write(ctx, func() error {
		if _, ok := s.records.Get(record.Key); ok {
			return ports.ErrIdempotencyConflict
		}
		s.records.Put(record.Key, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}
