// Package memstore is the in-memory registry store used when no database is
// configured. A Store owns a set of tables; RunInTransaction snapshots every
// table, runs the callback, and restores the snapshots if the callback fails.
package memstore

import (
	"context"
	"fmt"
	"sync"

	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

type table interface {
	snapshot() any
	restore(state any)
}

// Store serialises writers and lets readers share access. Transactions hold the
// write lock for their whole duration.
type Store struct {
	mu     sync.RWMutex
	tables []table
}

// New returns an empty store. Tables are attached with NewTable.
func New() *Store {
	return &Store{}
}

type txKey struct{}

// RunInTransaction executes fn atomically. Nested calls on a context that is
// already inside a transaction of this store join the outer transaction.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return sharederrors.Newf(sharederrors.KindTransient, "memstore: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshots := make([]any, len(s.tables))
	for i, t := range s.tables {
		snapshots[i] = t.snapshot()
	}
	committed := false
	defer func() {
		if !committed {
			for i, t := range s.tables {
				t.restore(snapshots[i])
			}
		}
	}()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		return err
	}
	committed = true
	return nil
}

// Read runs fn under a shared lock, or directly when ctx is inside a transaction.
func (s *Store) Read(ctx context.Context, fn func() error) error {
	if s.inTx(ctx) {
		return fn()
	}
	if err := ctx.Err(); err != nil {
		return sharederrors.Newf(sharederrors.KindTransient, "memstore: %w", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

// Write runs fn under the exclusive lock. Outside a transaction a failing fn
// is rolled back on its own.
func (s *Store) Write(ctx context.Context, fn func() error) error {
	if s.inTx(ctx) {
		return fn()
	}
	return s.RunInTransaction(ctx, func(context.Context) error { return fn() })
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// Table is a keyed collection of values with an auto-increment sequence.
// Values are stored by value; callers must not retain pointers into them.
type Table[K comparable, V any] struct {
	name   string
	rows   map[K]V
	nextID int64
}

type tableState[K comparable, V any] struct {
	rows   map[K]V
	nextID int64
}

// NewTable attaches a table to s. Tables must be created before the store is used.
func NewTable[K comparable, V any](s *Store, name string) *Table[K, V] {
	t := &Table[K, V]{name: name, rows: map[K]V{}}
	s.mu.Lock()
	s.tables = append(s.tables, t)
	s.mu.Unlock()
	return t
}

// Get returns the value stored under key.
func (t *Table[K, V]) Get(key K) (V, bool) {
	v, ok := t.rows[key]
	return v, ok
}

// Put stores v under key, replacing any previous value.
func (t *Table[K, V]) Put(key K, v V) {
	t.rows[key] = v
}

// Delete removes key. Missing keys are ignored.
func (t *Table[K, V]) Delete(key K) {
	delete(t.rows, key)
}

// NextID advances the sequence and returns the new value.
func (t *Table[K, V]) NextID() int64 {
	t.nextID++
	return t.nextID
}

// Observe moves the sequence forward so that id is never handed out again.
func (t *Table[K, V]) Observe(id int64) {
	if id > t.nextID {
		t.nextID = id
	}
}

// Values returns every stored value in no particular order.
func (t *Table[K, V]) Values() []V {
	out := make([]V, 0, len(t.rows))
	for _, v := range t.rows {
		out = append(out, v)
	}
	return out
}

// Len reports the number of rows.
func (t *Table[K, V]) Len() int {
	return len(t.rows)
}

func (t *Table[K, V]) String() string {
	return fmt.Sprintf("memstore.Table(%s, %d rows)", t.name, len(t.rows))
}

func (t *Table[K, V]) snapshot() any {
	rows := make(map[K]V, len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}
	return tableState[K, V]{rows: rows, nextID: t.nextID}
}

func (t *Table[K, V]) restore(state any) {
	st := state.(tableState[K, V])
	t.rows = st.rows
	t.nextID = st.nextID
}
