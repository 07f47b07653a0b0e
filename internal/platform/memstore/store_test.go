package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

func TestRunInTransaction_CommitsOnSuccess(t *testing.T) {
	store := New()
	names := NewTable[int64, string](store, "names")

	err := store.RunInTransaction(context.Background(), func(ctx context.Context) error {
		id := names.NextID()
		names.Put(id, "Bella")
		return nil
	})
	require.NoError(t, err)

	got, ok := names.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Bella", got)
}

func TestRunInTransaction_RollsBackEveryTable(t *testing.T) {
	store := New()
	donations := NewTable[int64, string](store, "donations")
	receipts := NewTable[int64, string](store, "receipts")
	donations.Put(donations.NextID(), "existing")

	boom := errors.New("receipt insert failed")
	err := store.RunInTransaction(context.Background(), func(ctx context.Context) error {
		donations.Put(donations.NextID(), "new")
		receipts.Put(receipts.NextID(), "REC-2")
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, 1, donations.Len())
	assert.Equal(t, 0, receipts.Len())
	assert.Equal(t, int64(2), donations.NextID())
}

func TestRunInTransaction_RollsBackOnPanic(t *testing.T) {
	store := New()
	donations := NewTable[int64, string](store, "donations")

	assert.Panics(t, func() {
		_ = store.RunInTransaction(context.Background(), func(ctx context.Context) error {
			donations.Put(donations.NextID(), "half written")
			panic("receipt renderer crashed")
		})
	})

	assert.Equal(t, 0, donations.Len())
	require.NoError(t, store.Write(context.Background(), func() error {
		donations.Put(donations.NextID(), "after")
		return nil
	}))
	got, ok := donations.Get(1)
	require.True(t, ok)
	assert.Equal(t, "after", got)
}

func TestRunInTransaction_NestedJoinsOuter(t *testing.T) {
	store := New()
	rows := NewTable[string, int](store, "rows")

	err := store.RunInTransaction(context.Background(), func(ctx context.Context) error {
		rows.Put("a", 1)
		require.NoError(t, store.Write(ctx, func() error {
			rows.Put("b", 2)
			return nil
		}))
		return store.RunInTransaction(ctx, func(ctx context.Context) error {
			return errors.New("inner failure")
		})
	})
	require.Error(t, err)
	assert.Equal(t, 0, rows.Len())
}

func TestRead_CanceledContextIsTransient(t *testing.T) {
	store := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Read(ctx, func() error { return nil })
	require.ErrorIs(t, err, sharederrors.ErrTransient)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWrite_SerialisesConcurrentWriters(t *testing.T) {
	store := New()
	counter := NewTable[string, int](store, "counter")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Write(context.Background(), func() error {
				n, _ := counter.Get("n")
				counter.Put("n", n+1)
				return nil
			})
		}()
	}
	wg.Wait()

	var n int
	require.NoError(t, store.Read(context.Background(), func() error {
		n, _ = counter.Get("n")
		return nil
	}))
	assert.Equal(t, 50, n)
}
