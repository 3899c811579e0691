package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workmarket/internal/domain"
	"workmarket/internal/store"
)

func memSQLite(t *testing.T) *store.SQLiteBackend {
	t.Helper()
	b, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestSQLiteBackend_RoundTrip(t *testing.T) {
	b := memSQLite(t)
	ctx := context.Background()

	_, err := b.Load(ctx)
	require.ErrorIs(t, err, store.ErrNotExist)

	doc := store.NewDocument()
	doc.Orders = append(doc.Orders, domain.Order{ID: "o1", ListingID: "l1", BuyerID: "u1", Quantity: 1})
	require.NoError(t, b.Save(ctx, doc))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Orders, 1)
	assert.Equal(t, "u1", got.Orders[0].BuyerID)

	v, err := b.Version(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, v)
}

func TestSQLiteBackend_StaleWriteConflicts(t *testing.T) {
	b := memSQLite(t)
	ctx := context.Background()
	require.NoError(t, b.Save(ctx, store.NewDocument()))

	first, err := b.Load(ctx)
	require.NoError(t, err)
	second, err := b.Load(ctx)
	require.NoError(t, err)

	first.Messages = append(first.Messages, domain.Message{ID: "m1"})
	require.NoError(t, b.Save(ctx, first))

	second.Messages = append(second.Messages, domain.Message{ID: "m2"})
	require.ErrorIs(t, b.Save(ctx, second), store.ErrConflict)

	got, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "m1", got.Messages[0].ID)
}

func TestSQLiteBackend_BehindDB(t *testing.T) {
	db := store.New(memSQLite(t))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Update(ctx, func(d *store.Document) error {
			d.Cart = append(d.Cart, domain.CartEntry{ID: "c", ListingID: "l1", Quantity: 1})
			return nil
		}))
	}
	require.NoError(t, db.View(ctx, func(d *store.Document) error {
		assert.Len(t, d.Cart, 3)
		return nil
	}))
}

func TestRedisBackend_RoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()
	b, err := store.OpenRedis(ctx, url, "workmarket:test:document")
	require.NoError(t, err)
	defer b.Close()

	doc := store.NewDocument()
	doc.Users = append(doc.Users, domain.User{ID: "u1", Email: "a@company.com"})
	require.NoError(t, b.Save(ctx, doc))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Users, 1)
}
