package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"workmarket/internal/domain"
	"workmarket/internal/services"
	"workmarket/internal/store"
)

func newDB(t *testing.T) (*store.DB, *store.MemoryBackend) {
	t.Helper()
	mem := store.NewMemoryBackend()
	db := store.New(mem)
	t.Cleanup(func() { _ = db.Close() })
	return db, mem
}

func ptr[T any](v T) *T { return &v }

func createWorkshop(t *testing.T, svc *services.ListingService, owner string, seats int) domain.Listing {
	t.Helper()
	l, err := svc.Create(context.Background(), services.CreateListingInput{
		Title:       "Intro to Pottery",
		Description: "Hands-on wheel session",
		Price:       ptr(25.0),
		OwnerID:     ptr(owner),
		Type:        "workshop",
		Date:        "2026-11-05",
		Time:        "17:30",
		MaxSeats:    seats,
	})
	require.NoError(t, err)
	return l
}

func createThrift(t *testing.T, svc *services.ListingService, title string, price float64) domain.Listing {
	t.Helper()
	l, err := svc.Create(context.Background(), services.CreateListingInput{
		Title:       title,
		Description: "Gently used",
		Price:       ptr(price),
		OwnerID:     ptr("u-michael"),
	})
	require.NoError(t, err)
	return l
}
