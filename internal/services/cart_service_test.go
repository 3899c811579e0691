package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workmarket/internal/domain"
	"workmarket/internal/services"
)

func TestCartService_AddClampsQuantity(t *testing.T) {
	db, _ := newDB(t)
	svc := services.NewCartService(db)
	ctx := context.Background()

	e, err := svc.Add(ctx, services.AddToCartInput{ListingID: "l-1", Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, e.Quantity)

	e, err = svc.Add(ctx, services.AddToCartInput{ListingID: "l-1", Quantity: 500})
	require.NoError(t, err)
	assert.Equal(t, 50, e.Quantity)

	_, err = svc.Add(ctx, services.AddToCartInput{ListingID: " "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCartService_Remove(t *testing.T) {
	db, _ := newDB(t)
	svc := services.NewCartService(db)
	ctx := context.Background()

	e, err := svc.Add(ctx, services.AddToCartInput{ListingID: "l-1", Quantity: 2})
	require.NoError(t, err)

	removed, err := svc.Remove(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, removed.ID)

	_, err = svc.Remove(ctx, e.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartService_Summary(t *testing.T) {
	db, _ := newDB(t)
	listings := services.NewListingService(db, nil)
	orders := services.NewOrderService(db, nil)
	svc := services.NewCartService(db)
	ctx := context.Background()

	mug := createThrift(t, listings, "Mug", 0.1)
	plate := createThrift(t, listings, "Plate", 0.2)
	sold := createThrift(t, listings, "Vase", 30)

	_, err := svc.Add(ctx, services.AddToCartInput{ListingID: mug.ID, Quantity: 3})
	require.NoError(t, err)
	_, err = svc.Add(ctx, services.AddToCartInput{ListingID: plate.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Add(ctx, services.AddToCartInput{ListingID: "l-gone", Quantity: 1})
	require.NoError(t, err)

	// buying the vase drops it from the cart; re-add to see it flagged
	_, err = orders.Purchase(ctx, services.PurchaseInput{ListingID: sold.ID, BuyerID: "u-sarah"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, services.AddToCartInput{ListingID: sold.ID, Quantity: 1})
	require.NoError(t, err)

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, sum.Lines, 4)
	assert.Equal(t, "0.5", sum.Total.String())
	assert.Equal(t, 4, sum.Items)

	assert.True(t, sum.Lines[0].Available)
	assert.Equal(t, "0.3", sum.Lines[0].Subtotal.String())
	assert.False(t, sum.Lines[2].Available)
	assert.Empty(t, sum.Lines[2].Title)
	assert.False(t, sum.Lines[3].Available)
	assert.Equal(t, "Vase", sum.Lines[3].Title)
}

func TestMessageService_SendAndList(t *testing.T) {
	db, _ := newDB(t)
	svc := services.NewMessageService(db)
	ctx := context.Background()

	m, err := svc.Send(ctx, services.SendMessageInput{From: "u-sarah", To: "u-michael", Text: "Is the jacket <i>still</i> available?"})
	require.NoError(t, err)
	assert.Equal(t, "Is the jacket still available?", m.Text)
	assert.NotEmpty(t, m.ID)

	_, err = svc.Send(ctx, services.SendMessageInput{From: "u-emma", To: "u-david", Text: "See you at the workshop"})
	require.NoError(t, err)

	_, err = svc.Send(ctx, services.SendMessageInput{From: "u-emma", To: "u-david"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Send(ctx, services.SendMessageInput{From: "u-emma", To: "u-david", Text: "<b></b>"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	michael, err := svc.List(ctx, "u-michael")
	require.NoError(t, err)
	require.Len(t, michael, 1)
	assert.Equal(t, "u-sarah", michael[0].From)
}
