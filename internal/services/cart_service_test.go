package services_test

import (
	"context"
	"testing"

	"storefront/internal/apperrors"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddOrMerge(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "alice")
	laptop := seedProduct(t, store, "Laptop", 1000, 10)
	carts := services.NewCartService(store)

	first, created, err := carts.AddOrMerge(ctx, user.ID, laptop.ID, 1)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, first.Quantity)

	merged, created, err := carts.AddOrMerge(ctx, user.ID, laptop.ID, 1)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 2, merged.Quantity)

	cart, err := carts.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2000.0, cart.Items[0].Subtotal)
	assert.Equal(t, 2000.0, cart.TotalPrice)
}

func TestCartService_AddOrMerge_Rejects(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "bob")
	product := seedProduct(t, store, "Mouse", 25, 10)
	carts := services.NewCartService(store)

	_, _, err := carts.AddOrMerge(ctx, user.ID, product.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, err = carts.AddOrMerge(ctx, user.ID, "no-such-product", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, _, err = carts.AddOrMerge(ctx, "no-such-user", product.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	n, err := store.Carts.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCartService_GetCart_Empty(t *testing.T) {
	store := setupStore(t)
	user := seedUser(t, store, "carol")

	cart, err := services.NewCartService(store).GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.TotalPrice)
}

func TestCartService_GetCart_SkipsDeletedProducts(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "dave")
	keep := seedProduct(t, store, "Keyboard", 75, 10)
	gone := seedProduct(t, store, "Webcam", 50, 10)
	carts := services.NewCartService(store)

	_, _, err := carts.AddOrMerge(ctx, user.ID, keep.ID, 2)
	require.NoError(t, err)
	_, _, err = carts.AddOrMerge(ctx, user.ID, gone.ID, 1)
	require.NoError(t, err)
	require.NoError(t, store.Products.Delete(ctx, gone.ID))

	cart, err := carts.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, keep.ID, cart.Items[0].ProductID)
	assert.Equal(t, 150.0, cart.TotalPrice)
}

func TestCartService_ClearCart(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "erin")
	product := seedProduct(t, store, "Monitor", 300, 5)
	carts := services.NewCartService(store)

	_, _, err := carts.AddOrMerge(ctx, user.ID, product.ID, 1)
	require.NoError(t, err)

	cleared, err := carts.ClearCart(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, cleared)

	cleared, err = carts.ClearCart(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, cleared)

	cart, err := carts.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_ClearCart_OnlyDeletedProducts(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "frank")
	product := seedProduct(t, store, "Router", 90, 5)
	carts := services.NewCartService(store)

	_, _, err := carts.AddOrMerge(ctx, user.ID, product.ID, 1)
	require.NoError(t, err)
	require.NoError(t, store.Products.Delete(ctx, product.ID))

	cart, err := carts.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	cleared, err := carts.ClearCart(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, cleared)

	n, err := store.Carts.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
