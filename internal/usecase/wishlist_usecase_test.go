package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusmarket/pkg/errors"
)

func TestWishlistFlow(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	seller := f.register(t, "Sam", "sam@example.com")
	buyer := f.register(t, "Bea", "bea@example.com")
	lamp := f.listProduct(t, seller.ID, "Lamp")

	items, err := f.wishlist.AddToWishlist(ctx, buyer.ID, lamp.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = f.wishlist.AddToWishlist(ctx, buyer.ID, lamp.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	saved, err := f.wishlist.IsInWishlist(ctx, buyer.ID, lamp.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	items, err = f.wishlist.RemoveFromWishlist(ctx, buyer.ID, lamp.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWishlistRejectsOwnAndUnknownProducts(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	seller := f.register(t, "Sam", "sam@example.com")
	lamp := f.listProduct(t, seller.ID, "Lamp")

	_, err := f.wishlist.AddToWishlist(ctx, seller.ID, lamp.ID)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = f.wishlist.AddToWishlist(ctx, seller.ID, "missing")
	assert.True(t, errors.IsNotFound(err))
}
