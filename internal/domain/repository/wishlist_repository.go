package repository

import (
	"context"

	"nexusmarket/internal/domain/entity"
)

type WishlistRepository interface {
	// Add stores a snapshot of product; adding a saved product is a no-op.
	Add(ctx context.Context, userID string, product entity.Product) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]entity.Product, error)
	Contains(ctx context.Context, userID, productID string) (bool, error)
}
