package repository

import (
	"context"
	"encoding/json"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/logger"
)

type blobWishlistRepository struct {
	store repository.BlobStore
}

func NewBlobWishlistRepository(store repository.BlobStore) repository.WishlistRepository {
	return &blobWishlistRepository{store: store}
}

func decodeWishlists(raw []byte) entity.Wishlists {
	wishlists := entity.Wishlists{}
	if len(raw) == 0 {
		return wishlists
	}
	if err := json.Unmarshal(raw, &wishlists); err != nil {
		logger.Warn("decodeWishlists: %s is malformed, treating as empty: %v", repository.WishlistsKey, err)
		return entity.Wishlists{}
	}
	return wishlists
}

func (r *blobWishlistRepository) load(ctx context.Context) (entity.Wishlists, error) {
	raw, err := r.store.Get(ctx, repository.WishlistsKey)
	if err != nil {
		return nil, err
	}
	return decodeWishlists(raw), nil
}

func (r *blobWishlistRepository) Add(ctx context.Context, userID string, product entity.Product) error {
	return r.store.Update(ctx, repository.WishlistsKey, func(current []byte) ([]byte, error) {
		wishlists := decodeWishlists(current)
		if wishlists.Contains(userID, product.ID) {
			return nil, nil
		}
		wishlists[userID] = append(wishlists[userID], product)
		return encode(repository.WishlistsKey, wishlists)
	})
}

// Remove is a no-op when the product is not saved.
func (r *blobWishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	return r.store.Update(ctx, repository.WishlistsKey, func(current []byte) ([]byte, error) {
		wishlists := decodeWishlists(current)
		if !wishlists.Contains(userID, productID) {
			return nil, nil
		}

		kept := make([]entity.Product, 0, len(wishlists[userID]))
		for _, p := range wishlists[userID] {
			if p.ID != productID {
				kept = append(kept, p)
			}
		}
		wishlists[userID] = kept
		return encode(repository.WishlistsKey, wishlists)
	})
}

func (r *blobWishlistRepository) List(ctx context.Context, userID string) ([]entity.Product, error) {
	wishlists, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return append([]entity.Product{}, wishlists[userID]...), nil
}

func (r *blobWishlistRepository) Contains(ctx context.Context, userID, productID string) (bool, error) {
	wishlists, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	return wishlists.Contains(userID, productID), nil
}
