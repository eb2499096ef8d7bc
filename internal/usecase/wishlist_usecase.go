package usecase

import (
	"context"
	"log"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

type WishlistUseCase struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistUseCase(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
) *WishlistUseCase {
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// AddToWishlist saves a snapshot of the product. Saving it twice is a no-op.
func (u *WishlistUseCase) AddToWishlist(ctx context.Context, userID, productID string) ([]entity.Product, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID() == userID {
		return nil, errors.BadRequest("Cannot add your own product to wishlist", nil)
	}

	if err := u.wishlistRepo.Add(ctx, userID, *product); err != nil {
		log.Printf("AddToWishlist Error: user %s product %s: %v", userID, productID, err)
		return nil, err
	}
	return u.wishlistRepo.List(ctx, userID)
}

func (u *WishlistUseCase) RemoveFromWishlist(ctx context.Context, userID, productID string) ([]entity.Product, error) {
	if err := u.wishlistRepo.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return u.wishlistRepo.List(ctx, userID)
}

func (u *WishlistUseCase) GetWishlist(ctx context.Context, userID string) ([]entity.Product, error) {
	return u.wishlistRepo.List(ctx, userID)
}

func (u *WishlistUseCase) IsInWishlist(ctx context.Context, userID, productID string) (bool, error) {
	return u.wishlistRepo.Contains(ctx, userID, productID)
}
