package repository

import (
	"context"

	"nexusmarket/internal/domain/entity"
)

type ProductFilter struct {
	Category string
	Query    string
	SellerID string
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// List returns matching products newest first plus the total match count.
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int64, error)
}
