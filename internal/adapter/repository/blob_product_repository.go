package repository

import (
	"context"
	"sort"
	"strings"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
	"nexusmarket/pkg/utils"
)

// AllCategories disables the category filter.
const AllCategories = "All"

type blobProductRepository struct {
	store repository.BlobStore
}

func NewBlobProductRepository(store repository.BlobStore) repository.ProductRepository {
	return &blobProductRepository{store: store}
}

func decodeProducts(raw []byte) []*entity.Product {
	return decodeList(repository.ProductsKey, raw, func(p *entity.Product) bool {
		return p.ID != ""
	})
}

func (r *blobProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.store.Update(ctx, repository.ProductsKey, func(current []byte) ([]byte, error) {
		products := decodeProducts(current)
		for _, p := range products {
			if p.ID == product.ID {
				return nil, errors.Conflict("Product already exists", nil)
			}
		}
		// newest first, the order listings are served in
		products = append([]*entity.Product{product}, products...)
		return encode(repository.ProductsKey, products)
	})
}

func (r *blobProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	raw, err := r.store.Get(ctx, repository.ProductsKey)
	if err != nil {
		return nil, err
	}
	for _, p := range decodeProducts(raw) {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.NotFound("Product", nil)
}

func (r *blobProductRepository) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	raw, err := r.store.Get(ctx, repository.ProductsKey)
	if err != nil {
		return nil, 0, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	matches := make([]*entity.Product, 0)
	for _, p := range decodeProducts(raw) {
		if filter.Category != "" && !strings.EqualFold(filter.Category, AllCategories) &&
			!strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if filter.SellerID != "" && p.SellerID() != filter.SellerID {
			continue
		}
		matches = append(matches, p)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt > matches[j].CreatedAt
	})

	start, end := utils.Window(len(matches), limit, offset)
	return matches[start:end], int64(len(matches)), nil
}
