package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	Category    string
	ImageURLs   []string
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, sellerID string, input CreateProductInput) (*entity.Product, error) {
	category, ok := entity.CanonicalCategory(input.Category)
	if !ok {
		return nil, errors.BadRequest("Unknown category: "+input.Category, nil)
	}

	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.BadRequest("Invalid seller", err)
	}
	info := seller.SellerInfo()

	imageURLs := make([]string, 0, len(input.ImageURLs))
	for _, url := range input.ImageURLs {
		if url = strings.TrimSpace(url); url != "" {
			imageURLs = append(imageURLs, url)
		}
	}

	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Description: strings.TrimSpace(input.Description),
		ImageURLs:   imageURLs,
		Category:    category,
		CreatedAt:   time.Now().UnixMilli(),
		Seller:      &info,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		log.Printf("CreateProduct Error: Failed to save product for %s: %v", sellerID, err)
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.List(ctx, filter, limit, offset)
}
