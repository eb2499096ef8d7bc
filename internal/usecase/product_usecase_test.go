package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainrepo "nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

func TestCreateProductSnapshotsSeller(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	seller := f.register(t, "Sam", "sam@example.com")

	product, err := f.product.CreateProduct(ctx, seller.ID, CreateProductInput{
		Name:      " Desk Lamp ",
		Price:     45,
		Category:  "home & garden",
		ImageURLs: []string{"https://img/1.jpg", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", product.Name)
	assert.Equal(t, "Home & Garden", product.Category)
	assert.Equal(t, []string{"https://img/1.jpg"}, product.ImageURLs)
	require.NotNil(t, product.Seller)
	assert.Equal(t, seller.ID, product.Seller.ID)
	assert.Equal(t, "sam@example.com", product.Seller.Email)

	got, err := f.product.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, got.Name)

	items, total, err := f.product.ListProducts(ctx, domainrepo.ProductFilter{Query: "lamp"}, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, items, 1)
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	f := newFixture(t, nil)
	seller := f.register(t, "Sam", "sam@example.com")

	_, err := f.product.CreateProduct(context.Background(), seller.ID, CreateProductInput{Name: "Thing", Category: "Jobs"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}
