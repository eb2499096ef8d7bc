package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nexusmarket/internal/adapter/repository"
	"nexusmarket/internal/domain/entity"
	domainrepo "nexusmarket/internal/domain/repository"
	"nexusmarket/internal/infrastructure/blobstore"
	"nexusmarket/internal/infrastructure/ratelimit"
	"nexusmarket/internal/infrastructure/token"
)

type fixture struct {
	users         domainrepo.UserRepository
	products      domainrepo.ProductRepository
	conversations domainrepo.ConversationRepository
	wishlists     domainrepo.WishlistRepository
	jobs          domainrepo.JobRepository
	applications  domainrepo.ApplicationRepository

	auth      *AuthUseCase
	user      *UserUseCase
	chat      *ChatUseCase
	product   *ProductUseCase
	wishlist  *WishlistUseCase
	job       *JobUseCase
	dashboard *DashboardUseCase
}

func newFixture(t *testing.T, limiter *ratelimit.RateLimiter) *fixture {
	t.Helper()
	store := blobstore.NewMemory()
	f := &fixture{
		users:         repository.NewBlobUserRepository(store),
		products:      repository.NewBlobProductRepository(store),
		conversations: repository.NewBlobConversationRepository(store),
		wishlists:     repository.NewBlobWishlistRepository(store),
		jobs:          repository.NewBlobJobRepository(store),
		applications:  repository.NewBlobApplicationRepository(store),
	}

	jwtManager := token.NewJWTManager("test-secret", time.Hour)
	f.auth = NewAuthUseCase(f.users, jwtManager, jwtManager)
	f.user = NewUserUseCase(f.users)
	f.chat = NewChatUseCase(f.conversations, f.users, f.products, limiter)
	f.product = NewProductUseCase(f.products, f.users)
	f.wishlist = NewWishlistUseCase(f.wishlists, f.products)
	f.job = NewJobUseCase(f.jobs, f.applications, f.users)
	f.dashboard = NewDashboardUseCase(f.products, f.jobs, f.applications, f.conversations)
	return f
}

func (f *fixture) register(t *testing.T, name, email string) *entity.User {
	t.Helper()
	result, err := f.auth.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "secret123"})
	require.NoError(t, err)
	return result.User
}

func (f *fixture) listProduct(t *testing.T, sellerID, name string) *entity.Product {
	t.Helper()
	product, err := f.product.CreateProduct(context.Background(), sellerID, CreateProductInput{
		Name:     name,
		Price:    45,
		Category: "Home & Garden",
	})
	require.NoError(t, err)
	return product
}

func (f *fixture) postJob(t *testing.T, posterID, title string) *entity.JobPosting {
	t.Helper()
	job, err := f.job.CreateJob(context.Background(), posterID, CreateJobInput{
		Title:    title,
		Company:  "Nexus",
		Location: "Remote",
		Type:     "full-time",
	})
	require.NoError(t, err)
	return job
}
