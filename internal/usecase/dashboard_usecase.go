package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
)

type DashboardUseCase struct {
	productRepo      repository.ProductRepository
	jobRepo          repository.JobRepository
	applicationRepo  repository.ApplicationRepository
	conversationRepo repository.ConversationRepository
}

func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	jobRepo repository.JobRepository,
	applicationRepo repository.ApplicationRepository,
	conversationRepo repository.ConversationRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		productRepo:      productRepo,
		jobRepo:          jobRepo,
		applicationRepo:  applicationRepo,
		conversationRepo: conversationRepo,
	}
}

type DashboardStats struct {
	Products          int64          `json:"products"`
	Jobs              int64          `json:"jobs"`
	TotalListingValue float64        `json:"totalListingValue"`
	Categories        map[string]int `json:"categories"`

	MyListings     int64 `json:"myListings"`
	MyJobs         int64 `json:"myJobs"`
	MyApplications int   `json:"myApplications"`
	UnreadMessages int   `json:"unreadMessages"`
}

// Stats summarizes the marketplace plus the caller's own activity.
func (uc *DashboardUseCase) Stats(ctx context.Context, userID string) (*DashboardStats, error) {
	stats := &DashboardStats{Categories: make(map[string]int)}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, total, err := uc.productRepo.List(ctx, repository.ProductFilter{}, 0, 0)
		if err != nil {
			return err
		}
		stats.Products = total
		for _, p := range products {
			stats.TotalListingValue += p.Price
			stats.Categories[p.Category]++
			if p.SellerID() == userID {
				stats.MyListings++
			}
		}
		return nil
	})
	g.Go(func() error {
		_, total, err := uc.jobRepo.List(ctx, repository.JobFilter{}, 0, 0)
		if err != nil {
			return err
		}
		stats.Jobs = total
		_, mine, err := uc.jobRepo.List(ctx, repository.JobFilter{PosterID: userID}, 0, 0)
		if err != nil {
			return err
		}
		stats.MyJobs = mine
		return nil
	})
	g.Go(func() error {
		applications, err := uc.applicationRepo.List(ctx, repository.ApplicationFilter{ApplicantID: userID})
		if err != nil {
			return err
		}
		stats.MyApplications = len(applications)
		return nil
	})
	g.Go(func() error {
		conversations, err := uc.conversationRepo.ListByUserID(ctx, userID)
		if err != nil {
			return err
		}
		stats.UnreadMessages = unreadTotal(conversations, userID)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func unreadTotal(conversations []*entity.Conversation, userID string) int {
	n := 0
	for _, c := range conversations {
		n += c.UnreadCount(userID)
	}
	return n
}
