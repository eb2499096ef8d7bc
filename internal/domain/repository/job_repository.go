package repository

import (
	"context"

	"nexusmarket/internal/domain/entity"
)

type JobFilter struct {
	// Query matches title, company, location or description.
	Query    string
	Type     string
	PosterID string
}

type ApplicationFilter struct {
	JobID       string
	ApplicantID string
	PosterID    string
}

type JobRepository interface {
	Create(ctx context.Context, job *entity.JobPosting) error
	GetByID(ctx context.Context, id string) (*entity.JobPosting, error)
	// List returns matching postings newest first plus the total match count.
	List(ctx context.Context, filter JobFilter, limit, offset int) ([]*entity.JobPosting, int64, error)
}

type ApplicationRepository interface {
	// Create rejects a second application by the same applicant to one job.
	Create(ctx context.Context, application *entity.JobApplication) error
	GetByID(ctx context.Context, id string) (*entity.JobApplication, error)
	// List returns matching applications newest first.
	List(ctx context.Context, filter ApplicationFilter) ([]*entity.JobApplication, error)
	// UpdateStatus applies fn to the stored application and persists the
	// status it returns.
	UpdateStatus(ctx context.Context, id string, fn func(*entity.JobApplication) (entity.ApplicationStatus, error)) (*entity.JobApplication, error)
}
