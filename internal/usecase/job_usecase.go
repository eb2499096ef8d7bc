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

type JobUseCase struct {
	jobRepo         repository.JobRepository
	applicationRepo repository.ApplicationRepository
	userRepo        repository.UserRepository
}

func NewJobUseCase(
	jobRepo repository.JobRepository,
	applicationRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
) *JobUseCase {
	return &JobUseCase{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
	}
}

type CreateJobInput struct {
	Title       string
	Company     string
	Location    string
	SalaryRange string
	Type        string
	Description string
}

func (uc *JobUseCase) CreateJob(ctx context.Context, posterID string, input CreateJobInput) (*entity.JobPosting, error) {
	jobType, ok := entity.CanonicalJobType(input.Type)
	if !ok {
		return nil, errors.BadRequest("Unknown job type: "+input.Type, nil)
	}
	if _, err := uc.userRepo.GetByID(ctx, posterID); err != nil {
		return nil, errors.BadRequest("Invalid poster", err)
	}

	job := &entity.JobPosting{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Location:    strings.TrimSpace(input.Location),
		SalaryRange: strings.TrimSpace(input.SalaryRange),
		Type:        jobType,
		Description: strings.TrimSpace(input.Description),
		PosterID:    posterID,
		CreatedAt:   time.Now().UnixMilli(),
	}
	if job.Title == "" || job.Company == "" {
		return nil, errors.BadRequest("Title and company are required", nil)
	}

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		log.Printf("CreateJob Error: Failed to save job for %s: %v", posterID, err)
		return nil, err
	}
	return job, nil
}

func (uc *JobUseCase) GetJob(ctx context.Context, id string) (*entity.JobPosting, error) {
	return uc.jobRepo.GetByID(ctx, id)
}

func (uc *JobUseCase) ListJobs(ctx context.Context, filter repository.JobFilter, limit, offset int) ([]*entity.JobPosting, int64, error) {
	return uc.jobRepo.List(ctx, filter, limit, offset)
}

// Apply records a Pending application carrying the applicant's name and
// email as they are now.
func (uc *JobUseCase) Apply(ctx context.Context, userID, jobID, coverLetter string) (*entity.JobApplication, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.PosterID == userID {
		return nil, errors.BadRequest("Cannot apply to your own job posting", nil)
	}

	applicant, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.BadRequest("Invalid applicant", err)
	}

	application := &entity.JobApplication{
		ID:            uuid.New().String(),
		JobID:         job.ID,
		JobTitle:      job.Title,
		Company:       job.Company,
		PosterID:      job.PosterID,
		ApplicantID:   applicant.ID,
		ApplicantName: applicant.Name,
		Email:         applicant.Email,
		CoverLetter:   strings.TrimSpace(coverLetter),
		Status:        entity.ApplicationPending,
		AppliedAt:     time.Now().UnixMilli(),
	}
	if err := uc.applicationRepo.Create(ctx, application); err != nil {
		log.Printf("Apply Error: user %s job %s: %v", userID, jobID, err)
		return nil, err
	}
	return application, nil
}

func (uc *JobUseCase) ListMyApplications(ctx context.Context, userID string) ([]*entity.JobApplication, error) {
	return uc.applicationRepo.List(ctx, repository.ApplicationFilter{ApplicantID: userID})
}

// ListReceivedApplications returns applications to any posting userID made.
func (uc *JobUseCase) ListReceivedApplications(ctx context.Context, userID string) ([]*entity.JobApplication, error) {
	return uc.applicationRepo.List(ctx, repository.ApplicationFilter{PosterID: userID})
}

// UpdateApplicationStatus lets the poster move an application along
// Pending, Reviewed, Interview and Rejected. Setting the current status again
// is a no-op.
func (uc *JobUseCase) UpdateApplicationStatus(ctx context.Context, userID, applicationID, status string) (*entity.JobApplication, error) {
	next, ok := entity.ParseApplicationStatus(status)
	if !ok {
		return nil, errors.BadRequest("Unknown application status: "+status, nil)
	}

	updated, err := uc.applicationRepo.UpdateStatus(ctx, applicationID, func(a *entity.JobApplication) (entity.ApplicationStatus, error) {
		if a.PosterID != userID {
			return "", errors.Forbidden("Only the job poster can update this application", nil)
		}
		if a.Status == next {
			return next, nil
		}
		if !a.Status.CanMoveTo(next) {
			return "", errors.BadRequest("Cannot move application from "+string(a.Status)+" to "+string(next), nil)
		}
		return next, nil
	})
	if err != nil {
		log.Printf("UpdateApplicationStatus Error: user %s application %s: %v", userID, applicationID, err)
		return nil, err
	}
	return updated, nil
}
