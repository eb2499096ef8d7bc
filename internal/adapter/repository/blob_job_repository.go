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

type blobJobRepository struct {
	store repository.BlobStore
}

func NewBlobJobRepository(store repository.BlobStore) repository.JobRepository {
	return &blobJobRepository{store: store}
}

func decodeJobs(raw []byte) []*entity.JobPosting {
	return decodeList(repository.JobsKey, raw, func(j *entity.JobPosting) bool {
		return j.ID != ""
	})
}

func (r *blobJobRepository) Create(ctx context.Context, job *entity.JobPosting) error {
	return r.store.Update(ctx, repository.JobsKey, func(current []byte) ([]byte, error) {
		jobs := decodeJobs(current)
		for _, j := range jobs {
			if j.ID == job.ID {
				return nil, errors.Conflict("Job posting already exists", nil)
			}
		}
		jobs = append([]*entity.JobPosting{job}, jobs...)
		return encode(repository.JobsKey, jobs)
	})
}

func (r *blobJobRepository) GetByID(ctx context.Context, id string) (*entity.JobPosting, error) {
	raw, err := r.store.Get(ctx, repository.JobsKey)
	if err != nil {
		return nil, err
	}
	for _, j := range decodeJobs(raw) {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, errors.NotFound("Job posting", nil)
}

func (r *blobJobRepository) List(ctx context.Context, filter repository.JobFilter, limit, offset int) ([]*entity.JobPosting, int64, error) {
	raw, err := r.store.Get(ctx, repository.JobsKey)
	if err != nil {
		return nil, 0, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	matches := make([]*entity.JobPosting, 0)
	for _, j := range decodeJobs(raw) {
		if filter.Type != "" && !strings.EqualFold(j.Type, filter.Type) {
			continue
		}
		if filter.PosterID != "" && j.PosterID != filter.PosterID {
			continue
		}
		if query != "" && !jobMatches(j, query) {
			continue
		}
		matches = append(matches, j)
	}

	sort.SliceStable(matches, func(i, k int) bool {
		return matches[i].CreatedAt > matches[k].CreatedAt
	})

	start, end := utils.Window(len(matches), limit, offset)
	return matches[start:end], int64(len(matches)), nil
}

func jobMatches(j *entity.JobPosting, query string) bool {
	for _, field := range []string{j.Title, j.Company, j.Location, j.Description} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

type blobApplicationRepository struct {
	store repository.BlobStore
}

func NewBlobApplicationRepository(store repository.BlobStore) repository.ApplicationRepository {
	return &blobApplicationRepository{store: store}
}

func decodeApplications(raw []byte) []*entity.JobApplication {
	return decodeList(repository.ApplicationsKey, raw, func(a *entity.JobApplication) bool {
		return a.ID != "" && a.JobID != "" && a.ApplicantID != ""
	})
}

func (r *blobApplicationRepository) Create(ctx context.Context, application *entity.JobApplication) error {
	return r.store.Update(ctx, repository.ApplicationsKey, func(current []byte) ([]byte, error) {
		applications := decodeApplications(current)
		for _, a := range applications {
			if a.ID == application.ID {
				return nil, errors.Conflict("Application already exists", nil)
			}
			if a.JobID == application.JobID && a.ApplicantID == application.ApplicantID {
				return nil, errors.Conflict("You have already applied to this job", nil)
			}
		}
		applications = append([]*entity.JobApplication{application}, applications...)
		return encode(repository.ApplicationsKey, applications)
	})
}

func (r *blobApplicationRepository) GetByID(ctx context.Context, id string) (*entity.JobApplication, error) {
	raw, err := r.store.Get(ctx, repository.ApplicationsKey)
	if err != nil {
		return nil, err
	}
	for _, a := range decodeApplications(raw) {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, errors.NotFound("Application", nil)
}

func (r *blobApplicationRepository) List(ctx context.Context, filter repository.ApplicationFilter) ([]*entity.JobApplication, error) {
	raw, err := r.store.Get(ctx, repository.ApplicationsKey)
	if err != nil {
		return nil, err
	}

	matches := make([]*entity.JobApplication, 0)
	for _, a := range decodeApplications(raw) {
		if filter.JobID != "" && a.JobID != filter.JobID {
			continue
		}
		if filter.ApplicantID != "" && a.ApplicantID != filter.ApplicantID {
			continue
		}
		if filter.PosterID != "" && a.PosterID != filter.PosterID {
			continue
		}
		matches = append(matches, a)
	}

	sort.SliceStable(matches, func(i, k int) bool {
		return matches[i].AppliedAt > matches[k].AppliedAt
	})
	return matches, nil
}

func (r *blobApplicationRepository) UpdateStatus(ctx context.Context, id string, fn func(*entity.JobApplication) (entity.ApplicationStatus, error)) (*entity.JobApplication, error) {
	var updated *entity.JobApplication
	err := r.store.Update(ctx, repository.ApplicationsKey, func(current []byte) ([]byte, error) {
		applications := decodeApplications(current)
		for _, a := range applications {
			if a.ID != id {
				continue
			}
			status, err := fn(a)
			if err != nil {
				return nil, err
			}
			if status == a.Status {
				updated = a
				return nil, nil
			}
			a.Status = status
			updated = a
			return encode(repository.ApplicationsKey, applications)
		}
		return nil, errors.NotFound("Application", nil)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
