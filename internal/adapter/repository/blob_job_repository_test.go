package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/internal/infrastructure/blobstore"
	"nexusmarket/pkg/errors"
)

func TestJobRepositoryListFilters(t *testing.T) {
	repo := NewBlobJobRepository(blobstore.NewMemory())
	ctx := context.Background()

	jobs := []*entity.JobPosting{
		{ID: "j1", Title: "Go Engineer", Company: "Nexus", Location: "Remote", Type: entity.JobFullTime, PosterID: "u1", CreatedAt: 100},
		{ID: "j2", Title: "Designer", Company: "Studio", Location: "Berlin", Type: entity.JobContract, PosterID: "u2", CreatedAt: 300},
		{ID: "j3", Title: "Support", Company: "Nexus", Location: "Lisbon", Type: entity.JobPartTime, PosterID: "u1", CreatedAt: 200,
			Description: "Help our remote customers"},
	}
	for _, j := range jobs {
		require.NoError(t, repo.Create(ctx, j))
	}
	assert.True(t, errors.Is(repo.Create(ctx, jobs[0]), errors.CodeConflict))

	all, total, err := repo.List(ctx, repository.JobFilter{}, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []string{"j2", "j3", "j1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	remote, _, err := repo.List(ctx, repository.JobFilter{Query: "REMOTE"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, remote, 2)
	assert.Equal(t, "j3", remote[0].ID)

	contract, _, err := repo.List(ctx, repository.JobFilter{Type: "contract"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, contract, 1)
	assert.Equal(t, "j2", contract[0].ID)

	mine, total, err := repo.List(ctx, repository.JobFilter{PosterID: "u1"}, 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, mine, 1)
	assert.Equal(t, "j1", mine[0].ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestApplicationRepositoryLifecycle(t *testing.T) {
	repo := NewBlobApplicationRepository(blobstore.NewMemory())
	ctx := context.Background()

	first := &entity.JobApplication{ID: "a1", JobID: "j1", PosterID: "u1", ApplicantID: "u2", Status: entity.ApplicationPending, AppliedAt: 100}
	second := &entity.JobApplication{ID: "a2", JobID: "j2", PosterID: "u3", ApplicantID: "u2", Status: entity.ApplicationPending, AppliedAt: 200}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	duplicate := &entity.JobApplication{ID: "a3", JobID: "j1", PosterID: "u1", ApplicantID: "u2", Status: entity.ApplicationPending}
	assert.True(t, errors.Is(repo.Create(ctx, duplicate), errors.CodeConflict))

	mine, err := repo.List(ctx, repository.ApplicationFilter{ApplicantID: "u2"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a2", mine[0].ID)

	received, err := repo.List(ctx, repository.ApplicationFilter{PosterID: "u1"})
	require.NoError(t, err)
	require.Len(t, received, 1)

	updated, err := repo.UpdateStatus(ctx, "a1", func(a *entity.JobApplication) (entity.ApplicationStatus, error) {
		return entity.ApplicationInterview, nil
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationInterview, updated.Status)

	stored, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationInterview, stored.Status)

	_, err = repo.UpdateStatus(ctx, "a1", func(a *entity.JobApplication) (entity.ApplicationStatus, error) {
		return "", errors.BadRequest("nope", nil)
	})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = repo.UpdateStatus(ctx, "missing", func(a *entity.JobApplication) (entity.ApplicationStatus, error) {
		return entity.ApplicationRejected, nil
	})
	assert.True(t, errors.IsNotFound(err))
}

func TestApplicationRepositoryDropsInvalidRecords(t *testing.T) {
	store := blobstore.NewMemory()
	store.Set(repository.ApplicationsKey, []byte(`[{"id":"a1","jobId":"j1","applicantId":"u2"},{"id":"a2"},null]`))

	list, err := NewBlobApplicationRepository(store).List(context.Background(), repository.ApplicationFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a1", list[0].ID)
}
