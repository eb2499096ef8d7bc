package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

func TestCreateJobCanonicalizesType(t *testing.T) {
	f := newFixture(t, nil)
	poster := f.register(t, "Pat", "pat@example.com")

	job := f.postJob(t, poster.ID, "  Go Engineer ")
	assert.Equal(t, "Go Engineer", job.Title)
	assert.Equal(t, entity.JobFullTime, job.Type)
	assert.Equal(t, poster.ID, job.PosterID)
	assert.NotZero(t, job.CreatedAt)

	_, err := f.job.CreateJob(context.Background(), poster.ID, CreateJobInput{Title: "X", Company: "Y", Type: "Gig"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = f.job.CreateJob(context.Background(), "ghost", CreateJobInput{Title: "X", Company: "Y", Type: "Contract"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestListJobsFiltersByType(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	poster := f.register(t, "Pat", "pat@example.com")
	f.postJob(t, poster.ID, "Go Engineer")
	_, err := f.job.CreateJob(ctx, poster.ID, CreateJobInput{Title: "Illustrator", Company: "Studio", Type: "Freelance"})
	require.NoError(t, err)

	jobs, total, err := f.job.ListJobs(ctx, repository.JobFilter{Type: entity.JobFreelance}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Illustrator", jobs[0].Title)
}

func TestApplySnapshotsApplicant(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	poster := f.register(t, "Pat", "pat@example.com")
	applicant := f.register(t, "Ada", "ada@example.com")
	job := f.postJob(t, poster.ID, "Go Engineer")

	application, err := f.job.Apply(ctx, applicant.ID, job.ID, " I write Go. ")
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationPending, application.Status)
	assert.Equal(t, "Ada", application.ApplicantName)
	assert.Equal(t, "ada@example.com", application.Email)
	assert.Equal(t, "Go Engineer", application.JobTitle)
	assert.Equal(t, poster.ID, application.PosterID)
	assert.Equal(t, "I write Go.", application.CoverLetter)

	_, err = f.job.Apply(ctx, applicant.ID, job.ID, "again")
	assert.True(t, errors.Is(err, errors.CodeConflict))

	_, err = f.job.Apply(ctx, poster.ID, job.ID, "")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = f.job.Apply(ctx, applicant.ID, "missing", "")
	assert.True(t, errors.IsNotFound(err))

	mine, err := f.job.ListMyApplications(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	received, err := f.job.ListReceivedApplications(ctx, poster.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, application.ID, received[0].ID)

	none, err := f.job.ListReceivedApplications(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateApplicationStatusTransitions(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	poster := f.register(t, "Pat", "pat@example.com")
	applicant := f.register(t, "Ada", "ada@example.com")
	job := f.postJob(t, poster.ID, "Go Engineer")
	application, err := f.job.Apply(ctx, applicant.ID, job.ID, "")
	require.NoError(t, err)

	_, err = f.job.UpdateApplicationStatus(ctx, applicant.ID, application.ID, "Reviewed")
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, err = f.job.UpdateApplicationStatus(ctx, poster.ID, application.ID, "Hired")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	updated, err := f.job.UpdateApplicationStatus(ctx, poster.ID, application.ID, "interview")
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationInterview, updated.Status)

	_, err = f.job.UpdateApplicationStatus(ctx, poster.ID, application.ID, "Reviewed")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	same, err := f.job.UpdateApplicationStatus(ctx, poster.ID, application.ID, "Interview")
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationInterview, same.Status)

	rejected, err := f.job.UpdateApplicationStatus(ctx, poster.ID, application.ID, "Rejected")
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationRejected, rejected.Status)

	_, err = f.job.UpdateApplicationStatus(ctx, poster.ID, application.ID, "Pending")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	mine, err := f.job.ListMyApplications(ctx, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationRejected, mine[0].Status)

	_, err = f.job.UpdateApplicationStatus(ctx, poster.ID, "missing", "Reviewed")
	assert.True(t, errors.IsNotFound(err))
}
