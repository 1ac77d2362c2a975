package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobboard/internal/models"
	"jobboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRepository_CreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	poster := testutil.CreateUser(t, db, "poster@example.com", "Job Poster", "")
	job := testutil.CreateJob(t, db, poster, "Odoo Developer", models.JobTypeRemote, "Lahore")
	otherJob := testutil.CreateJob(t, db, poster, "Other Role", models.JobTypeRemote, "Lahore")

	older := &models.Application{
		JobID:          job.ID,
		ApplicantName:  "Older",
		ApplicantEmail: "older@example.com",
		CoverLetter:    "cover",
		AppliedAt:      time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, older))
	assert.Equal(t, models.StatusPending, older.Status)

	newer := &models.Application{JobID: job.ID, ApplicantName: "Newer", ApplicantEmail: "newer@example.com", CoverLetter: "cover"}
	require.NoError(t, repo.Create(ctx, newer))
	testutil.CreateApplication(t, db, otherJob, "elsewhere@example.com")

	apps, err := repo.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "Newer", apps[0].ApplicantName)
	assert.Equal(t, "Older", apps[1].ApplicantName)

	empty, err := repo.ListByJob(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestApplicationRepository_UpdateStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	job := testutil.CreateJob(t, db, nil, "Odoo Developer", models.JobTypeRemote, "Lahore")
	app := testutil.CreateApplication(t, db, job, "a@example.com")

	for _, status := range []models.ApplicationStatus{models.StatusAccepted, models.StatusPending, models.StatusRejected} {
		require.NoError(t, repo.UpdateStatus(ctx, app.ID, status))
		got, err := repo.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}

	err := repo.UpdateStatus(ctx, 9999, models.StatusAccepted)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	_, err = repo.GetByID(ctx, 9999)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestJobRepository_ListStorageFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewJobRepository(db)

	mock.ExpectQuery(`SELECT jobs\.\*, users\.name AS posted_by_name FROM "jobs"`).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.List(context.Background(), JobFilter{Type: "remote"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeInternal))
	assert.Equal(t, 500, models.StatusFor(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
