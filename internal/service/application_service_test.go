package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jobboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const posterID uint = 10

func validApply() ApplyInput {
	return ApplyInput{
		ApplicantName:  "Bilal Ahmed",
		ApplicantEmail: "Bilal@Example.com",
		ApplicantPhone: " +92 300 1234567 ",
		CoverLetter:    coverLetter(60),
	}
}

func TestApplicationService_ApplyCoverLetterBoundary(t *testing.T) {
	svc := NewApplicationService(noopApplicationRepo(), jobsPostedBy(posterID), nil)
	ctx := context.Background()

	in := validApply()
	in.CoverLetter = "  " + coverLetter(50) + "  "
	app, err := svc.Apply(ctx, 1, in, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, app.Status)
	assert.Len(t, app.CoverLetter, 50)

	in.CoverLetter = coverLetter(49)
	_, err = svc.Apply(ctx, 1, in, nil)
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestApplicationService_ApplyValidation(t *testing.T) {
	svc := NewApplicationService(noopApplicationRepo(), jobsPostedBy(posterID), nil)

	tests := []struct {
		name   string
		mutate func(*ApplyInput)
	}{
		{"short name", func(in *ApplyInput) { in.ApplicantName = " B " }},
		{"bad email", func(in *ApplyInput) { in.ApplicantEmail = "bilal.example.com" }},
		{"missing cover letter", func(in *ApplyInput) { in.CoverLetter = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validApply()
			tt.mutate(&in)
			_, err := svc.Apply(context.Background(), 1, in, nil)
			assertAppErrorCode(t, err, models.CodeValidation)
		})
	}
}

func TestApplicationService_ApplyNormalizesFields(t *testing.T) {
	var stored *models.Application
	apps := noopApplicationRepo()
	apps.createFn = func(_ context.Context, a *models.Application) error {
		stored = a
		a.ID = 7
		return nil
	}
	svc := NewApplicationService(apps, jobsPostedBy(posterID), nil)

	app, err := svc.Apply(context.Background(), 1, validApply(), nil)
	require.NoError(t, err)
	require.Same(t, stored, app)
	assert.Equal(t, "bilal@example.com", app.ApplicantEmail)
	require.NotNil(t, app.ApplicantPhone)
	assert.Equal(t, "+92 300 1234567", *app.ApplicantPhone)
	assert.Nil(t, app.ResumeFilename)

	in := validApply()
	in.ApplicantPhone = "   "
	app, err = svc.Apply(context.Background(), 1, in, nil)
	require.NoError(t, err)
	assert.Nil(t, app.ApplicantPhone)
}

func TestApplicationService_ApplyMissingJob(t *testing.T) {
	dir := t.TempDir()
	svc := NewApplicationService(noopApplicationRepo(), jobsPostedBy(posterID), NewDiskResumeStore(dir))

	resume := &ResumeFile{Filename: "cv.pdf", Content: strings.NewReader("%PDF-1.4")}
	_, err := svc.Apply(context.Background(), 404, validApply(), resume)
	assertAppErrorCode(t, err, models.CodeNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file is written for a missing job")
}

func TestApplicationService_ApplyWithResume(t *testing.T) {
	dir := t.TempDir()
	svc := NewApplicationService(noopApplicationRepo(), jobsPostedBy(posterID), NewDiskResumeStore(dir))

	resume := &ResumeFile{Filename: "My CV.pdf", Content: strings.NewReader("%PDF-1.4 resume")}
	app, err := svc.Apply(context.Background(), 1, validApply(), resume)
	require.NoError(t, err)
	require.NotNil(t, app.ResumeFilename)
	assert.True(t, strings.HasSuffix(*app.ResumeFilename, "-My_CV.pdf"), *app.ResumeFilename)

	data, err := os.ReadFile(filepath.Join(dir, *app.ResumeFilename))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 resume", string(data))
}

func TestApplicationService_ApplyRemovesResumeWhenInsertFails(t *testing.T) {
	dir := t.TempDir()
	apps := noopApplicationRepo()
	apps.createFn = func(context.Context, *models.Application) error {
		return models.NewInternalError(errStorage)
	}
	svc := NewApplicationService(apps, jobsPostedBy(posterID), NewDiskResumeStore(dir))

	resume := &ResumeFile{Filename: "cv.pdf", Content: strings.NewReader("data")}
	_, err := svc.Apply(context.Background(), 1, validApply(), resume)
	assertAppErrorCode(t, err, models.CodeInternal)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApplicationService_ListApplications(t *testing.T) {
	svc := NewApplicationService(noopApplicationRepo(), jobsPostedBy(posterID), nil)
	ctx := context.Background()

	apps, err := svc.ListApplications(ctx, 1, Caller{UserID: posterID, Role: models.RoleUser})
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	apps, err = svc.ListApplications(ctx, 1, Caller{UserID: 99, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	_, err = svc.ListApplications(ctx, 1, Caller{UserID: 99, Role: models.RoleUser})
	assertAppErrorCode(t, err, models.CodeForbidden)

	_, err = svc.ListApplications(ctx, 2, Caller{UserID: posterID})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestApplicationService_ListApplicationsOrphanedJob(t *testing.T) {
	jobs := jobsPostedBy(posterID)
	jobs.getByIDFn = func(_ context.Context, id uint) (*models.Job, error) {
		return &models.Job{ID: id}, nil
	}
	svc := NewApplicationService(noopApplicationRepo(), jobs, nil)

	_, err := svc.ListApplications(context.Background(), 1, Caller{})
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	var updated models.ApplicationStatus
	apps := noopApplicationRepo()
	apps.updateStatusFn = func(_ context.Context, _ uint, s models.ApplicationStatus) error {
		updated = s
		return nil
	}
	svc := NewApplicationService(apps, jobsPostedBy(posterID), nil)
	ctx := context.Background()

	app, err := svc.UpdateStatus(ctx, UpdateStatusInput{ApplicationID: 7, Status: "accepted", Caller: Caller{UserID: posterID}})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, app.Status)
	assert.Equal(t, models.StatusAccepted, updated)

	// Any status may move to any other, including back to pending.
	app, err = svc.UpdateStatus(ctx, UpdateStatusInput{ApplicationID: 7, Status: "pending", Caller: Caller{UserID: posterID}})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, app.Status)

	for _, bad := range []string{"hired", "Accepted", " rejected", "REVIEWED", ""} {
		updated = ""
		_, err = svc.UpdateStatus(ctx, UpdateStatusInput{ApplicationID: 7, Status: bad, Caller: Caller{UserID: posterID}})
		assertAppErrorCode(t, err, models.CodeValidation)
		assert.Empty(t, updated, "status %q must not be stored", bad)
	}

	_, err = svc.UpdateStatus(ctx, UpdateStatusInput{ApplicationID: 8, Status: "accepted", Caller: Caller{UserID: posterID}})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestApplicationService_UpdateStatusAuthorization(t *testing.T) {
	svc := NewApplicationService(noopApplicationRepo(), jobsPostedBy(posterID), nil)
	ctx := context.Background()
	stranger := Caller{UserID: 99, Role: models.RoleUser}

	_, err := svc.UpdateStatus(ctx, UpdateStatusInput{ApplicationID: 7, Status: "rejected", Caller: stranger})
	assertAppErrorCode(t, err, models.CodeForbidden)

	_, err = svc.UpdateStatus(ctx, UpdateStatusInput{ApplicationID: 7, Status: "rejected", Caller: Caller{UserID: 99, Role: models.RoleAdmin}})
	assert.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, UpdateStatusInput{ApplicationID: 7, Status: "rejected", Caller: stranger, AllowAnyCaller: true})
	assert.NoError(t, err)
}
