// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"jobboard/internal/cache"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of users created by CreateUser.
const TestPassword = "password123"

// NewConfig returns a test configuration pointing at a fresh temp directory.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Port:            "0",
		Env:             "test",
		JWTSecret:       "test-secret-that-is-long-enough-32b",
		JWTTTLHrs:       24,
		DBDriver:        "sqlite",
		DBPath:          filepath.Join(dir, "test.db"),
		AllowedOrigins:  "*",
		UploadDir:       filepath.Join(dir, "uploads"),
		UploadMaxSizeMB: 10,
	}
}

// NewTestDB opens a migrated SQLite database in a temp dir and clears the in-process cache.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return NewTestDBWithConfig(t, NewConfig(t))
}

// NewTestDBWithConfig is NewTestDB for a caller-provided configuration.
func NewTestDBWithConfig(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()
	cache.Flush()

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with TestPassword.
func CreateUser(t *testing.T, db *gorm.DB, email, name, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	if role == "" {
		role = models.RoleUser
	}
	user := &models.User{Email: email, Password: string(hash), Name: name, Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

// JobOption customizes a job built by CreateJob.
type JobOption func(*models.Job)

// WithCreatedAt pins the job's creation time.
func WithCreatedAt(ts time.Time) JobOption {
	return func(j *models.Job) { j.CreatedAt = ts }
}

// CreateJob inserts a valid job posted by poster (nil for an orphaned job).
func CreateJob(t *testing.T, db *gorm.DB, poster *models.User, title, jobType, location string, opts ...JobOption) *models.Job {
	t.Helper()
	job := &models.Job{
		Title:        title,
		Company:      "Acme Corp",
		Location:     location,
		JobType:      jobType,
		Description:  strings.Repeat("Build and maintain business applications. ", 2),
		Requirements: "Three years of relevant experience",
	}
	if poster != nil {
		id := poster.ID
		job.PostedBy = &id
	}
	for _, opt := range opts {
		opt(job)
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

// CreateApplication inserts a pending application for job.
func CreateApplication(t *testing.T, db *gorm.DB, job *models.Job, email string) *models.Application {
	t.Helper()
	app := &models.Application{
		JobID:          job.ID,
		ApplicantName:  "Applicant",
		ApplicantEmail: email,
		CoverLetter:    strings.Repeat("I am excited to apply. ", 3),
		Status:         models.StatusPending,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}
