package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"jobboard/internal/models"
	"jobboard/internal/repository"

	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getRoleFn    func(context.Context, uint) (string, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	listByRoleFn func(context.Context, string) ([]models.User, error)
	updateRoleFn func(context.Context, uint, string) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetRole(ctx context.Context, id uint) (string, error) {
	return s.getRoleFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	return s.listByRoleFn(ctx, role)
}
func (s *userRepoStub) UpdateRole(ctx context.Context, id uint, role string) error {
	return s.updateRoleFn(ctx, id, role)
}

// memoryUsers backs userRepoStub with a map keyed by email.
func memoryUsers() *userRepoStub {
	byEmail := map[string]*models.User{}
	var nextID uint
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			for _, u := range byEmail {
				if u.ID == id {
					return u, nil
				}
			}
			return nil, models.NewNotFoundError("User", id)
		},
		getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return byEmail[email], nil
		},
		createFn: func(_ context.Context, u *models.User) error {
			if _, ok := byEmail[u.Email]; ok {
				return models.NewConflictError("Email already exists")
			}
			nextID++
			u.ID = nextID
			byEmail[u.Email] = u
			return nil
		},
		listByRoleFn: func(_ context.Context, _ string) ([]models.User, error) { return nil, nil },
		updateRoleFn: func(_ context.Context, _ uint, _ string) error { return nil },
	}
}

// jobRepoStub is a stub for repository.JobRepository.
type jobRepoStub struct {
	listFn         func(context.Context, repository.JobFilter) ([]models.Job, error)
	getByIDFn      func(context.Context, uint) (*models.Job, error)
	createFn       func(context.Context, *models.Job) error
	listByPosterFn func(context.Context, uint) ([]models.JobSummary, error)
}

func (s *jobRepoStub) List(ctx context.Context, filter repository.JobFilter) ([]models.Job, error) {
	return s.listFn(ctx, filter)
}
func (s *jobRepoStub) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	return s.getByIDFn(ctx, id)
}
func (s *jobRepoStub) Create(ctx context.Context, job *models.Job) error {
	return s.createFn(ctx, job)
}
func (s *jobRepoStub) ListByPoster(ctx context.Context, posterID uint) ([]models.JobSummary, error) {
	return s.listByPosterFn(ctx, posterID)
}

// jobsPostedBy returns a job repo where job 1 belongs to posterID and every other id is missing.
func jobsPostedBy(posterID uint) *jobRepoStub {
	return &jobRepoStub{
		listFn: func(_ context.Context, _ repository.JobFilter) ([]models.Job, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Job, error) {
			if id != 1 {
				return nil, models.NewNotFoundError("Job", id)
			}
			return &models.Job{ID: 1, Title: "Odoo Developer", JobType: models.JobTypeRemote, PostedBy: &posterID}, nil
		},
		createFn: func(_ context.Context, j *models.Job) error {
			j.ID = 1
			return nil
		},
		listByPosterFn: func(_ context.Context, _ uint) ([]models.JobSummary, error) { return nil, nil },
	}
}

// applicationRepoStub is a stub for repository.ApplicationRepository.
type applicationRepoStub struct {
	createFn       func(context.Context, *models.Application) error
	getByIDFn      func(context.Context, uint) (*models.Application, error)
	listByJobFn    func(context.Context, uint) ([]models.Application, error)
	updateStatusFn func(context.Context, uint, models.ApplicationStatus) error
}

func (s *applicationRepoStub) Create(ctx context.Context, app *models.Application) error {
	return s.createFn(ctx, app)
}
func (s *applicationRepoStub) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	return s.getByIDFn(ctx, id)
}
func (s *applicationRepoStub) ListByJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	return s.listByJobFn(ctx, jobID)
}
func (s *applicationRepoStub) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	return s.updateStatusFn(ctx, id, status)
}

func noopApplicationRepo() *applicationRepoStub {
	return &applicationRepoStub{
		createFn: func(_ context.Context, a *models.Application) error {
			a.ID = 7
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Application, error) {
			if id != 7 {
				return nil, models.NewNotFoundError("Application", id)
			}
			return &models.Application{ID: 7, JobID: 1, Status: models.StatusPending}, nil
		},
		listByJobFn: func(_ context.Context, _ uint) ([]models.Application, error) {
			return []models.Application{{ID: 7, JobID: 1, Status: models.StatusPending}}, nil
		},
		updateStatusFn: func(_ context.Context, _ uint, _ models.ApplicationStatus) error { return nil },
	}
}

var errStorage = errors.New("storage unavailable")

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code, "message: %s", appErr.Message)
}

func coverLetter(n int) string {
	return strings.Repeat("x", n)
}
