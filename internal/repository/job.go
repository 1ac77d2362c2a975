package repository

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/cache"
	"jobboard/internal/models"

	"gorm.io/gorm"
)

// JobFilter narrows a job listing. Empty fields are ignored; set fields are combined with AND.
type JobFilter struct {
	Type     string
	Location string
	Search   string
}

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	List(ctx context.Context, filter JobFilter) ([]models.Job, error)
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	ListByPoster(ctx context.Context, posterID uint) ([]models.JobSummary, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository returns a new JobRepository implementation.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

const newestFirst = "jobs.created_at DESC, jobs.id DESC"

// withPoster selects jobs joined with the poster's display name.
func (r *jobRepository) withPoster(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Job{}).
		Select("jobs.*, users.name AS posted_by_name").
		Joins("LEFT JOIN users ON users.id = jobs.posted_by")
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	q := r.withPoster(ctx)

	if t := strings.TrimSpace(filter.Type); t != "" {
		q = q.Where("jobs.job_type = ?", t)
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		q = q.Where(`LOWER(jobs.location) LIKE ? ESCAPE '\'`, likePattern(loc))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		p := likePattern(s)
		q = q.Where(`(LOWER(jobs.title) LIKE ? ESCAPE '\' OR LOWER(jobs.company) LIKE ? ESCAPE '\' OR LOWER(jobs.description) LIKE ? ESCAPE '\')`, p, p, p)
	}

	jobs := []models.Job{}
	if err := q.Order(newestFirst).Find(&jobs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return jobs, nil
}

// GetByID returns the job with its poster's name. Jobs are immutable, so results are cached.
func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := cache.Aside(ctx, cache.JobKey(id), &job, cache.JobTTL, func() error {
		if err := r.withPoster(ctx).Where("jobs.id = ?", id).Take(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Job", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListByPoster returns the poster's jobs with their application counts, zero included.
func (r *jobRepository) ListByPoster(ctx context.Context, posterID uint) ([]models.JobSummary, error) {
	summaries := []models.JobSummary{}
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Select("jobs.*, users.name AS posted_by_name, COUNT(applications.id) AS application_count").
		Joins("LEFT JOIN users ON users.id = jobs.posted_by").
		Joins("LEFT JOIN applications ON applications.job_id = jobs.id").
		Where("jobs.posted_by = ?", posterID).
		Group("jobs.id, users.name").
		Order(newestFirst).
		Scan(&summaries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return summaries, nil
}
