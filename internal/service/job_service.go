package service

import (
	"context"
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/observability"
	"jobboard/internal/repository"
	"jobboard/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type JobService struct {
	jobs repository.JobRepository
}

// CreateJobInput is the payload of a job posting.
type CreateJobInput struct {
	Title        string  `json:"title" validate:"required,min=5"`
	Company      string  `json:"company" validate:"required,min=2"`
	Location     string  `json:"location" validate:"required,min=2"`
	JobType      string  `json:"job_type" validate:"required,oneof=remote onsite hybrid"`
	Description  string  `json:"description" validate:"required,min=50"`
	Requirements string  `json:"requirements" validate:"required,min=20"`
	SalaryRange  *string `json:"salary_range"`
}

func NewJobService(jobs repository.JobRepository) *JobService {
	return &JobService{jobs: jobs}
}

func (s *JobService) ListJobs(ctx context.Context, filter repository.JobFilter) ([]models.Job, error) {
	return s.jobs.List(ctx, filter)
}

func (s *JobService) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// CreateJob validates the trimmed input and stores the job under posterID.
func (s *JobService) CreateJob(ctx context.Context, posterID uint, in CreateJobInput) (job *models.Job, err error) {
	ctx, end := observability.StartSpan(ctx, "jobs", "create", attribute.Int("poster_id", int(posterID)))
	defer func() { end(err) }()

	if posterID == 0 {
		return nil, models.NewUnauthorizedError("Authorization required")
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Location = strings.TrimSpace(in.Location)
	in.JobType = strings.TrimSpace(in.JobType)
	in.Description = strings.TrimSpace(in.Description)
	in.Requirements = strings.TrimSpace(in.Requirements)
	if in.SalaryRange != nil {
		trimmed := strings.TrimSpace(*in.SalaryRange)
		in.SalaryRange = &trimmed
		if trimmed == "" {
			in.SalaryRange = nil
		}
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	job = &models.Job{
		Title:        in.Title,
		Company:      in.Company,
		Location:     in.Location,
		JobType:      in.JobType,
		Description:  in.Description,
		Requirements: in.Requirements,
		SalaryRange:  in.SalaryRange,
		PostedBy:     &posterID,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	observability.JobsPosted.WithLabelValues(job.JobType).Inc()
	return job, nil
}

// ListJobsByPoster returns the poster's dashboard rows.
func (s *JobService) ListJobsByPoster(ctx context.Context, posterID uint) ([]models.JobSummary, error) {
	return s.jobs.ListByPoster(ctx, posterID)
}
