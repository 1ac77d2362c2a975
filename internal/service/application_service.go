package service

import (
	"context"
	"strconv"
	"strings"

	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/observability"
	"jobboard/internal/repository"
	"jobboard/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type ApplicationService struct {
	apps    repository.ApplicationRepository
	jobs    repository.JobRepository
	resumes ResumeStore
}

// ApplyInput is the form payload of a job application.
type ApplyInput struct {
	ApplicantName  string `json:"applicant_name" form:"applicant_name" validate:"required,min=2"`
	ApplicantEmail string `json:"applicant_email" form:"applicant_email" validate:"required,email"`
	ApplicantPhone string `json:"applicant_phone" form:"applicant_phone"`
	CoverLetter    string `json:"cover_letter" form:"cover_letter" validate:"required,min=50"`
}

// Caller identifies the authenticated user making a request.
type Caller struct {
	UserID uint
	Role   string
}

func (c Caller) isAdmin() bool {
	return c.Role == models.RoleAdmin
}

type UpdateStatusInput struct {
	ApplicationID uint
	Status        string
	Caller        Caller
	// AllowAnyCaller skips the poster-or-admin check.
	AllowAnyCaller bool
}

func NewApplicationService(apps repository.ApplicationRepository, jobs repository.JobRepository, resumes ResumeStore) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, resumes: resumes}
}

// Apply validates the input, checks the job exists, stores the optional resume
// and records a pending application.
func (s *ApplicationService) Apply(ctx context.Context, jobID uint, in ApplyInput, resume *ResumeFile) (app *models.Application, err error) {
	ctx, end := observability.StartSpan(ctx, "applications", "apply", attribute.Int("job_id", int(jobID)))
	defer func() { end(err) }()

	in.ApplicantName = strings.TrimSpace(in.ApplicantName)
	in.ApplicantEmail = validation.NormalizeEmail(in.ApplicantEmail)
	in.ApplicantPhone = strings.TrimSpace(in.ApplicantPhone)
	in.CoverLetter = strings.TrimSpace(in.CoverLetter)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	app = &models.Application{
		JobID:          jobID,
		ApplicantName:  in.ApplicantName,
		ApplicantEmail: in.ApplicantEmail,
		CoverLetter:    in.CoverLetter,
		Status:         models.StatusPending,
	}
	if in.ApplicantPhone != "" {
		app.ApplicantPhone = &in.ApplicantPhone
	}

	if resume != nil && s.resumes != nil {
		name, saveErr := s.resumes.Save(ctx, *resume)
		if saveErr != nil {
			return nil, models.NewInternalError(saveErr)
		}
		app.ResumeFilename = &name
	}

	if err := s.apps.Create(ctx, app); err != nil {
		if app.ResumeFilename != nil {
			if rmErr := s.resumes.Remove(ctx, *app.ResumeFilename); rmErr != nil {
				middleware.Logger.ErrorContext(ctx, "failed to remove orphaned resume",
					"file", *app.ResumeFilename, "error", rmErr)
			}
		}
		return nil, err
	}

	observability.ApplicationsSubmitted.WithLabelValues(strconv.FormatBool(app.ResumeFilename != nil)).Inc()
	return app, nil
}

// ListApplications returns a job's applications to its poster or an admin.
func (s *ApplicationService) ListApplications(ctx context.Context, jobID uint, caller Caller) ([]models.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !canManageJob(job, caller) {
		return nil, models.NewForbiddenError("Not authorized")
	}
	return s.apps.ListByJob(ctx, jobID)
}

// UpdateStatus sets an application's status. Any status may replace any other.
func (s *ApplicationService) UpdateStatus(ctx context.Context, in UpdateStatusInput) (app *models.Application, err error) {
	ctx, end := observability.StartSpan(ctx, "applications", "update_status",
		attribute.Int("application_id", int(in.ApplicationID)),
		attribute.String("status", in.Status),
	)
	defer func() { end(err) }()

	// Values are matched exactly; "Accepted" is not "accepted".
	status := models.ApplicationStatus(in.Status)
	if !status.Valid() {
		return nil, models.NewValidationError("Status must be one of: pending, reviewed, accepted, rejected")
	}

	app, err = s.apps.GetByID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	if !in.AllowAnyCaller {
		job, err := s.jobs.GetByID(ctx, app.JobID)
		if err != nil {
			return nil, err
		}
		if !canManageJob(job, in.Caller) {
			return nil, models.NewForbiddenError("Not authorized")
		}
	}

	if err := s.apps.UpdateStatus(ctx, app.ID, status); err != nil {
		return nil, err
	}
	app.Status = status

	observability.ApplicationStatusChanges.WithLabelValues(string(status)).Inc()
	return app, nil
}

// canManageJob reports whether caller posted job or is an admin.
func canManageJob(job *models.Job, caller Caller) bool {
	if caller.isAdmin() {
		return true
	}
	return caller.UserID != 0 && job.GetUserID() == caller.UserID
}
