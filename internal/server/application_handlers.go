package server

import (
	"jobboard/internal/featureflags"
	"jobboard/internal/models"
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ApplyForJob handles POST /api/jobs/:id/apply
// @Summary Apply for a job
// @Description Multipart form with an optional "resume" file. No account needed.
// @Tags applications
// @Accept mpfd
// @Produce json
// @Param id path int true "Job ID"
// @Param applicant_name formData string true "Applicant name"
// @Param applicant_email formData string true "Applicant email"
// @Param applicant_phone formData string false "Applicant phone"
// @Param cover_letter formData string true "Cover letter (50+ characters)"
// @Param resume formData file false "Resume"
// @Success 200 {object} object{message=string,applicationId=int}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/{id}/apply [post]
func (s *Server) ApplyForJob(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "id", "job")
	if err != nil {
		return nil
	}

	var req service.ApplyInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var resume *service.ResumeFile
	if form, formErr := c.MultipartForm(); formErr == nil {
		if files := form.File["resume"]; len(files) > 0 {
			f, openErr := files[0].Open()
			if openErr != nil {
				return respondError(c, models.NewInternalError(openErr))
			}
			defer f.Close()
			resume = &service.ResumeFile{Filename: files[0].Filename, Content: f}
		}
	}

	app, err := s.applicationService.Apply(c.UserContext(), jobID, req, resume)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":       "Application submitted successfully",
		"applicationId": app.ID,
	})
}

// GetJobApplications handles GET /api/jobs/:id/applications
// @Summary List a job's applications
// @Description Only the job's poster or an admin may list applications.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {array} models.Application
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/{id}/applications [get]
func (s *Server) GetJobApplications(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "id", "job")
	if err != nil {
		return nil
	}

	apps, err := s.applicationService.ListApplications(c.UserContext(), jobID, caller(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(apps)
}

// UpdateApplicationStatus handles PATCH /api/applications/:id
// @Summary Update an application's status
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body object{status=string} true "pending, reviewed, accepted or rejected"
// @Success 200 {object} object{message=string,application=models.Application}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /applications/{id} [patch]
func (s *Server) UpdateApplicationStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "application")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	who := caller(c)
	app, err := s.applicationService.UpdateStatus(c.UserContext(), service.UpdateStatusInput{
		ApplicationID:  id,
		Status:         req.Status,
		Caller:         who,
		AllowAnyCaller: s.featureFlags.Enabled(featureflags.OpenStatusUpdates, who.UserID),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":     "Application status updated",
		"application": app,
	})
}
