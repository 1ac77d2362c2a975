package server

import (
	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetJobs handles GET /api/jobs
// @Summary List jobs
// @Description Newest first. Filters combine with AND.
// @Tags jobs
// @Produce json
// @Param type query string false "remote, onsite or hybrid"
// @Param location query string false "Location substring"
// @Param search query string false "Title, company or description substring"
// @Success 200 {array} models.Job
// @Failure 500 {object} models.ErrorResponse
// @Router /jobs [get]
func (s *Server) GetJobs(c *fiber.Ctx) error {
	jobs, err := s.jobService.ListJobs(c.UserContext(), repository.JobFilter{
		Type:     c.Query("type"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(jobs)
}

// GetJob handles GET /api/jobs/:id
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} models.Job
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/{id} [get]
func (s *Server) GetJob(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "job")
	if err != nil {
		return nil
	}

	job, err := s.jobService.GetJob(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// CreateJob handles POST /api/jobs
// @Summary Post a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateJobInput true "Job"
// @Success 200 {object} object{message=string,jobId=int}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /jobs [post]
func (s *Server) CreateJob(c *fiber.Ctx) error {
	var req service.CreateJobInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	job, err := s.jobService.CreateJob(c.UserContext(), caller(c).UserID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Job posted successfully",
		"jobId":   job.ID,
	})
}

// GetMyJobs handles GET /api/my-jobs
// @Summary Jobs posted by the caller
// @Description Each job carries its application count.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.JobSummary
// @Failure 401 {object} models.ErrorResponse
// @Router /my-jobs [get]
func (s *Server) GetMyJobs(c *fiber.Ctx) error {
	jobs, err := s.jobService.ListJobsByPoster(c.UserContext(), caller(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(jobs)
}
