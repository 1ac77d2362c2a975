package models

import (
	"time"

	"github.com/samber/lo"
)

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

// Application statuses. Any status may move to any other.
const (
	StatusPending  ApplicationStatus = "pending"
	StatusReviewed ApplicationStatus = "reviewed"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every valid status.
var ApplicationStatuses = []ApplicationStatus{StatusPending, StatusReviewed, StatusAccepted, StatusRejected}

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	return lo.Contains(ApplicationStatuses, s)
}

// Application is a candidate's submission against a job.
type Application struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	JobID          uint              `gorm:"not null;index" json:"job_id"`
	ApplicantName  string            `gorm:"not null" json:"applicant_name"`
	ApplicantEmail string            `gorm:"not null" json:"applicant_email"`
	ApplicantPhone *string           `json:"applicant_phone"`
	CoverLetter    string            `gorm:"type:text;not null" json:"cover_letter"`
	ResumeFilename *string           `json:"resume_filename"`
	Status         ApplicationStatus `gorm:"type:varchar(16);not null;default:pending;index" json:"status"`
	AppliedAt      time.Time         `gorm:"autoCreateTime;index" json:"applied_at"`
}
