package models

import (
	"time"

	"github.com/samber/lo"
)

// Job types accepted by the board.
const (
	JobTypeRemote = "remote"
	JobTypeOnsite = "onsite"
	JobTypeHybrid = "hybrid"
)

// JobTypes lists every valid job type.
var JobTypes = []string{JobTypeRemote, JobTypeOnsite, JobTypeHybrid}

// IsValidJobType reports whether t is one of JobTypes.
func IsValidJobType(t string) bool {
	return lo.Contains(JobTypes, t)
}

// Job is a posting created by a user.
type Job struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Company      string    `gorm:"not null" json:"company"`
	Location     string    `gorm:"not null" json:"location"`
	JobType      string    `gorm:"column:job_type;not null;index" json:"job_type"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Requirements string    `gorm:"type:text;not null" json:"requirements"`
	SalaryRange  *string   `json:"salary_range"`
	PostedBy     *uint     `gorm:"index" json:"posted_by"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`

	// Populated by joined reads only.
	PostedByName *string `gorm:"->;-:migration" json:"posted_by_name"`
}

// GetUserID returns the poster's ID, or zero when the poster is unknown.
func (j *Job) GetUserID() uint {
	if j == nil || j.PostedBy == nil {
		return 0
	}
	return *j.PostedBy
}

// JobSummary is a job as shown on its poster's dashboard.
type JobSummary struct {
	Job
	ApplicationCount int64 `json:"application_count"`
}
