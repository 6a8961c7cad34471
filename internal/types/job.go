package types

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus tracks where an application stands in the hiring funnel.
type JobStatus string

// Job application statuses.
const (
	JobDrafted      JobStatus = "Drafted"
	JobSubmitted    JobStatus = "Submitted"
	JobInterviewing JobStatus = "Interviewing"
	JobOffer        JobStatus = "Offer"
	JobRejected     JobStatus = "Rejected"
)

// IsValid reports whether the status is a known funnel stage.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobDrafted, JobSubmitted, JobInterviewing, JobOffer, JobRejected:
		return true
	}
	return false
}

// Job is a tracked job application.
type Job struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	Company        string    `json:"company"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Status         JobStatus `json:"status"`
	ResumeURL      string    `json:"resumeUrl,omitempty"`
	CoverLetterURL string    `json:"coverLetterUrl,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
