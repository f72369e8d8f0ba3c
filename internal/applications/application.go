// Package applications implements the job application workflow: resume
// upload, submission against a job posting, and role-scoped listing and
// withdrawal.
package applications

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/jobboard/pkg/auth"
)

// Party references a user together with the role they hold on an application.
type Party struct {
	User uuid.UUID `json:"user"`
	Role auth.Role `json:"role"`
}

// Resume references the uploaded resume in object storage.
type Resume struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	PageCount *int   `json:"page_count,omitempty"`
}

// Application is a job seeker's submission against a job posting.
// EmployerID is captured from the job owner at submission and never re-resolved.
type Application struct {
	ID          uuid.UUID `json:"_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CoverLetter string    `json:"coverLetter"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	ApplicantID Party     `json:"applicantID"`
	EmployerID  Party     `json:"employerID"`
	Resume      Resume    `json:"resume"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ResumeFile describes a received resume spooled to local disk.
// TempPath is empty when the file could not be spooled.
type ResumeFile struct {
	Filename    string
	ContentType string
	TempPath    string
	Size        int64
}

// SubmitCommand carries the submission form. Resume is nil when no file was
// sent. TransportErr holds a failure reading the request body, in which case
// neither fields nor file are trustworthy.
type SubmitCommand struct {
	Name         string
	Email        string
	CoverLetter  string
	Phone        string
	Address      string
	JobID        string
	Resume       *ResumeFile
	TransportErr error
}

func (c SubmitCommand) complete() bool {
	for _, v := range []string{c.Name, c.Email, c.CoverLetter, c.Phone, c.Address, c.JobID} {
		if v == "" {
			return false
		}
	}
	return true
}

// Response bodies. The shapes match what the web client reads.
type (
	SubmitResponse struct {
		Success     bool         `json:"success"`
		Message     string       `json:"message"`
		Application *Application `json:"application"`
	}

	ListResponse struct {
		Success      bool          `json:"success"`
		Applications []Application `json:"applications"`
	}

	MessageResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
)
