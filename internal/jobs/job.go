// Package jobs provides read-only access to job postings. Applications capture
// a job's owner at submission time and never re-resolve it.
package jobs

import (
	"time"

	"github.com/google/uuid"
)

// Job is a posting owned by an employer.
type Job struct {
	ID        uuid.UUID `json:"_id"`
	Title     string    `json:"title"`
	PostedBy  uuid.UUID `json:"postedBy"`
	CreatedAt time.Time `json:"createdAt"`
}
