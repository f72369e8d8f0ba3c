package applications

import (
	"context"

	"github.com/JaimeStill/jobboard/pkg/auth"
)

// System defines the application workflow. Every operation takes the
// authenticated principal explicitly and enforces its role.
type System interface {
	Handler(maxUploadSize int64, tempDir string) *Handler

	// Submit validates and uploads the resume, then records the application
	// against the referenced job.
	Submit(ctx context.Context, p auth.Principal, cmd SubmitCommand) (*Application, error)

	// ListForEmployer returns every application addressed to the employer.
	ListForEmployer(ctx context.Context, p auth.Principal) ([]Application, error)

	// ListForJobSeeker returns every application the job seeker submitted.
	ListForJobSeeker(ctx context.Context, p auth.Principal) ([]Application, error)

	// Delete withdraws one of the job seeker's own applications. An id owned by
	// another seeker is reported as not found.
	Delete(ctx context.Context, p auth.Principal, id string) error
}
