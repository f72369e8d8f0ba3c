package jobs

import (
	"context"

	"github.com/google/uuid"
)

// System defines the job lookups the application workflow depends on.
type System interface {
	Find(ctx context.Context, id uuid.UUID) (*Job, error)
}
