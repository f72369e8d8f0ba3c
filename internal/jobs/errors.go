package jobs

import "github.com/JaimeStill/jobboard/pkg/apperr"

// ErrNotFound is returned when no job matches the requested id.
var ErrNotFound = apperr.New(apperr.NotFound, "Job not found!")
