package api

import (
	"github.com/JaimeStill/jobboard/internal/applications"
	"github.com/JaimeStill/jobboard/internal/jobs"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Jobs         jobs.System
	Applications applications.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	jobsSystem := jobs.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	applicationsSystem := applications.New(
		runtime.Database.Connection(),
		runtime.Storage,
		jobsSystem,
		runtime.Logger,
		applications.Options{CleanupOrphans: runtime.CleanupOrphans},
	)

	return &Domain{
		Jobs:         jobsSystem,
		Applications: applicationsSystem,
	}
}
