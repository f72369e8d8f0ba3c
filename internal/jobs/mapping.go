package jobs

import (
	"github.com/JaimeStill/jobboard/pkg/query"
	"github.com/JaimeStill/jobboard/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "jobs", "j").
	Project("id", "ID").
	Project("title", "Title").
	Project("posted_by", "PostedBy").
	Project("created_at", "CreatedAt")

func scanJob(s repository.Scanner) (Job, error) {
	var j Job
	err := s.Scan(&j.ID, &j.Title, &j.PostedBy, &j.CreatedAt)
	return j, err
}
