package applications

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/JaimeStill/jobboard/internal/jobs"
	"github.com/JaimeStill/jobboard/pkg/apperr"
	"github.com/JaimeStill/jobboard/pkg/auth"
	"github.com/JaimeStill/jobboard/pkg/metrics"
	"github.com/JaimeStill/jobboard/pkg/query"
	"github.com/JaimeStill/jobboard/pkg/repository"
	"github.com/JaimeStill/jobboard/pkg/storage"
)

// resumeFolder prefixes the public id of every uploaded resume.
const resumeFolder = "applications"

// Options tunes workflow side effects.
type Options struct {
	// CleanupOrphans deletes a stored resume when submission fails after the
	// upload, and when its application is deleted. Off by default, which
	// leaves such resumes in storage and counts them as orphans.
	CleanupOrphans bool
}

type repo struct {
	db      *sql.DB
	storage storage.System
	jobs    jobs.System
	logger  *slog.Logger
	opts    Options
}

// New creates the application workflow implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	jobs jobs.System,
	logger *slog.Logger,
	opts Options,
) System {
	return &repo{
		db:      db,
		storage: store,
		jobs:    jobs,
		logger:  logger.With("system", "applications"),
		opts:    opts,
	}
}

func (r *repo) Handler(maxUploadSize int64, tempDir string) *Handler {
	return NewHandler(r, r.logger, maxUploadSize, tempDir)
}

func (r *repo) Submit(ctx context.Context, p auth.Principal, cmd SubmitCommand) (app *Application, err error) {
	defer observe("submit", &err)

	switch p.Role {
	case auth.RoleJobSeeker:
	case auth.RoleEmployer:
		return nil, ErrEmployerCannotApply
	default:
		return nil, ErrUnauthorizedAccess
	}

	if cmd.TransportErr != nil {
		return nil, apperr.Wrap(apperr.BadRequest, ErrFileTransport.Message, cmd.TransportErr)
	}
	res := cmd.Resume
	if res == nil {
		return nil, ErrResumeRequired
	}
	if !allowedResume(res.ContentType) {
		return nil, ErrInvalidFileType
	}
	if res.TempPath == "" {
		return nil, ErrFileTransport
	}

	obj, err := r.storage.Upload(ctx, res.TempPath, storage.UploadOptions{
		ResourceType: storage.ResourceAuto,
		Folder:       resumeFolder,
		Filename:     res.Filename,
		ContentType:  mediaType(res.ContentType),
	})
	if err != nil {
		return nil, uploadFailed(err)
	}
	if obj == nil || obj.PublicID == "" {
		return nil, uploadFailed(nil)
	}

	app, err = r.record(ctx, p, cmd, obj)
	if err != nil {
		r.orphan(ctx, obj.PublicID, err)
		return nil, err
	}

	r.logger.Info(
		"application submitted",
		"id", app.ID,
		"applicant", app.ApplicantID.User,
		"employer", app.EmployerID.User,
	)
	return app, nil
}

// record runs the post-upload steps: field validation, job lookup, and insert.
func (r *repo) record(ctx context.Context, p auth.Principal, cmd SubmitCommand, obj *storage.Object) (*Application, error) {
	if !cmd.complete() {
		return nil, ErrMissingFields
	}

	jobID, err := uuid.Parse(cmd.JobID)
	if err != nil {
		return nil, &apperr.CastError{Field: "jobId", Value: cmd.JobID}
	}

	job, err := r.jobs.Find(ctx, jobID)
	if err != nil {
		return nil, err
	}

	app := &Application{
		ID:          uuid.New(),
		Name:        cmd.Name,
		Email:       cmd.Email,
		CoverLetter: cmd.CoverLetter,
		Phone:       cmd.Phone,
		Address:     cmd.Address,
		ApplicantID: Party{User: p.ID, Role: auth.RoleJobSeeker},
		EmployerID:  Party{User: job.PostedBy, Role: auth.RoleEmployer},
		Resume: Resume{
			PublicID:  obj.PublicID,
			URL:       obj.SecureURL,
			PageCount: r.pageCount(cmd.Resume),
		},
	}

	args := insertArgs(app)
	created, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Application, error) {
		return repository.QueryOne(ctx, tx, insertSQL, args, scanApplication)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repo) ListForEmployer(ctx context.Context, p auth.Principal) (apps []Application, err error) {
	defer observe("list_employer", &err)

	if p.Role != auth.RoleEmployer {
		return nil, ErrUnauthorizedAccess
	}
	return r.list(ctx, "EmployerID", p.ID)
}

func (r *repo) ListForJobSeeker(ctx context.Context, p auth.Principal) (apps []Application, err error) {
	defer observe("list_jobseeker", &err)

	if p.Role != auth.RoleJobSeeker {
		return nil, ErrUnauthorizedAccess
	}
	return r.list(ctx, "ApplicantID", p.ID)
}

func (r *repo) list(ctx context.Context, ownerField string, owner uuid.UUID) ([]Application, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals(ownerField, owner).
		Build()

	return repository.QueryMany(ctx, r.db, q, args, scanApplication)
}

func (r *repo) Delete(ctx context.Context, p auth.Principal, id string) (err error) {
	defer observe("delete", &err)

	if p.Role != auth.RoleJobSeeker {
		return ErrUnauthorizedAccess
	}

	appID, err := uuid.Parse(id)
	if err != nil {
		return &apperr.CastError{Field: "id", Value: id}
	}

	q, args := query.
		NewBuilder(projection).
		WhereEquals("ID", appID).
		WhereEquals("ApplicantID", p.ID).
		BuildDelete()

	app, err := repository.QueryOne(ctx, r.db, q, args, scanApplication)
	if err != nil {
		return repository.MapError(err, ErrNotFound)
	}

	r.logger.Info("application deleted", "id", app.ID, "applicant", p.ID)
	r.release(ctx, app.Resume.PublicID)
	return nil
}

// orphan handles a resume uploaded for a submission that was not recorded.
func (r *repo) orphan(ctx context.Context, publicID string, cause error) {
	reason := "submit_" + apperr.KindOf(cause).String()
	if r.opts.CleanupOrphans && r.remove(ctx, publicID) {
		return
	}
	metrics.ObserveOrphan(reason)
	r.logger.Warn("resume orphaned", "public_id", publicID, "reason", reason, "error", cause)
}

// release handles the resume of a deleted application.
func (r *repo) release(ctx context.Context, publicID string) {
	if r.opts.CleanupOrphans && r.remove(ctx, publicID) {
		return
	}
	metrics.ObserveOrphan("application_deleted")
	r.logger.Info("resume retained after application delete", "public_id", publicID)
}

func (r *repo) remove(ctx context.Context, publicID string) bool {
	ctx = context.WithoutCancel(ctx)

	if err := r.storage.Delete(ctx, publicID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		r.logger.Warn("resume cleanup failed", "public_id", publicID, "error", err)
		return false
	}
	r.logger.Info("resume removed", "public_id", publicID)
	return true
}

func (r *repo) pageCount(res *ResumeFile) *int {
	if mediaType(res.ContentType) != "application/pdf" {
		return nil
	}

	f, err := os.Open(res.TempPath)
	if err != nil {
		r.logger.Warn("failed to open resume for page count", "error", err)
		return nil
	}
	defer f.Close()

	count, err := api.PageCount(f, nil)
	if err != nil {
		r.logger.Warn("failed to extract PDF page count", "filename", res.Filename, "error", err)
		return nil
	}
	return &count
}

func observe(operation string, err *error) {
	outcome := "success"
	if *err != nil {
		outcome = apperr.KindOf(*err).String()
	}
	metrics.ObserveApplication(operation, outcome)
}
