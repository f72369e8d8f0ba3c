package applications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/JaimeStill/jobboard/pkg/auth"
	"github.com/JaimeStill/jobboard/pkg/formatting"
	"github.com/JaimeStill/jobboard/pkg/handlers"
	"github.com/JaimeStill/jobboard/pkg/routes"
)

// formMemory is the portion of a multipart body held in memory before
// net/http spills file parts to disk.
const formMemory = 1 << 20

// Handler provides HTTP endpoints for application operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
	tempDir       string
}

// NewHandler creates a Handler. Resumes are spooled to tempDir, or the
// system temp directory when empty.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64, tempDir string) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "applications"),
		maxUploadSize: maxUploadSize,
		tempDir:       tempDir,
	}
}

// Routes returns the route group definition for application endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/v1/application",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/post", Handler: h.Submit},
			{Method: "GET", Pattern: "/employer/getall", Handler: h.ListForEmployer},
			{Method: "GET", Pattern: "/jobseeker/getall", Handler: h.ListForJobSeeker},
			{Method: "DELETE", Pattern: "/delete/{id}", Handler: h.Delete},
		},
	}
}

// Submit accepts a multipart form with a resume file and applicant details.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	cmd := h.readSubmission(w, r)
	defer h.cleanup(r, cmd.Resume)

	app, err := h.sys.Submit(r.Context(), p, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SubmitResponse{
		Success:     true,
		Message:     msgSubmitted,
		Application: app,
	})
}

// ListForEmployer returns the applications addressed to the calling employer.
func (h *Handler) ListForEmployer(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.sys.ListForEmployer)
}

// ListForJobSeeker returns the applications submitted by the calling job seeker.
func (h *Handler) ListForJobSeeker(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.sys.ListForJobSeeker)
}

// Delete withdraws an application by its path id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), p, r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: msgDeleted,
	})
}

func (h *Handler) list(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context, p auth.Principal) ([]Application, error),
) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	apps, err := fetch(r.Context(), p)
	if err != nil {
		handlers.RespondError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ListResponse{
		Success:      true,
		Applications: apps,
	})
}

func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, ErrNotAuthenticated)
	}
	return p, ok
}

// readSubmission parses the form and spools the resume part to disk.
// Problems are recorded on the command so the workflow can order its checks.
func (h *Handler) readSubmission(w http.ResponseWriter, r *http.Request) SubmitCommand {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var cmd SubmitCommand
	if err := r.ParseMultipartForm(formMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("request exceeds %s: %w", formatting.FormatBytes(tooLarge.Limit, 0), err)
		}
		cmd.TransportErr = err
		return cmd
	}

	cmd.Name = r.FormValue("name")
	cmd.Email = r.FormValue("email")
	cmd.CoverLetter = r.FormValue("coverLetter")
	cmd.Phone = r.FormValue("phone")
	cmd.Address = r.FormValue("address")
	cmd.JobID = r.FormValue("jobId")

	file, header, err := r.FormFile("resume")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			cmd.TransportErr = err
		}
		return cmd
	}
	defer file.Close()

	cmd.Resume = &ResumeFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}

	path, err := h.spool(file)
	if err != nil {
		h.logger.Warn("resume spool failed", "filename", header.Filename, "error", err)
		return cmd
	}
	cmd.Resume.TempPath = path

	h.logger.Debug(
		"resume received",
		"filename", header.Filename,
		"size", formatting.FormatBytes(header.Size, 1),
	)
	return cmd
}

func (h *Handler) spool(file multipart.File) (string, error) {
	tmp, err := os.CreateTemp(h.tempDir, "resume-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmp.Name(), nil
}

func (h *Handler) cleanup(r *http.Request, res *ResumeFile) {
	if res != nil && res.TempPath != "" {
		if err := os.Remove(res.TempPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			h.logger.Warn("temp resume cleanup failed", "path", res.TempPath, "error", err)
		}
	}
	if r.MultipartForm != nil {
		r.MultipartForm.RemoveAll()
	}
}
