package applications

import "github.com/JaimeStill/jobboard/pkg/apperr"

// Client-facing workflow errors.
var (
	ErrEmployerCannotApply = apperr.New(apperr.Forbidden, "Employers cannot apply for jobs.")
	ErrUnauthorizedAccess  = apperr.New(apperr.Forbidden, "Unauthorized access")
	ErrNotAuthenticated    = apperr.New(apperr.Unauthorized, "User Not Authorized")
	ErrResumeRequired      = apperr.New(apperr.BadRequest, "Resume file is required!")
	ErrInvalidFileType     = apperr.New(apperr.BadRequest, "Invalid file type. Upload a PDF or image.")
	ErrFileTransport       = apperr.New(apperr.BadRequest, "File upload error. Try again.")
	ErrMissingFields       = apperr.New(apperr.BadRequest, "Please fill all required fields.")
	ErrNotFound            = apperr.New(apperr.NotFound, "Application not found!")
)

// Success messages.
const (
	msgSubmitted = "Application Submitted Successfully!"
	msgDeleted   = "Application deleted successfully."
)

func uploadFailed(cause error) error {
	return apperr.Wrap(apperr.UploadFailed, "Failed to upload resume", cause)
}
