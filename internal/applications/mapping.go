package applications

import (
	"fmt"
	"mime"

	"github.com/JaimeStill/jobboard/pkg/auth"
	"github.com/JaimeStill/jobboard/pkg/query"
	"github.com/JaimeStill/jobboard/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "applications", "a").
	Project("id", "ID").
	Project("name", "Name").
	Project("email", "Email").
	Project("cover_letter", "CoverLetter").
	Project("phone", "Phone").
	Project("address", "Address").
	Project("applicant_id", "ApplicantID").
	Project("applicant_role", "ApplicantRole").
	Project("employer_id", "EmployerID").
	Project("employer_role", "EmployerRole").
	Project("resume_public_id", "ResumePublicID").
	Project("resume_url", "ResumeURL").
	Project("resume_page_count", "ResumePageCount").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

var insertSQL = fmt.Sprintf(`
	INSERT INTO public.applications AS a (
		id, name, email, cover_letter, phone, address,
		applicant_id, applicant_role, employer_id, employer_role,
		resume_public_id, resume_url, resume_page_count
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING %s`, projection.Columns())

func insertArgs(a *Application) []any {
	return []any{
		a.ID,
		a.Name,
		a.Email,
		a.CoverLetter,
		a.Phone,
		a.Address,
		a.ApplicantID.User,
		a.ApplicantID.Role.String(),
		a.EmployerID.User,
		a.EmployerID.Role.String(),
		a.Resume.PublicID,
		a.Resume.URL,
		a.Resume.PageCount,
	}
}

func scanApplication(s repository.Scanner) (Application, error) {
	var (
		a                           Application
		applicantRole, employerRole string
	)

	err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.CoverLetter,
		&a.Phone,
		&a.Address,
		&a.ApplicantID.User,
		&applicantRole,
		&a.EmployerID.User,
		&employerRole,
		&a.Resume.PublicID,
		&a.Resume.URL,
		&a.Resume.PageCount,
		&a.CreatedAt,
	)
	if err != nil {
		return a, err
	}

	if a.ApplicantID.Role, err = auth.ParseRole(applicantRole); err != nil {
		return a, fmt.Errorf("scan applicant role: %w", err)
	}
	if a.EmployerID.Role, err = auth.ParseRole(employerRole); err != nil {
		return a, fmt.Errorf("scan employer role: %w", err)
	}
	return a, nil
}

var resumeTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
	"application/pdf": true,
}

// mediaType returns the declared media type without parameters, lowercased.
func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}

func allowedResume(contentType string) bool {
	return resumeTypes[mediaType(contentType)]
}
