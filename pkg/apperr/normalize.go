package apperr

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02"

	msgInternal     = "Internal Server Error"
	msgTokenInvalid = "JSON Web Token is invalid. Try again!"
	msgTokenExpired = "JSON Web Token has expired. Try again!"
)

// Normalize maps any error onto the taxonomy.
// Classified errors pass through unchanged. Cast failures, unique violations,
// and token failures become BadRequest regardless of which layer produced them.
// Everything else becomes Internal with a generic message; the cause is kept in Err.
func Normalize(err error) *Error {
	if err == nil {
		return nil
	}

	if e, ok := AsError(err); ok {
		return e
	}

	var castErr *CastError
	if errors.As(err, &castErr) {
		return Wrap(BadRequest, invalidField(castErr.Field), err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidTextRepresentation:
			return Wrap(BadRequest, invalidField(pgField(pgErr, "id")), err)
		case pgUniqueViolation:
			return Wrap(BadRequest, fmt.Sprintf("Duplicate %s entered", pgField(pgErr, "value")), err)
		}
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return Wrap(BadRequest, msgTokenExpired, err)
	}
	if isTokenError(err) {
		return Wrap(BadRequest, msgTokenInvalid, err)
	}

	return Wrap(Internal, msgInternal, err)
}

func invalidField(field string) string {
	return fmt.Sprintf("Resource not found. Invalid %s", field)
}

func pgField(pgErr *pgconn.PgError, fallback string) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return fallback
}

var tokenErrors = []error{
	jwt.ErrTokenMalformed,
	jwt.ErrTokenUnverifiable,
	jwt.ErrTokenSignatureInvalid,
	jwt.ErrTokenInvalidClaims,
	jwt.ErrTokenNotValidYet,
	jwt.ErrTokenUsedBeforeIssued,
	jwt.ErrTokenInvalidIssuer,
	jwt.ErrTokenInvalidAudience,
	jwt.ErrTokenRequiredClaimMissing,
	jwt.ErrInvalidKey,
	jwt.ErrInvalidKeyType,
}

func isTokenError(err error) bool {
	for _, target := range tokenErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
