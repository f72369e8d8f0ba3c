package repository

import (
	"database/sql"
	"errors"
)

// MapError translates sql.ErrNoRows to notFoundErr.
// Driver errors such as *pgconn.PgError pass through unchanged so the
// error normalizer can classify them.
func MapError(err, notFoundErr error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}
	return err
}
