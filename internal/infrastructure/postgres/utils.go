package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/origon-auth/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// uniqueViolation traduce una violación de unicidad al sentinel de dominio según el
// constraint (<tabla>_email_key / <tabla>_username_key). nil si err no es una violación.
func uniqueViolation(err error) error {
	if err == nil || !isUniqueViolation(err) {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasSuffix(pgErr.ConstraintName, "_email_key"):
			return domain.ErrDuplicateEmail
		case strings.HasSuffix(pgErr.ConstraintName, "_username_key"):
			return domain.ErrDuplicateUsername
		}
		if strings.Contains(pgErr.Detail, "(username)") {
			return domain.ErrDuplicateUsername
		}
	}
	return domain.ErrDuplicateEmail
}
