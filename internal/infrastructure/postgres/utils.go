package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código de PostgreSQL para violación de constraint único.
const codeUniqueViolation = "23505"

// isUniqueViolation reporta si err proviene de una clave duplicada, para que
// los repositorios lo traduzcan a los centinelas de dominio (ErrDuplicate,
// ErrEmailAlreadyExists).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
