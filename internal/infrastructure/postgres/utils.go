package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de Postgres para violación de constraint único.
const pgUniqueViolation = "23505"

// isUniqueViolation detecta el 23505 tanto en errores pgconn tipados como en
// errores ya aplanados a texto por una capa intermedia.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return err != nil && strings.Contains(err.Error(), pgUniqueViolation)
}
