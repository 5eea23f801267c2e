package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos do Postgres para corrida perdida no insert:
// 23505 = unique_violation, 23P01 = exclusion_violation.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// IsExclusionConflict detecta escrita que perdeu a corrida contra
// a constraint de sobreposição de horários.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation
	}
	return false
}
