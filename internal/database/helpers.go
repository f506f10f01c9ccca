package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

// Queryer is satisfied by both the DB interface and *sqlx.Tx so that
// repository methods can run inside or outside a transaction.
type Queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// uniqueViolation is the PostgreSQL error code for unique constraint failures
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique constraint error
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// statusStrings converts reservation statuses for use with pq.Array
func statusStrings(statuses []models.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
