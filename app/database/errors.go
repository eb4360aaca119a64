package database

import (
	"database/sql"

	"github.com/lib/pq"

	"edupro-lms/app/models"
)

// Postgres error codes that the finance layer translates into domain errors.
const (
	pgUniqueViolation  = "23505"
	pgSerialization    = "40001"
	pgDeadlockDetected = "40P01"
	pgLockNotAvailable = "55P03"
)

// translateError maps driver-level failures onto the finance error taxonomy.
// Lock contention and serialization failures become Conflict, the one kind a
// caller may retry; anything else passes through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch string(pqErr.Code) {
		case pgSerialization, pgDeadlockDetected, pgLockNotAvailable:
			return models.NewFinanceError(models.ErrConflict, "operation conflicts with a concurrent update, retry")
		}
	}
	return err
}

// isUniqueViolation reports whether err is a Postgres duplicate-key error.
func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && string(pqErr.Code) == pgUniqueViolation
}

// isNoRows reports whether err is the driver's empty-result sentinel.
func isNoRows(err error) bool {
	return err == sql.ErrNoRows
}
