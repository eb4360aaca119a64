package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"edupro-lms/app/models"
)

const fineColumns = `id, student_id, amount, reason, category, date, status, created_at, updated_at`

// normalizeStudentID trims and case-folds a student id for comparison.
// Upstream systems reference students inconsistently (padding, casing), so
// the fine registry matches on the normalized form. This tolerance is
// intentionally confined to this repository boundary.
func normalizeStudentID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// AddFine registers a pending fine against a student. The date defaults to
// today when absent.
func AddFine(db *sql.DB, fine *models.Fine) error {
	if fine.Amount <= 0 {
		return models.NewFinanceError(models.ErrInvalidInput, "fine amount must be greater than zero")
	}
	if strings.TrimSpace(fine.StudentID) == "" || fine.Reason == "" {
		return models.NewFinanceError(models.ErrInvalidInput, "student_id and reason are required")
	}
	if fine.Date.IsZero() {
		fine.Date = time.Now()
	}
	fine.Status = models.FinePending

	query := `INSERT INTO fines (student_id, amount, reason, category, date, status)
			  VALUES ($1, $2, $3, $4, $5, 'pending')
			  RETURNING id, created_at, updated_at`
	err := db.QueryRow(query, fine.StudentID, fine.Amount, fine.Reason, fine.Category, fine.Date).
		Scan(&fine.ID, &fine.CreatedAt, &fine.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert fine: %v", err)
	}
	return nil
}

// GetFineByID fetches a single fine.
func GetFineByID(db *sql.DB, id string) (*models.Fine, error) {
	fine, err := scanFine(db.QueryRow(`SELECT `+fineColumns+` FROM fines WHERE id = $1`, id))
	if isNoRows(err) {
		return nil, models.NewFinanceError(models.ErrNotFound, "fine not found")
	}
	return fine, err
}

// GetAllFines lists every fine, newest first.
func GetAllFines(db *sql.DB) ([]*models.Fine, error) {
	return queryFines(db, `SELECT `+fineColumns+` FROM fines ORDER BY date DESC, created_at DESC`)
}

// GetStudentFines lists fines for one student using normalized id matching.
func GetStudentFines(db *sql.DB, studentID string) ([]*models.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines
			  WHERE LOWER(TRIM(student_id)) = $1
			  ORDER BY date DESC, created_at DESC`
	return queryFines(db, query, normalizeStudentID(studentID))
}

// PendingFineTotal sums the pending fine amounts for a student, matching the
// id case/whitespace-insensitively.
func PendingFineTotal(db *sql.DB, studentID string) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM fines
			  WHERE LOWER(TRIM(student_id)) = $1 AND status = 'pending'`
	var total float64
	if err := db.QueryRow(query, normalizeStudentID(studentID)).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// ToggleFineStatus flips a fine between pending and paid. Unlike voucher
// settlement this is not a terminal transition.
func ToggleFineStatus(db *sql.DB, id string) (*models.Fine, error) {
	query := `UPDATE fines
			  SET status = CASE WHEN status = 'paid' THEN 'pending' ELSE 'paid' END,
			      updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + fineColumns
	fine, err := scanFine(db.QueryRow(query, id))
	if isNoRows(err) {
		return nil, models.NewFinanceError(models.ErrNotFound, "fine not found")
	}
	if err != nil {
		return nil, translateError(err)
	}
	return fine, nil
}

// SettleFinesByIDs marks the given fines paid inside the voucher settlement
// transaction. Unknown ids are silently skipped: once linked, fines carry no
// independent money movement, so the bulk update is a convenience, not an
// atomic-per-item operation.
func SettleFinesByIDs(tx *sql.Tx, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(`UPDATE fines SET status = 'paid', updated_at = NOW() WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to settle fines: %v", err)
	}
	return nil
}

// DeleteFine removes a fine permanently. Fines are never auto-deleted.
func DeleteFine(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM fines WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewFinanceError(models.ErrNotFound, "fine not found")
	}
	return nil
}

func queryFines(db *sql.DB, query string, args ...interface{}) ([]*models.Fine, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fines := []*models.Fine{}
	for rows.Next() {
		fine, err := scanFine(rows)
		if err != nil {
			return nil, err
		}
		fines = append(fines, fine)
	}
	return fines, rows.Err()
}

func scanFine(row rowScanner) (*models.Fine, error) {
	f := &models.Fine{}
	var status string
	err := row.Scan(&f.ID, &f.StudentID, &f.Amount, &f.Reason, &f.Category, &f.Date, &status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.Status = models.FineStatus(status)
	return f, nil
}
