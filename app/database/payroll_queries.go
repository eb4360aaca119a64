package database

import (
	"database/sql"
	"fmt"
	"strings"

	"edupro-lms/app/models"
)

const salaryColumns = `id, staff_id, period, gross_amount, deduction, net_amount,
	method, reference, date, status, paid_by, created_at`

// GetAttendanceStats returns the attendance record for one staff member and
// period. A missing record reads as zeroes: no attendance supplied means no
// deduction.
func GetAttendanceStats(db *sql.DB, staffID, period string) (*models.AttendanceStats, error) {
	stats := &models.AttendanceStats{StaffID: staffID, Period: period}
	query := `SELECT present_days, absences, lates FROM staff_attendance WHERE staff_id = $1 AND period = $2`
	err := db.QueryRow(query, staffID, period).Scan(&stats.PresentDays, &stats.Absences, &stats.Lates)
	if isNoRows(err) {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// UpsertAttendanceStats records the attendance input supplied by the
// attendance system for one staff member and period.
func UpsertAttendanceStats(db *sql.DB, stats *models.AttendanceStats) error {
	if strings.TrimSpace(stats.StaffID) == "" || stats.Period == "" {
		return models.NewFinanceError(models.ErrInvalidInput, "staff_id and period are required")
	}
	if stats.PresentDays < 0 || stats.Absences < 0 || stats.Lates < 0 {
		return models.NewFinanceError(models.ErrInvalidInput, "attendance counts cannot be negative")
	}

	query := `INSERT INTO staff_attendance (staff_id, period, present_days, absences, lates, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW())
			  ON CONFLICT (staff_id, period)
			  DO UPDATE SET present_days = $3, absences = $4, lates = $5, updated_at = NOW()`
	_, err := db.Exec(query, stats.StaffID, stats.Period, stats.PresentDays, stats.Absences, stats.Lates)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance: %v", err)
	}
	return nil
}

// ComputeDeduction applies the fixed penalty rates to attendance counts.
// Pure function, no mutation.
func ComputeDeduction(absences, lates int, rates models.DeductionRates) float64 {
	return float64(absences)*rates.AbsentPenalty + float64(lates)*rates.LatePenalty
}

// QuotePayroll computes the payout preview for one staff member and period.
// Nothing is persisted; safe to call repeatedly for UI preview.
func QuotePayroll(db *sql.DB, staffID, period string, rates models.DeductionRates) (*models.PayrollQuote, error) {
	staff, err := GetStaffByID(db, staffID)
	if err != nil {
		return nil, err
	}
	stats, err := GetAttendanceStats(db, staffID, period)
	if err != nil {
		return nil, err
	}

	deduction := ComputeDeduction(stats.Absences, stats.Lates, rates)
	gross := staff.Gross()
	return &models.PayrollQuote{
		StaffID:   staffID,
		Period:    period,
		Gross:     gross,
		Absences:  stats.Absences,
		Lates:     stats.Lates,
		Deduction: deduction,
		Net:       gross - deduction,
	}, nil
}

// GetSalaryPayment fetches the disbursement for one staff member and period,
// or a NotFound error when nothing was paid yet.
func GetSalaryPayment(db *sql.DB, staffID, period string) (*models.SalaryPayment, error) {
	query := `SELECT ` + salaryColumns + ` FROM salary_payments WHERE staff_id = $1 AND period = $2`
	payment, err := scanSalaryPayment(db.QueryRow(query, staffID, period))
	if isNoRows(err) {
		return nil, models.NewFinanceError(models.ErrNotFound, "no salary payment for %s in %s", staffID, period)
	}
	return payment, err
}

// GetSalaryHistory lists disbursements newest first, optionally scoped to one
// staff member.
func GetSalaryHistory(db *sql.DB, staffID string) ([]*models.SalaryPayment, error) {
	query := `SELECT ` + salaryColumns + ` FROM salary_payments`
	var args []interface{}
	if staffID != "" {
		query += ` WHERE staff_id = $1`
		args = append(args, staffID)
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []*models.SalaryPayment{}
	for rows.Next() {
		payment, err := scanSalaryPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func scanSalaryPayment(row rowScanner) (*models.SalaryPayment, error) {
	p := &models.SalaryPayment{}
	err := row.Scan(
		&p.ID, &p.StaffID, &p.Period, &p.GrossAmount, &p.Deduction, &p.NetAmount,
		&p.Method, &p.Reference, &p.Date, &p.Status, &p.PaidBy, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
