package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"edupro-lms/app/models"
)

const voucherColumns = `id, student_id, period, issue_date, due_date, discount, late_fine,
	total_amount, paid_amount, status, payment_date, payment_method, created_by, created_at, updated_at`

// newVoucherID mirrors the issued voucher numbering ("FEE-..." serials).
func newVoucherID() string {
	return "FEE-" + strings.ToUpper(uuid.NewString()[:8])
}

// CreateVoucher builds a voucher from fee lines, linked pending fines
// (amounts snapshotted now; later fine edits never change the total), a late
// fine and a discount. The total is fixed at creation.
func CreateVoucher(db *sql.DB, data *models.NewVoucher, createdBy string) (*models.FeeVoucher, error) {
	if strings.TrimSpace(data.StudentID) == "" || data.Period == "" {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "student_id and period are required")
	}
	if len(data.FeeLines) == 0 && len(data.LinkedFineIDs) == 0 {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "voucher needs at least one fee line or linked fine")
	}
	if data.Discount < 0 || data.LateFine < 0 {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "discount and late fine cannot be negative")
	}
	for _, line := range data.FeeLines {
		if line.Category == "" || line.Amount <= 0 {
			return nil, models.NewFinanceError(models.ErrInvalidInput, "every fee line needs a category and a positive amount")
		}
	}
	issueDate, err := time.Parse("2006-01-02", data.IssueDate)
	if err != nil {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "issue_date must be a valid calendar date (YYYY-MM-DD)")
	}
	dueDate, err := time.Parse("2006-01-02", data.DueDate)
	if err != nil {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "due_date must be a valid calendar date (YYYY-MM-DD)")
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Snapshot the linked fines. Each must exist and still be pending.
	fineAmounts := make([]float64, 0, len(data.LinkedFineIDs))
	for _, fineID := range data.LinkedFineIDs {
		var amount float64
		var status string
		err := tx.QueryRow(`SELECT amount, status FROM fines WHERE id = $1`, fineID).Scan(&amount, &status)
		if isNoRows(err) {
			return nil, models.NewFinanceError(models.ErrNotFound, "linked fine %s not found", fineID)
		}
		if err != nil {
			return nil, translateError(err)
		}
		if models.FineStatus(status) != models.FinePending {
			return nil, models.NewFinanceError(models.ErrInvalidState, "linked fine %s is not pending", fineID)
		}
		fineAmounts = append(fineAmounts, amount)
	}

	total := models.VoucherTotal(data.FeeLines, fineAmounts, data.LateFine, data.Discount)
	if total <= 0 {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "discount exceeds the voucher total")
	}

	voucher := &models.FeeVoucher{
		ID:            newVoucherID(),
		StudentID:     strings.TrimSpace(data.StudentID),
		Period:        data.Period,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Discount:      data.Discount,
		LateFine:      data.LateFine,
		TotalAmount:   total,
		PaidAmount:    0,
		Status:        models.VoucherUnpaid,
		CreatedBy:     createdBy,
		LinkedFineIDs: data.LinkedFineIDs,
	}

	query := `INSERT INTO vouchers (id, student_id, period, issue_date, due_date, discount, late_fine,
			  total_amount, paid_amount, status, created_by)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 'unpaid', $9)
			  RETURNING created_at, updated_at`
	err = tx.QueryRow(query,
		voucher.ID, voucher.StudentID, voucher.Period, voucher.IssueDate, voucher.DueDate,
		voucher.Discount, voucher.LateFine, voucher.TotalAmount, voucher.CreatedBy,
	).Scan(&voucher.CreatedAt, &voucher.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert voucher: %v", err)
	}

	for _, line := range data.FeeLines {
		l := &models.VoucherLine{VoucherID: voucher.ID, Category: line.Category, Amount: line.Amount}
		err = tx.QueryRow(`INSERT INTO voucher_lines (voucher_id, category, amount) VALUES ($1, $2, $3) RETURNING id`,
			l.VoucherID, l.Category, l.Amount).Scan(&l.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert voucher line: %v", err)
		}
		voucher.Lines = append(voucher.Lines, l)
	}

	for i, fineID := range data.LinkedFineIDs {
		_, err = tx.Exec(`INSERT INTO voucher_fines (voucher_id, fine_id, amount) VALUES ($1, $2, $3)`,
			voucher.ID, fineID, fineAmounts[i])
		if err != nil {
			return nil, fmt.Errorf("failed to link fine: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, translateError(err)
	}
	return voucher, nil
}

// GetVoucherByID fetches a voucher with its fee lines and linked fine ids.
func GetVoucherByID(db *sql.DB, id string) (*models.FeeVoucher, error) {
	voucher, err := scanVoucher(db.QueryRow(`SELECT `+voucherColumns+` FROM vouchers WHERE id = $1`, id))
	if isNoRows(err) {
		return nil, models.NewFinanceError(models.ErrNotFound, "voucher not found")
	}
	if err != nil {
		return nil, err
	}
	if err := loadVoucherDetails(db, voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

// GetAllVouchers lists every voucher, newest first, without line details.
func GetAllVouchers(db *sql.DB) ([]*models.FeeVoucher, error) {
	return queryVouchers(db, `SELECT `+voucherColumns+` FROM vouchers ORDER BY created_at DESC`)
}

// GetStudentVouchers lists a student's vouchers, newest first.
func GetStudentVouchers(db *sql.DB, studentID string) ([]*models.FeeVoucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE student_id = $1 ORDER BY created_at DESC`
	return queryVouchers(db, query, strings.TrimSpace(studentID))
}

// DeleteVoucher removes the voucher with its lines and fine links. Already
// posted ledger entries are deliberately left alone; reversing money movement
// is the ledger void operation's job.
func DeleteVoucher(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM vouchers WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewFinanceError(models.ErrNotFound, "voucher not found")
	}
	return nil
}

// VoucherStats aggregates voucher counts and amounts, optionally scoped to
// one student. Overdue means unpaid and past due date.
func VoucherStats(db *sql.DB, studentID string) (*models.VoucherStatistics, error) {
	query := `SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = 'paid'),
		COUNT(*) FILTER (WHERE status = 'partial'),
		COUNT(*) FILTER (WHERE status = 'unpaid'),
		COUNT(*) FILTER (WHERE status = 'unpaid' AND due_date < NOW()),
		COALESCE(SUM(total_amount), 0),
		COALESCE(SUM(paid_amount), 0),
		COALESCE(SUM(total_amount - paid_amount), 0)
		FROM vouchers`
	var args []interface{}
	if studentID != "" {
		query += ` WHERE student_id = $1`
		args = append(args, strings.TrimSpace(studentID))
	}

	stats := &models.VoucherStatistics{}
	err := db.QueryRow(query, args...).Scan(
		&stats.Total, &stats.Paid, &stats.Partial, &stats.Unpaid, &stats.Overdue,
		&stats.TotalAmount, &stats.PaidAmount, &stats.PendingAmount,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func loadVoucherDetails(db *sql.DB, voucher *models.FeeVoucher) error {
	rows, err := db.Query(`SELECT id, category, amount FROM voucher_lines WHERE voucher_id = $1 ORDER BY category`, voucher.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	voucher.Lines = []*models.VoucherLine{}
	for rows.Next() {
		l := &models.VoucherLine{VoucherID: voucher.ID}
		if err := rows.Scan(&l.ID, &l.Category, &l.Amount); err != nil {
			return err
		}
		voucher.Lines = append(voucher.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var fineIDs []string
	fineRows, err := db.Query(`SELECT fine_id FROM voucher_fines WHERE voucher_id = $1`, voucher.ID)
	if err != nil {
		return err
	}
	defer fineRows.Close()
	for fineRows.Next() {
		var id string
		if err := fineRows.Scan(&id); err != nil {
			return err
		}
		fineIDs = append(fineIDs, id)
	}
	voucher.LinkedFineIDs = fineIDs
	return fineRows.Err()
}

func queryVouchers(db *sql.DB, query string, args ...interface{}) ([]*models.FeeVoucher, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vouchers := []*models.FeeVoucher{}
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, voucher)
	}
	return vouchers, rows.Err()
}

func scanVoucher(row rowScanner) (*models.FeeVoucher, error) {
	v := &models.FeeVoucher{}
	var status string
	var paymentDate sql.NullTime
	var paymentMethod sql.NullString
	err := row.Scan(
		&v.ID, &v.StudentID, &v.Period, &v.IssueDate, &v.DueDate, &v.Discount, &v.LateFine,
		&v.TotalAmount, &v.PaidAmount, &status, &paymentDate, &paymentMethod,
		&v.CreatedBy, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Status = models.VoucherStatus(status)
	if paymentDate.Valid {
		v.PaymentDate = &paymentDate.Time
	}
	if paymentMethod.Valid {
		v.PaymentMethod = &paymentMethod.String
	}
	return v, nil
}
