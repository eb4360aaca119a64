package database

import (
	"database/sql"
	"fmt"
	"time"

	"edupro-lms/app/models"
)

// Ledger categories written by the coordinator.
const (
	CategoryFeeCollection = "Fee Collection"
	CategorySalaries      = "Salaries"
)

// CollectVoucherPayment applies a payment to a voucher as one atomic unit.
// The voucher row is the lock scope: two clerks collecting the same voucher
// serialize on it, and contention surfaces as a retryable Conflict. Partial
// payments only move paid_amount; the transition to paid settles every linked
// fine and posts exactly one ledger credit for the voucher total.
func CollectVoucherPayment(db *sql.DB, voucherID string, amount float64, method, actor string) (*models.FeeVoucher, error) {
	if amount <= 0 {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "payment amount must be greater than zero")
	}
	if method == "" {
		method = "Cash"
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// 1. Lock the voucher. NOWAIT turns contention into an immediate
	// Conflict instead of holding the scope open.
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1 FOR UPDATE NOWAIT`
	voucher, err := scanVoucher(tx.QueryRow(query, voucherID))
	if isNoRows(err) {
		return nil, models.NewFinanceError(models.ErrNotFound, "voucher not found")
	}
	if err != nil {
		return nil, translateError(err)
	}

	// 2. Validate against the running balance. A settled voucher accepts
	// nothing more; without this guard a payment within the tolerance would
	// re-run settlement and post a second ledger credit.
	if voucher.Status == models.VoucherPaid {
		return nil, models.NewFinanceError(models.ErrOverpayment, "voucher %s is already fully paid", voucherID)
	}
	newPaid := voucher.PaidAmount + amount
	if newPaid > voucher.TotalAmount+models.PaidTolerance {
		return nil, models.NewFinanceError(models.ErrOverpayment,
			"payment of %.2f exceeds outstanding balance of %.2f", amount, voucher.Balance())
	}

	newStatus := models.StatusFor(newPaid, voucher.TotalAmount)
	if newStatus == models.VoucherPaid {
		newPaid = voucher.TotalAmount
	}

	// 3. Apply the voucher mutation.
	var paymentDate sql.NullTime
	var paymentMethod sql.NullString
	if newStatus == models.VoucherPaid {
		paymentDate = sql.NullTime{Time: time.Now(), Valid: true}
		paymentMethod = sql.NullString{String: method, Valid: true}
	} else {
		// keep any previous values (none exist before full payment)
		if voucher.PaymentDate != nil {
			paymentDate = sql.NullTime{Time: *voucher.PaymentDate, Valid: true}
		}
		if voucher.PaymentMethod != nil {
			paymentMethod = sql.NullString{String: *voucher.PaymentMethod, Valid: true}
		}
	}

	_, err = tx.Exec(`UPDATE vouchers
		SET paid_amount = $1, status = $2, payment_date = $3, payment_method = $4, updated_at = NOW()
		WHERE id = $5`,
		newPaid, string(newStatus), paymentDate, paymentMethod, voucherID)
	if err != nil {
		return nil, translateError(err)
	}

	// Linked fine ids ride along on every response; settlement itself only
	// happens on the transition to paid.
	var fineIDs []string
	fineRows, err := tx.Query(`SELECT fine_id FROM voucher_fines WHERE voucher_id = $1`, voucherID)
	if err != nil {
		return nil, err
	}
	for fineRows.Next() {
		var id string
		if err := fineRows.Scan(&id); err != nil {
			fineRows.Close()
			return nil, err
		}
		fineIDs = append(fineIDs, id)
	}
	if err := fineRows.Err(); err != nil {
		fineRows.Close()
		return nil, err
	}
	fineRows.Close()

	if newStatus == models.VoucherPaid {
		// 4. Settle the linked fines atomically with the voucher.
		if err := SettleFinesByIDs(tx, fineIDs); err != nil {
			return nil, err
		}

		// 5. Post the single mirroring ledger credit for the voucher total.
		description := fmt.Sprintf("Fee Voucher %s - %s (%s)", voucherID, voucher.StudentID, voucher.Period)
		_, err = tx.Exec(`INSERT INTO ledger_entries (kind, category, amount, date, method, description, status, created_by)
			VALUES ('credit', $1, $2, $3, $4, $5, 'active', $6)`,
			CategoryFeeCollection, voucher.TotalAmount, time.Now(), method, description, actor)
		if err != nil {
			return nil, fmt.Errorf("failed to post ledger credit: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, translateError(err)
	}

	voucher.PaidAmount = newPaid
	voucher.Status = newStatus
	if paymentDate.Valid {
		voucher.PaymentDate = &paymentDate.Time
	}
	if paymentMethod.Valid {
		voucher.PaymentMethod = &paymentMethod.String
	}
	voucher.LinkedFineIDs = fineIDs
	return voucher, nil
}

// DisburseSalary pays a staff member for a period: one SalaryPayment record
// and one mirroring ledger debit, atomically. The (staff_id, period) unique
// index is the idempotency guarantee; a duplicate disbursement fails with
// AlreadyPaid whether it loses the pre-check or the index race.
func DisburseSalary(db *sql.DB, staffID, period, method, reference, actor string, rates models.DeductionRates) (*models.SalaryPayment, error) {
	if period == "" {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "period is required")
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	staff, err := scanStaff(tx.QueryRow(`SELECT ` + staffColumns + ` FROM staff WHERE id = $1`, staffID))
	if isNoRows(err) {
		return nil, models.NewFinanceError(models.ErrNotFound, "staff member not found")
	}
	if err != nil {
		return nil, translateError(err)
	}

	var existing int
	err = tx.QueryRow(`SELECT COUNT(*) FROM salary_payments WHERE staff_id = $1 AND period = $2`, staffID, period).Scan(&existing)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, models.NewFinanceError(models.ErrAlreadyPaid, "salary for %s already paid for %s", staffID, period)
	}

	stats := &models.AttendanceStats{StaffID: staffID, Period: period}
	err = tx.QueryRow(`SELECT present_days, absences, lates FROM staff_attendance WHERE staff_id = $1 AND period = $2`,
		staffID, period).Scan(&stats.PresentDays, &stats.Absences, &stats.Lates)
	if err != nil && !isNoRows(err) {
		return nil, err
	}

	deduction := ComputeDeduction(stats.Absences, stats.Lates, rates)
	gross := staff.Gross()
	net := gross - deduction
	if net <= 0 {
		return nil, models.NewFinanceError(models.ErrInvalidInput,
			"attendance deduction of %.2f leaves no payable amount for %s", deduction, staffID)
	}

	if method == "" {
		method = "Cash"
		if staff.Bank != nil && staff.Bank.Name != "" {
			method = "Bank Transfer"
		}
	}

	payment := &models.SalaryPayment{
		StaffID:     staffID,
		Period:      period,
		GrossAmount: gross,
		Deduction:   deduction,
		NetAmount:   net,
		Method:      method,
		Reference:   reference,
		Date:        time.Now(),
		Status:      models.SalaryPaid,
		PaidBy:      actor,
	}

	err = tx.QueryRow(`INSERT INTO salary_payments (staff_id, period, gross_amount, deduction, net_amount, method, reference, date, status, paid_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'paid', $9)
		RETURNING id, created_at`,
		payment.StaffID, payment.Period, payment.GrossAmount, payment.Deduction, payment.NetAmount,
		payment.Method, payment.Reference, payment.Date, payment.PaidBy,
	).Scan(&payment.ID, &payment.CreatedAt)
	if isUniqueViolation(err) {
		return nil, models.NewFinanceError(models.ErrAlreadyPaid, "salary for %s already paid for %s", staffID, period)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert salary payment: %v", err)
	}

	description := fmt.Sprintf("Salary Payment - %s (%s)", staff.Name, period)
	_, err = tx.Exec(`INSERT INTO ledger_entries (kind, category, amount, date, method, description, status, created_by)
		VALUES ('debit', $1, $2, $3, $4, $5, 'active', $6)`,
		CategorySalaries, net, payment.Date, method, description, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to post ledger debit: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, translateError(err)
	}
	return payment, nil
}
