package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"edupro-lms/app/models"
)

func voucherLockRows(id, studentID, period string, total, paid float64, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "student_id", "period", "issue_date", "due_date", "discount", "late_fine",
		"total_amount", "paid_amount", "status", "payment_date", "payment_method",
		"created_by", "created_at", "updated_at",
	}).AddRow(id, studentID, period, now, now.AddDate(0, 0, 14), 0.0, 0.0,
		total, paid, status, nil, nil, "Bursar One", now, now)
}

func staffRows(id, name string, base, allowances float64, bankName interface{}) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "role", "department", "base_salary", "allowances", "status",
		"bank_name", "bank_account", "bank_title", "joined_at", "updated_at",
	}).AddRow(id, name, "Teacher", "Science", base, allowances, "active",
		bankName, nil, nil, now, now)
}

func TestCollectVoucherPaymentPartial(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM vouchers WHERE id = \$1 FOR UPDATE NOWAIT`).
		WithArgs("FEE-TEST01").
		WillReturnRows(voucherLockRows("FEE-TEST01", "STU-001", "2025-08", 500, 0, "unpaid"))
	mock.ExpectExec(`UPDATE vouchers`).
		WithArgs(300.0, "partial", sqlmock.AnyArg(), sqlmock.AnyArg(), "FEE-TEST01").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT fine_id FROM voucher_fines WHERE voucher_id = \$1`).
		WithArgs("FEE-TEST01").
		WillReturnRows(sqlmock.NewRows([]string{"fine_id"}).AddRow("fine-1"))
	mock.ExpectCommit()

	voucher, err := CollectVoucherPayment(db, "FEE-TEST01", 300, "Cash", "Bursar One")
	if err != nil {
		t.Fatalf("CollectVoucherPayment() error = %v", err)
	}

	if voucher.Status != models.VoucherPartial {
		t.Errorf("Status = %v, want partial", voucher.Status)
	}
	if voucher.PaidAmount != 300 {
		t.Errorf("PaidAmount = %v, want 300", voucher.PaidAmount)
	}
	if len(voucher.LinkedFineIDs) != 1 || voucher.LinkedFineIDs[0] != "fine-1" {
		t.Errorf("LinkedFineIDs = %v, want [fine-1]", voucher.LinkedFineIDs)
	}
	// No fine settlement and no ledger credit until the voucher is fully paid.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCollectVoucherPaymentRejectsAlreadyPaidVoucher(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM vouchers WHERE id = \$1 FOR UPDATE NOWAIT`).
		WithArgs("FEE-TEST01").
		WillReturnRows(voucherLockRows("FEE-TEST01", "STU-001", "2025-08", 500, 500, "paid"))
	mock.ExpectRollback()

	// Even a sub-tolerance payment must not re-run settlement or post a
	// second ledger credit for the voucher total.
	_, err = CollectVoucherPayment(db, "FEE-TEST01", 0.005, "Cash", "Bursar One")
	if !models.IsErrorKind(err, models.ErrOverpayment) {
		t.Fatalf("collect on paid voucher: error = %v, want overpayment", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCollectVoucherPaymentTransitionToPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM vouchers WHERE id = \$1 FOR UPDATE NOWAIT`).
		WithArgs("FEE-TEST01").
		WillReturnRows(voucherLockRows("FEE-TEST01", "STU-001", "2025-08", 500, 300, "partial"))
	mock.ExpectExec(`UPDATE vouchers`).
		WithArgs(500.0, "paid", sqlmock.AnyArg(), sqlmock.AnyArg(), "FEE-TEST01").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT fine_id FROM voucher_fines WHERE voucher_id = \$1`).
		WithArgs("FEE-TEST01").
		WillReturnRows(sqlmock.NewRows([]string{"fine_id"}).AddRow("fine-1").AddRow("fine-2"))
	mock.ExpectExec(`UPDATE fines SET status = 'paid'`).
		WithArgs(pq.Array([]string{"fine-1", "fine-2"})).
		WillReturnResult(sqlmock.NewResult(0, 2))
	// Exactly one credit, for the full voucher total.
	mock.ExpectExec(`INSERT INTO ledger_entries`).
		WithArgs(CategoryFeeCollection, 500.0, sqlmock.AnyArg(), "Cash",
			"Fee Voucher FEE-TEST01 - STU-001 (2025-08)", "Bursar One").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	voucher, err := CollectVoucherPayment(db, "FEE-TEST01", 200, "Cash", "Bursar One")
	if err != nil {
		t.Fatalf("CollectVoucherPayment() error = %v", err)
	}

	if voucher.Status != models.VoucherPaid {
		t.Errorf("Status = %v, want paid", voucher.Status)
	}
	if voucher.PaidAmount != 500 {
		t.Errorf("PaidAmount = %v, want 500", voucher.PaidAmount)
	}
	if voucher.PaymentDate == nil || voucher.PaymentMethod == nil {
		t.Error("payment date and method should be set on transition to paid")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCollectVoucherPaymentOverpayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM vouchers WHERE id = \$1 FOR UPDATE NOWAIT`).
		WithArgs("FEE-TEST01").
		WillReturnRows(voucherLockRows("FEE-TEST01", "STU-001", "2025-08", 500, 300, "partial"))
	mock.ExpectRollback()

	_, err = CollectVoucherPayment(db, "FEE-TEST01", 300, "Cash", "Bursar One")
	if !models.IsErrorKind(err, models.ErrOverpayment) {
		t.Fatalf("CollectVoucherPayment() error = %v, want overpayment", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCollectVoucherPaymentRejectsNonPositiveAmount(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	_, err = CollectVoucherPayment(db, "FEE-TEST01", 0, "Cash", "Bursar One")
	if !models.IsErrorKind(err, models.ErrInvalidInput) {
		t.Errorf("amount 0: error = %v, want invalid_input", err)
	}
	_, err = CollectVoucherPayment(db, "FEE-TEST01", -10, "Cash", "Bursar One")
	if !models.IsErrorKind(err, models.ErrInvalidInput) {
		t.Errorf("negative amount: error = %v, want invalid_input", err)
	}
}

func TestCollectVoucherPaymentNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM vouchers WHERE id = \$1 FOR UPDATE NOWAIT`).
		WithArgs("FEE-NOPE").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err = CollectVoucherPayment(db, "FEE-NOPE", 100, "Cash", "Bursar One")
	if !models.IsErrorKind(err, models.ErrNotFound) {
		t.Fatalf("CollectVoucherPayment() error = %v, want not_found", err)
	}
}

func TestCollectVoucherPaymentLockContention(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM vouchers WHERE id = \$1 FOR UPDATE NOWAIT`).
		WithArgs("FEE-TEST01").
		WillReturnError(&pq.Error{Code: "55P03"})
	mock.ExpectRollback()

	_, err = CollectVoucherPayment(db, "FEE-TEST01", 100, "Cash", "Bursar One")
	if !models.IsErrorKind(err, models.ErrConflict) {
		t.Fatalf("lock contention: error = %v, want conflict", err)
	}
}

func TestDisburseSalary(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM staff WHERE id = \$1`).
		WithArgs("EMP-1").
		WillReturnRows(staffRows("EMP-1", "Ayesha Khan", 45000, 5000, "HBL"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM salary_payments`).
		WithArgs("EMP-1", "2025-08").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT present_days, absences, lates FROM staff_attendance`).
		WithArgs("EMP-1", "2025-08").
		WillReturnRows(sqlmock.NewRows([]string{"present_days", "absences", "lates"}).AddRow(19, 2, 1))
	mock.ExpectQuery(`INSERT INTO salary_payments`).
		WithArgs("EMP-1", "2025-08", 50000.0, 1200.0, 48800.0, "Bank Transfer", "TRX-77", sqlmock.AnyArg(), "Bursar One").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("pay-1", time.Now()))
	// Exactly one debit, for the net amount.
	mock.ExpectExec(`INSERT INTO ledger_entries`).
		WithArgs(CategorySalaries, 48800.0, sqlmock.AnyArg(), "Bank Transfer",
			"Salary Payment - Ayesha Khan (2025-08)", "Bursar One").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	payment, err := DisburseSalary(db, "EMP-1", "2025-08", "", "TRX-77", "Bursar One", testRates)
	if err != nil {
		t.Fatalf("DisburseSalary() error = %v", err)
	}

	if payment.GrossAmount != 50000 || payment.Deduction != 1200 || payment.NetAmount != 48800 {
		t.Errorf("payment amounts = %v/%v/%v, want 50000/1200/48800",
			payment.GrossAmount, payment.Deduction, payment.NetAmount)
	}
	if payment.Method != "Bank Transfer" {
		t.Errorf("Method = %q, want Bank Transfer when bank details exist", payment.Method)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDisburseSalaryAlreadyPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM staff WHERE id = \$1`).
		WithArgs("EMP-1").
		WillReturnRows(staffRows("EMP-1", "Ayesha Khan", 45000, 5000, nil))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM salary_payments`).
		WithArgs("EMP-1", "2025-08").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err = DisburseSalary(db, "EMP-1", "2025-08", "Cash", "", "Bursar One", testRates)
	if !models.IsErrorKind(err, models.ErrAlreadyPaid) {
		t.Fatalf("DisburseSalary() error = %v, want already_paid", err)
	}
	// No salary insert and no ledger debit reached the database.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDisburseSalaryUniqueIndexRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM staff WHERE id = \$1`).
		WithArgs("EMP-1").
		WillReturnRows(staffRows("EMP-1", "Ayesha Khan", 45000, 5000, nil))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM salary_payments`).
		WithArgs("EMP-1", "2025-08").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT present_days, absences, lates FROM staff_attendance`).
		WithArgs("EMP-1", "2025-08").
		WillReturnError(sql.ErrNoRows)
	// A concurrent disbursement won the race between the pre-check and the
	// insert; the unique index reports it.
	mock.ExpectQuery(`INSERT INTO salary_payments`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err = DisburseSalary(db, "EMP-1", "2025-08", "Cash", "", "Bursar One", testRates)
	if !models.IsErrorKind(err, models.ErrAlreadyPaid) {
		t.Fatalf("DisburseSalary() error = %v, want already_paid", err)
	}
}

func TestDisburseSalaryStaffNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM staff WHERE id = \$1`).
		WithArgs("EMP-404").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err = DisburseSalary(db, "EMP-404", "2025-08", "Cash", "", "Bursar One", testRates)
	if !models.IsErrorKind(err, models.ErrNotFound) {
		t.Fatalf("DisburseSalary() error = %v, want not_found", err)
	}
}

func TestDisburseSalaryRequiresPeriod(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	_, err = DisburseSalary(db, "EMP-1", "", "Cash", "", "Bursar One", testRates)
	if !models.IsErrorKind(err, models.ErrInvalidInput) {
		t.Errorf("empty period: error = %v, want invalid_input", err)
	}
}
