package database

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"edupro-lms/app/models"
)

var testRates = models.DeductionRates{AbsentPenalty: 500, LatePenalty: 200}

func TestComputeDeduction(t *testing.T) {
	tests := []struct {
		name     string
		absences int
		lates    int
		want     float64
	}{
		{"perfect attendance", 0, 0, 0},
		{"absences only", 3, 0, 1500},
		{"lates only", 0, 4, 800},
		{"two absences one late", 2, 1, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDeduction(tt.absences, tt.lates, testRates)
			if got != tt.want {
				t.Errorf("ComputeDeduction(%d, %d) = %v, want %v", tt.absences, tt.lates, got, tt.want)
			}
		})
	}
}

func TestGetAttendanceStatsMissingRowReadsAsZeroes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT present_days, absences, lates FROM staff_attendance`).
		WithArgs("EMP-9", "2025-08").
		WillReturnError(sql.ErrNoRows)

	stats, err := GetAttendanceStats(db, "EMP-9", "2025-08")
	if err != nil {
		t.Fatalf("GetAttendanceStats() error = %v", err)
	}
	if stats.PresentDays != 0 || stats.Absences != 0 || stats.Lates != 0 {
		t.Errorf("missing row should read as zeroes, got %+v", stats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestQuotePayroll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM staff WHERE id = \$1`).
		WithArgs("EMP-1").
		WillReturnRows(staffRows("EMP-1", "Ayesha Khan", 45000, 5000, nil))

	mock.ExpectQuery(`SELECT present_days, absences, lates FROM staff_attendance`).
		WithArgs("EMP-1", "2025-08").
		WillReturnRows(sqlmock.NewRows([]string{"present_days", "absences", "lates"}).AddRow(19, 2, 1))

	quote, err := QuotePayroll(db, "EMP-1", "2025-08", testRates)
	if err != nil {
		t.Fatalf("QuotePayroll() error = %v", err)
	}

	if quote.Gross != 50000 {
		t.Errorf("Gross = %v, want 50000", quote.Gross)
	}
	if quote.Deduction != 1200 {
		t.Errorf("Deduction = %v, want 1200", quote.Deduction)
	}
	if quote.Net != 48800 {
		t.Errorf("Net = %v, want 48800", quote.Net)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestQuotePayrollStaffNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM staff WHERE id = \$1`).
		WithArgs("EMP-404").
		WillReturnError(sql.ErrNoRows)

	_, err = QuotePayroll(db, "EMP-404", "2025-08", testRates)
	if !models.IsErrorKind(err, models.ErrNotFound) {
		t.Errorf("QuotePayroll() error = %v, want not_found", err)
	}
}
