package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"edupro-lms/app/models"
)

func TestNormalizeStudentID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"STU-001", "stu-001"},
		{"  stu-001  ", "stu-001"},
		{" STU-001", "stu-001"},
		{"stu-001", "stu-001"},
	}

	for _, tt := range tests {
		if got := normalizeStudentID(tt.in); got != tt.want {
			t.Errorf("normalizeStudentID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPendingFineTotalNormalizesID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM fines`).
		WithArgs("stu-001").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(250.0))

	total, err := PendingFineTotal(db, "  STU-001 ")
	if err != nil {
		t.Fatalf("PendingFineTotal() error = %v", err)
	}
	if total != 250 {
		t.Errorf("total = %v, want 250", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAddFineValidation(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	tests := []struct {
		name string
		fine models.Fine
	}{
		{"zero amount", models.Fine{StudentID: "STU-001", Reason: "Late return", Amount: 0}},
		{"negative amount", models.Fine{StudentID: "STU-001", Reason: "Late return", Amount: -50}},
		{"missing student", models.Fine{Reason: "Late return", Amount: 50}},
		{"missing reason", models.Fine{StudentID: "STU-001", Amount: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AddFine(db, &tt.fine)
			if !models.IsErrorKind(err, models.ErrInvalidInput) {
				t.Errorf("AddFine() error = %v, want invalid_input", err)
			}
		})
	}
}

func TestToggleFineStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE fines`).
		WithArgs("fine-404").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = ToggleFineStatus(db, "fine-404")
	if !models.IsErrorKind(err, models.ErrNotFound) {
		t.Fatalf("ToggleFineStatus() error = %v, want not_found", err)
	}
}

func TestSettleFinesByIDsEmptyIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	if err != nil {
		t.Fatal(err)
	}

	if err := SettleFinesByIDs(tx, nil); err != nil {
		t.Fatalf("SettleFinesByIDs(nil) error = %v", err)
	}
	// No UPDATE was issued.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
