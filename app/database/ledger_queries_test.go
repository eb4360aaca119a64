package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"edupro-lms/app/models"
)

func TestPostEntryValidation(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	tests := []struct {
		name  string
		entry models.NewLedgerEntry
	}{
		{"zero amount", models.NewLedgerEntry{Kind: models.EntryCredit, Category: "Fees", Amount: 0, Date: "2025-08-01"}},
		{"negative amount", models.NewLedgerEntry{Kind: models.EntryCredit, Category: "Fees", Amount: -5, Date: "2025-08-01"}},
		{"bad kind", models.NewLedgerEntry{Kind: "transfer", Category: "Fees", Amount: 100, Date: "2025-08-01"}},
		{"bad date", models.NewLedgerEntry{Kind: models.EntryDebit, Category: "Fees", Amount: 100, Date: "2025-02-30"}},
		{"missing category", models.NewLedgerEntry{Kind: models.EntryDebit, Amount: 100, Date: "2025-08-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PostEntry(db, &tt.entry, "Bursar One")
			if !models.IsErrorKind(err, models.ErrInvalidInput) {
				t.Errorf("PostEntry() error = %v, want invalid_input", err)
			}
		})
	}
}

func TestPostEntryDefaultsMethodToCash(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO ledger_entries`).
		WithArgs("credit", "Fee Collection", 500.0, sqlmock.AnyArg(), "Cash", "August fees", "Bursar One").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("entry-1", time.Now()))

	entry, err := PostEntry(db, &models.NewLedgerEntry{
		Kind:        models.EntryCredit,
		Category:    "Fee Collection",
		Amount:      500,
		Date:        "2025-08-01",
		Description: "August fees",
	}, "Bursar One")
	if err != nil {
		t.Fatalf("PostEntry() error = %v", err)
	}
	if entry.Method != "Cash" {
		t.Errorf("Method = %q, want Cash", entry.Method)
	}
	if entry.Status != models.EntryActive {
		t.Errorf("Status = %v, want active", entry.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestVoidEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE ledger_entries SET status = 'void' WHERE id = \$1 AND status = 'active'`).
		WithArgs("entry-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := VoidEntry(db, "entry-1"); err != nil {
		t.Fatalf("VoidEntry() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestVoidEntryAlreadyVoid(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// The guard in the WHERE clause makes a second void a no-op.
	mock.ExpectExec(`UPDATE ledger_entries SET status = 'void'`).
		WithArgs("entry-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = VoidEntry(db, "entry-1")
	if !models.IsErrorKind(err, models.ErrNotFound) {
		t.Fatalf("VoidEntry() error = %v, want not_found", err)
	}
}

var ledgerTestColumns = []string{
	"id", "kind", "category", "amount", "date", "method",
	"description", "status", "created_by", "created_at", "updated_at",
}

func TestGetEntryByIDRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM ledger_entries WHERE id = \$1`).
		WithArgs("entry-1").
		WillReturnRows(sqlmock.NewRows(ledgerTestColumns).
			AddRow("entry-1", "debit", "Utilities", 900.0, date, "Cash", "June bill", "active", "Bursar One", created, nil))

	entry, err := GetEntryByID(db, "entry-1")
	if err != nil {
		t.Fatalf("GetEntryByID() error = %v", err)
	}

	if entry.ID != "entry-1" || entry.Kind != models.EntryDebit || entry.Category != "Utilities" ||
		entry.Amount != 900 || !entry.Date.Equal(date) || entry.Method != "Cash" ||
		entry.Description != "June bill" || entry.Status != models.EntryActive ||
		entry.CreatedBy != "Bursar One" || !entry.CreatedAt.Equal(created) {
		t.Errorf("retrieved entry does not match stored fields: %+v", entry)
	}
	if entry.UpdatedAt != nil {
		t.Errorf("UpdatedAt = %v, want nil before any edit", entry.UpdatedAt)
	}
}

func TestEditEntryStampsUpdatedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	mock.ExpectQuery(`SELECT (.+) FROM ledger_entries WHERE id = \$1`).
		WithArgs("entry-1").
		WillReturnRows(sqlmock.NewRows(ledgerTestColumns).
			AddRow("entry-1", "debit", "Utilities", 900.0, date, "Cash", "June bill", "active", "Bursar One", created, nil))
	mock.ExpectQuery(`UPDATE ledger_entries`).
		WithArgs("Utilities", "June bill, corrected", 950.0, date, "Bank Transfer", "entry-1").
		WillReturnRows(sqlmock.NewRows(ledgerTestColumns).
			AddRow("entry-1", "debit", "Utilities", 950.0, date, "Bank Transfer", "June bill, corrected", "active", "Bursar One", created, updated))

	entry, err := EditEntry(db, "entry-1", &models.LedgerEntryEdit{
		Category:    "Utilities",
		Description: "June bill, corrected",
		Amount:      950,
		Date:        "2025-08-01",
		Method:      "Bank Transfer",
	})
	if err != nil {
		t.Fatalf("EditEntry() error = %v", err)
	}

	if entry.Amount != 950 || entry.Description != "June bill, corrected" || entry.Method != "Bank Transfer" {
		t.Errorf("edited fields not applied: %+v", entry)
	}
	// The id, creator and created_at never change; updated_at is stamped.
	if entry.ID != "entry-1" || entry.CreatedBy != "Bursar One" || !entry.CreatedAt.Equal(created) {
		t.Errorf("immutable fields changed: %+v", entry)
	}
	if entry.UpdatedAt == nil || !entry.UpdatedAt.Equal(updated) {
		t.Errorf("UpdatedAt = %v, want %v", entry.UpdatedAt, updated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestEditEntryRejectsVoid(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM ledger_entries WHERE id = \$1`).
		WithArgs("entry-1").
		WillReturnRows(sqlmock.NewRows(ledgerTestColumns).
			AddRow("entry-1", "debit", "Utilities", 900.0, now, "Cash", "", "void", "Bursar One", now, nil))

	_, err = EditEntry(db, "entry-1", &models.LedgerEntryEdit{
		Category: "Utilities", Amount: 950, Date: "2025-08-01",
	})
	if !models.IsErrorKind(err, models.ErrInvalidState) {
		t.Fatalf("EditEntry() error = %v, want invalid_state", err)
	}
}

func TestSumByKindExcludesVoid(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM ledger_entries WHERE kind = \$1 AND status = 'active'`).
		WithArgs("credit").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1500.0))

	total, err := SumByKind(db, models.EntryCredit)
	if err != nil {
		t.Fatalf("SumByKind() error = %v", err)
	}
	if total != 1500 {
		t.Errorf("total = %v, want 1500", total)
	}
}
