package database

import (
	"database/sql"
	"fmt"
	"time"

	"edupro-lms/app/models"
)

const ledgerColumns = `id, kind, category, amount, date, method, description, status, created_by, created_at, updated_at`

// PostEntry validates and appends a new ledger entry with status active.
func PostEntry(db *sql.DB, entry *models.NewLedgerEntry, createdBy string) (*models.LedgerEntry, error) {
	if entry.Amount <= 0 {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "amount must be greater than zero")
	}
	if entry.Kind != models.EntryCredit && entry.Kind != models.EntryDebit {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "kind must be credit or debit")
	}
	date, err := time.Parse("2006-01-02", entry.Date)
	if err != nil {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "date must be a valid calendar date (YYYY-MM-DD)")
	}
	if entry.Category == "" {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "category is required")
	}
	method := entry.Method
	if method == "" {
		method = "Cash"
	}

	posted := &models.LedgerEntry{
		Kind:        entry.Kind,
		Category:    entry.Category,
		Amount:      entry.Amount,
		Date:        date,
		Method:      method,
		Description: entry.Description,
		Status:      models.EntryActive,
		CreatedBy:   createdBy,
	}

	query := `INSERT INTO ledger_entries (kind, category, amount, date, method, description, status, created_by)
			  VALUES ($1, $2, $3, $4, $5, $6, 'active', $7)
			  RETURNING id, created_at`
	err = db.QueryRow(query,
		string(posted.Kind), posted.Category, posted.Amount, posted.Date,
		posted.Method, posted.Description, posted.CreatedBy,
	).Scan(&posted.ID, &posted.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to post ledger entry: %v", err)
	}
	return posted, nil
}

// GetEntryByID fetches a single ledger entry, void or not.
func GetEntryByID(db *sql.DB, id string) (*models.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE id = $1`
	entry, err := scanEntry(db.QueryRow(query, id))
	if isNoRows(err) {
		return nil, models.NewFinanceError(models.ErrNotFound, "ledger entry not found")
	}
	return entry, err
}

// VoidEntry soft-deletes an entry: it is excluded from subsequent aggregates
// but remains queryable for the audit trail.
func VoidEntry(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE ledger_entries SET status = 'void' WHERE id = $1 AND status = 'active'`, id)
	if err != nil {
		return translateError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewFinanceError(models.ErrNotFound, "ledger entry not found or already void")
	}
	return nil
}

// EditEntry overwrites the mutable fields of an active entry and stamps
// updated_at. Void entries are immutable. Editing an entry that mirrors a
// salary payment or voucher does not reconcile the originating record.
func EditEntry(db *sql.DB, id string, edit *models.LedgerEntryEdit) (*models.LedgerEntry, error) {
	if edit.Amount <= 0 {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "amount must be greater than zero")
	}
	date, err := time.Parse("2006-01-02", edit.Date)
	if err != nil {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "date must be a valid calendar date (YYYY-MM-DD)")
	}
	if edit.Category == "" {
		return nil, models.NewFinanceError(models.ErrInvalidInput, "category is required")
	}

	current, err := GetEntryByID(db, id)
	if err != nil {
		return nil, err
	}
	if current.IsVoid() {
		return nil, models.NewFinanceError(models.ErrInvalidState, "cannot edit a void ledger entry")
	}

	// Single UPDATE so concurrent edits to the same row never interleave
	// partial field writes; last committed wins.
	query := `UPDATE ledger_entries
			  SET category = $1, description = $2, amount = $3, date = $4, method = $5, updated_at = NOW()
			  WHERE id = $6 AND status = 'active'
			  RETURNING ` + ledgerColumns
	entry, err := scanEntry(db.QueryRow(query, edit.Category, edit.Description, edit.Amount, date, edit.Method, id))
	if isNoRows(err) {
		return nil, models.NewFinanceError(models.ErrInvalidState, "cannot edit a void ledger entry")
	}
	if err != nil {
		return nil, translateError(err)
	}
	return entry, nil
}

// SumByKindAndRange totals active entries of one kind within [from, to].
// Void entries are always excluded.
func SumByKindAndRange(db *sql.DB, kind models.EntryKind, from, to time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM ledger_entries
			  WHERE kind = $1 AND status = 'active' AND date >= $2 AND date <= $3`
	var total float64
	if err := db.QueryRow(query, string(kind), from, to).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// SumByKind totals all active entries of one kind.
func SumByKind(db *sql.DB, kind models.EntryKind) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE kind = $1 AND status = 'active'`
	var total float64
	if err := db.QueryRow(query, string(kind)).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// AggregateByCategory returns active-entry totals per category for one kind.
func AggregateByCategory(db *sql.DB, kind models.EntryKind) (map[string]float64, error) {
	query := `SELECT category, SUM(amount) FROM ledger_entries
			  WHERE kind = $1 AND status = 'active'
			  GROUP BY category ORDER BY category`
	rows, err := db.Query(query, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := map[string]float64{}
	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, err
		}
		totals[category] = amount
	}
	return totals, rows.Err()
}

// ListEntries returns ledger entries matching the filter, newest first.
// Void rows are omitted unless the filter asks for them.
func ListEntries(db *sql.DB, filter *models.LedgerFilter) ([]*models.LedgerEntry, error) {
	baseQuery := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE 1=1`
	var args []interface{}
	argIndex := 1

	if filter.Kind != "" {
		baseQuery += fmt.Sprintf(" AND kind = $%d", argIndex)
		args = append(args, string(filter.Kind))
		argIndex++
	}
	if filter.Category != "" {
		baseQuery += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}
	if filter.From != nil {
		baseQuery += fmt.Sprintf(" AND date >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		baseQuery += fmt.Sprintf(" AND date <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}
	if !filter.IncludeVoid {
		baseQuery += " AND status = 'active'"
	}
	baseQuery += " ORDER BY date DESC, created_at DESC"

	rows, err := db.Query(baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*models.LedgerEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*models.LedgerEntry, error) {
	e := &models.LedgerEntry{}
	var kind, status string
	var updatedAt sql.NullTime
	err := row.Scan(
		&e.ID, &kind, &e.Category, &e.Amount, &e.Date, &e.Method,
		&e.Description, &status, &e.CreatedBy, &e.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Kind = models.EntryKind(kind)
	e.Status = models.EntryStatus(status)
	if updatedAt.Valid {
		e.UpdatedAt = &updatedAt.Time
	}
	return e, nil
}
