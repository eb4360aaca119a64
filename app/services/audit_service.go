package services

import (
	"database/sql"
	"fmt"
	"log"
)

// AuditReconciliation cross-checks the financial aggregates against the
// ledger and logs drift. Paid vouchers and salary payments must each mirror
// exactly one active ledger entry; ledger edits are deliberately decoupled
// from their originating records, so drift is possible and worth surfacing.
func AuditReconciliation(db *sql.DB) error {
	log.Println("Starting nightly reconciliation audit...")

	// 1. Paid vouchers whose ledger credit is missing or duplicated.
	voucherQuery := `
		SELECT v.id, v.total_amount, COUNT(le.id) AS credits
		FROM vouchers v
		LEFT JOIN ledger_entries le
			ON le.kind = 'credit'
			AND le.status = 'active'
			AND le.category = 'Fee Collection'
			AND le.description LIKE 'Fee Voucher ' || v.id || '%'
		WHERE v.status = 'paid'
		GROUP BY v.id, v.total_amount
		HAVING COUNT(le.id) != 1
	`
	voucherDrift, err := logDrift(db, voucherQuery, "voucher")
	if err != nil {
		return fmt.Errorf("voucher audit failed: %v", err)
	}

	// 2. Salary payments whose ledger debit is missing or duplicated.
	// Payments for hard-deleted staff cannot be matched by name and are
	// skipped here.
	salaryQuery := `
		SELECT sp.id, sp.net_amount, COUNT(le.id) AS debits
		FROM salary_payments sp
		JOIN staff s ON s.id = sp.staff_id
		LEFT JOIN ledger_entries le
			ON le.kind = 'debit'
			AND le.status = 'active'
			AND le.category = 'Salaries'
			AND le.description = 'Salary Payment - ' || s.name || ' (' || sp.period || ')'
		GROUP BY sp.id, sp.net_amount
		HAVING COUNT(le.id) != 1
	`
	salaryDrift, err := logDrift(db, salaryQuery, "salary payment")
	if err != nil {
		return fmt.Errorf("salary audit failed: %v", err)
	}

	log.Printf("Reconciliation audit completed: %d voucher, %d salary mismatches", voucherDrift, salaryDrift)
	return nil
}

func logDrift(db *sql.DB, query, label string) (int, error) {
	rows, err := db.Query(query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id string
		var amount float64
		var entries int
		if err := rows.Scan(&id, &amount, &entries); err != nil {
			log.Printf("Error scanning audit row: %v", err)
			continue
		}
		log.Printf("AUDIT DRIFT: %s %s (%.2f) has %d active ledger entries, expected 1", label, id, amount, entries)
		count++
	}
	return count, rows.Err()
}
