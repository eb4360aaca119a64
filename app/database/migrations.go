package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the finance tables and indexes if they do not exist.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			role VARCHAR(30) NOT NULL DEFAULT 'clerk',
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			kind VARCHAR(10) NOT NULL,
			category VARCHAR(100) NOT NULL,
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			date DATE NOT NULL,
			method VARCHAR(50) NOT NULL DEFAULT 'Cash',
			description TEXT NOT NULL DEFAULT '',
			status VARCHAR(10) NOT NULL DEFAULT 'active',
			created_by VARCHAR(255) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS fines (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id VARCHAR(100) NOT NULL,
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			reason VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT '',
			date DATE NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS vouchers (
			id VARCHAR(40) PRIMARY KEY,
			student_id VARCHAR(100) NOT NULL,
			period VARCHAR(50) NOT NULL,
			issue_date DATE NOT NULL,
			due_date DATE NOT NULL,
			discount NUMERIC(12,2) NOT NULL DEFAULT 0,
			late_fine NUMERIC(12,2) NOT NULL DEFAULT 0,
			total_amount NUMERIC(12,2) NOT NULL,
			paid_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			status VARCHAR(10) NOT NULL DEFAULT 'unpaid',
			payment_date TIMESTAMP WITH TIME ZONE,
			payment_method VARCHAR(50),
			created_by VARCHAR(255) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS voucher_lines (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			voucher_id VARCHAR(40) NOT NULL REFERENCES vouchers(id) ON DELETE CASCADE,
			category VARCHAR(100) NOT NULL,
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0)
		)`,
		`CREATE TABLE IF NOT EXISTS voucher_fines (
			voucher_id VARCHAR(40) NOT NULL REFERENCES vouchers(id) ON DELETE CASCADE,
			fine_id UUID NOT NULL REFERENCES fines(id),
			amount NUMERIC(12,2) NOT NULL,
			PRIMARY KEY (voucher_id, fine_id)
		)`,
		`CREATE TABLE IF NOT EXISTS staff (
			id VARCHAR(40) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL,
			department VARCHAR(100) NOT NULL DEFAULT '',
			base_salary NUMERIC(12,2) NOT NULL CHECK (base_salary >= 0),
			allowances NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (allowances >= 0),
			status VARCHAR(10) NOT NULL DEFAULT 'active',
			bank_name VARCHAR(100),
			bank_account VARCHAR(50),
			bank_title VARCHAR(100),
			joined_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS salary_payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			staff_id VARCHAR(40) NOT NULL,
			period VARCHAR(50) NOT NULL,
			gross_amount NUMERIC(12,2) NOT NULL,
			deduction NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (deduction >= 0),
			net_amount NUMERIC(12,2) NOT NULL,
			method VARCHAR(50) NOT NULL DEFAULT 'Cash',
			reference VARCHAR(100) NOT NULL DEFAULT '',
			date DATE NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'paid',
			paid_by VARCHAR(255) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS staff_attendance (
			staff_id VARCHAR(40) NOT NULL REFERENCES staff(id) ON DELETE CASCADE,
			period VARCHAR(50) NOT NULL,
			present_days INT NOT NULL DEFAULT 0,
			absences INT NOT NULL DEFAULT 0,
			lates INT NOT NULL DEFAULT 0,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			PRIMARY KEY (staff_id, period)
		)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Error creating finance tables: %v", err)
			return err
		}
	}

	// The (staff_id, period) uniqueness is the core correctness guarantee of
	// payroll: without it a retried disbursement could post twice.
	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_salary_payments_staff_period ON salary_payments(staff_id, period)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_entries_kind_date ON ledger_entries(kind, date)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_entries_status ON ledger_entries(status)`,
		`CREATE INDEX IF NOT EXISTS idx_fines_student_id ON fines(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fines_status ON fines(status)`,
		`CREATE INDEX IF NOT EXISTS idx_vouchers_student_id ON vouchers(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_vouchers_status ON vouchers(status)`,
		`CREATE INDEX IF NOT EXISTS idx_vouchers_due_date ON vouchers(due_date)`,
	}

	for _, m := range indexes {
		if _, err := db.Exec(m); err != nil {
			log.Printf("Error creating index: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
