package database

import (
	"database/sql"
	"fmt"
	"strings"

	"edupro-lms/app/models"
)

const staffColumns = `id, name, role, department, base_salary, allowances, status,
	bank_name, bank_account, bank_title, joined_at, updated_at`

// CreateStaff registers a new staff member. Employee ids are assigned by HR
// and must be unique.
func CreateStaff(db *sql.DB, s *models.StaffMember) error {
	if strings.TrimSpace(s.ID) == "" || s.Name == "" || s.Role == "" {
		return models.NewFinanceError(models.ErrInvalidInput, "id, name and role are required")
	}
	if s.BaseSalary < 0 || s.Allowances < 0 {
		return models.NewFinanceError(models.ErrInvalidInput, "base salary and allowances cannot be negative")
	}
	if s.Status == "" {
		s.Status = models.StaffActive
	}

	var bankName, bankAccount, bankTitle sql.NullString
	if s.Bank != nil {
		bankName = sql.NullString{String: s.Bank.Name, Valid: s.Bank.Name != ""}
		bankAccount = sql.NullString{String: s.Bank.Account, Valid: s.Bank.Account != ""}
		bankTitle = sql.NullString{String: s.Bank.Title, Valid: s.Bank.Title != ""}
	}

	query := `INSERT INTO staff (id, name, role, department, base_salary, allowances, status, bank_name, bank_account, bank_title)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING joined_at, updated_at`
	err := db.QueryRow(query,
		strings.TrimSpace(s.ID), s.Name, s.Role, s.Department, s.BaseSalary, s.Allowances,
		string(s.Status), bankName, bankAccount, bankTitle,
	).Scan(&s.JoinedAt, &s.UpdatedAt)
	if isUniqueViolation(err) {
		return models.NewFinanceError(models.ErrConflict, "employee id %s already exists", s.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert staff member: %v", err)
	}
	return nil
}

// GetStaffByID fetches one staff member.
func GetStaffByID(db *sql.DB, id string) (*models.StaffMember, error) {
	s, err := scanStaff(db.QueryRow(`SELECT `+staffColumns+` FROM staff WHERE id = $1`, id))
	if isNoRows(err) {
		return nil, models.NewFinanceError(models.ErrNotFound, "staff member not found")
	}
	return s, err
}

// GetAllStaff lists staff members, active first.
func GetAllStaff(db *sql.DB) ([]*models.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff ORDER BY status ASC, name ASC`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := []*models.StaffMember{}
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

// UpdateStaff overwrites the HR-editable fields of a staff member.
func UpdateStaff(db *sql.DB, s *models.StaffMember) error {
	if s.BaseSalary < 0 || s.Allowances < 0 {
		return models.NewFinanceError(models.ErrInvalidInput, "base salary and allowances cannot be negative")
	}

	var bankName, bankAccount, bankTitle sql.NullString
	if s.Bank != nil {
		bankName = sql.NullString{String: s.Bank.Name, Valid: s.Bank.Name != ""}
		bankAccount = sql.NullString{String: s.Bank.Account, Valid: s.Bank.Account != ""}
		bankTitle = sql.NullString{String: s.Bank.Title, Valid: s.Bank.Title != ""}
	}

	query := `UPDATE staff
			  SET name = $1, role = $2, department = $3, base_salary = $4, allowances = $5,
			      status = $6, bank_name = $7, bank_account = $8, bank_title = $9, updated_at = NOW()
			  WHERE id = $10`
	result, err := db.Exec(query,
		s.Name, s.Role, s.Department, s.BaseSalary, s.Allowances,
		string(s.Status), bankName, bankAccount, bankTitle, s.ID,
	)
	if err != nil {
		return translateError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewFinanceError(models.ErrNotFound, "staff member not found")
	}
	return nil
}

// DeleteStaff removes a staff member permanently. Salary history keeps its
// staff_id reference; payments are the disbursement record, not the employee.
func DeleteStaff(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewFinanceError(models.ErrNotFound, "staff member not found")
	}
	return nil
}

func scanStaff(row rowScanner) (*models.StaffMember, error) {
	s := &models.StaffMember{}
	var status string
	var bankName, bankAccount, bankTitle sql.NullString
	err := row.Scan(
		&s.ID, &s.Name, &s.Role, &s.Department, &s.BaseSalary, &s.Allowances, &status,
		&bankName, &bankAccount, &bankTitle, &s.JoinedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = models.StaffStatus(status)
	if bankName.Valid || bankAccount.Valid || bankTitle.Valid {
		s.Bank = &models.BankDetails{Name: bankName.String, Account: bankAccount.String, Title: bankTitle.String}
	}
	return s, nil
}
