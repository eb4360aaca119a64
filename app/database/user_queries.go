package database

import (
	"database/sql"
	"fmt"

	"edupro-lms/app/models"
)

// GetUserByEmail fetches an active operator account for login.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	query := `SELECT id, email, password, first_name, last_name, role, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND deleted_at IS NULL`
	u := &models.User{}
	err := db.QueryRow(query, email).Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser registers an operator account with an already-hashed password.
func CreateUser(db *sql.DB, u *models.User) error {
	query := `INSERT INTO users (email, password, first_name, last_name, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at, updated_at`
	err := db.QueryRow(query, u.Email, u.Password, u.FirstName, u.LastName, u.Role).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return models.NewFinanceError(models.ErrConflict, "email %s already registered", u.Email)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}
	return nil
}

// UpdateUserPassword replaces a user's password hash.
func UpdateUserPassword(db *sql.DB, userID, hashedPassword string) error {
	result, err := db.Exec(`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		hashedPassword, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewFinanceError(models.ErrNotFound, "user not found")
	}
	return nil
}
