package models

import "time"

// BankDetails holds optional disbursement banking info for a staff member.
type BankDetails struct {
	Name    string `json:"name"`
	Account string `json:"account"`
	Title   string `json:"title"`
}

// StaffMember represents an employee on the payroll.
type StaffMember struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(40)" validate:"required"`
	Name       string      `json:"name" gorm:"not null" validate:"required"`
	Role       string      `json:"role" gorm:"not null;type:varchar(50)" validate:"required"`
	Department string      `json:"department" gorm:"type:varchar(100)"`
	BaseSalary float64     `json:"base_salary" gorm:"not null;type:numeric(12,2)" validate:"gte=0"`
	Allowances float64     `json:"allowances" gorm:"not null;default:0;type:numeric(12,2)" validate:"gte=0"`
	Status     StaffStatus `json:"status" gorm:"not null;default:'active';type:varchar(10)"`
	Bank       *BankDetails `json:"bank,omitempty" gorm:"-"`
	JoinedAt   time.Time   `json:"joined_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// Gross returns base salary plus allowances for one period.
func (s *StaffMember) Gross() float64 {
	return s.BaseSalary + s.Allowances
}
