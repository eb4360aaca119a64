package models

import "time"

// SalaryPayment is the disbursement record for one staff member and period.
// It is write-once per (staff_id, period) and always mirrors exactly one
// ledger debit in category "Salaries".
type SalaryPayment struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StaffID     string    `json:"staff_id" gorm:"not null;index;uniqueIndex:idx_staff_period" validate:"required"`
	Period      string    `json:"period" gorm:"not null;uniqueIndex:idx_staff_period" validate:"required"`
	GrossAmount float64   `json:"gross_amount" gorm:"not null;type:numeric(12,2)"`
	Deduction   float64   `json:"deduction" gorm:"not null;default:0;type:numeric(12,2)" validate:"gte=0"`
	NetAmount   float64   `json:"net_amount" gorm:"not null;type:numeric(12,2)"`
	Method      string    `json:"method" gorm:"type:varchar(50)"`
	Reference   string    `json:"reference" gorm:"type:varchar(100)"` // cheque number, transfer id, etc.
	Date        time.Time `json:"date" gorm:"not null;type:date"`
	Status      string    `json:"status" gorm:"not null;default:'paid';type:varchar(10)"`
	PaidBy      string    `json:"paid_by" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// AttendanceStats is the read-only input to the payroll deduction, supplied
// by the attendance collaborator for one staff member and period.
type AttendanceStats struct {
	StaffID     string `json:"staff_id"`
	Period      string `json:"period"`
	PresentDays int    `json:"present_days"`
	Absences    int    `json:"absences"`
	Lates       int    `json:"lates"`
}

// DeductionRates holds the fixed per-incident penalty amounts applied to
// attendance-derived deductions.
type DeductionRates struct {
	AbsentPenalty float64
	LatePenalty   float64
}

// PayrollQuote is a non-persisted payout preview for one staff member and
// period. Safe to recompute repeatedly.
type PayrollQuote struct {
	StaffID   string  `json:"staff_id"`
	Period    string  `json:"period"`
	Gross     float64 `json:"gross"`
	Absences  int     `json:"absences"`
	Lates     int     `json:"lates"`
	Deduction float64 `json:"deduction"`
	Net       float64 `json:"net"`
}
