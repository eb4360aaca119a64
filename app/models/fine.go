package models

import "time"

// Fine represents a standalone penalty charge against a student. It is
// created by staff action and mutated only by an explicit status toggle or by
// settlement of a voucher that links it.
type Fine struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID string     `json:"student_id" gorm:"not null;index" validate:"required"`
	Amount    float64    `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required,gt=0"`
	Reason    string     `json:"reason" gorm:"not null" validate:"required"`
	Category  string     `json:"category" gorm:"type:varchar(100)"`
	Date      time.Time  `json:"date" gorm:"not null;type:date"`
	Status    FineStatus `json:"status" gorm:"not null;default:'pending';index;type:varchar(10)"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsPending reports whether the fine still awaits payment.
func (f *Fine) IsPending() bool {
	return f.Status == FinePending
}
