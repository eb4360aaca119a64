package models

import (
	"math"
	"time"
)

// PaidTolerance absorbs floating rounding when comparing paid against total.
const PaidTolerance = 0.01

// VoucherLine is one fee line item on a voucher.
type VoucherLine struct {
	ID        string  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	VoucherID string  `json:"voucher_id" gorm:"not null;index" validate:"required"`
	Category  string  `json:"category" gorm:"not null" validate:"required"`
	Amount    float64 `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required,gt=0"`
}

// VoucherFine links a fine to the voucher that settles it. The amount is
// snapshotted at voucher creation; later fine edits never change the voucher
// total.
type VoucherFine struct {
	VoucherID string  `json:"voucher_id" gorm:"not null;index"`
	FineID    string  `json:"fine_id" gorm:"not null;index"`
	Amount    float64 `json:"amount" gorm:"not null;type:numeric(12,2)"`
}

// FeeVoucher is a billing instrument for a student covering one period's fee
// lines plus any linked fines. PaidAmount is mutated only through payment
// collection, never by direct edit.
type FeeVoucher struct {
	ID            string        `json:"id" gorm:"primaryKey;type:varchar(40)"`
	StudentID     string        `json:"student_id" gorm:"not null;index" validate:"required"`
	Period        string        `json:"period" gorm:"not null" validate:"required"`
	IssueDate     time.Time     `json:"issue_date" gorm:"not null;type:date"`
	DueDate       time.Time     `json:"due_date" gorm:"not null;type:date"`
	Discount      float64       `json:"discount" gorm:"not null;default:0;type:numeric(12,2)" validate:"gte=0"`
	LateFine      float64       `json:"late_fine" gorm:"not null;default:0;type:numeric(12,2)" validate:"gte=0"`
	TotalAmount   float64       `json:"total_amount" gorm:"not null;type:numeric(12,2)"`
	PaidAmount    float64       `json:"paid_amount" gorm:"not null;default:0;type:numeric(12,2)"`
	Status        VoucherStatus `json:"status" gorm:"not null;default:'unpaid';index;type:varchar(10)"`
	PaymentDate   *time.Time    `json:"payment_date,omitempty"`
	PaymentMethod *string       `json:"payment_method,omitempty" gorm:"type:varchar(50)"`
	CreatedBy     string        `json:"created_by" gorm:"not null"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	Lines         []*VoucherLine `json:"fee_lines,omitempty" gorm:"foreignKey:VoucherID;references:ID"`
	LinkedFineIDs []string       `json:"linked_fine_ids" gorm:"-"`
}

// Balance returns the amount still owed on the voucher.
func (v *FeeVoucher) Balance() float64 {
	return v.TotalAmount - v.PaidAmount
}

// IsOverdue reports whether the voucher is unpaid past its due date. A
// partial voucher has received payment and is not counted as overdue.
func (v *FeeVoucher) IsOverdue(now time.Time) bool {
	return v.Status == VoucherUnpaid && v.DueDate.Before(now)
}

// StatusFor derives the voucher status from a paid/total pair:
// paid iff paidAmount == totalAmount (within tolerance), partial iff
// 0 < paidAmount < totalAmount, else unpaid.
func StatusFor(paid, total float64) VoucherStatus {
	switch {
	case paid >= total-PaidTolerance:
		return VoucherPaid
	case paid > 0:
		return VoucherPartial
	default:
		return VoucherUnpaid
	}
}

// VoucherTotal computes the fixed total at creation time:
// sum of fee lines + sum of linked fine snapshots + late fine - discount,
// rounded to cents.
func VoucherTotal(lines []*VoucherLine, fineAmounts []float64, lateFine, discount float64) float64 {
	total := lateFine - discount
	for _, l := range lines {
		total += l.Amount
	}
	for _, a := range fineAmounts {
		total += a
	}
	return math.Round(total*100) / 100
}

// NewVoucher carries the caller-supplied fields for creating a voucher.
type NewVoucher struct {
	StudentID     string         `json:"student_id"`
	Period        string         `json:"period"`
	IssueDate     string         `json:"issue_date"`
	DueDate       string         `json:"due_date"`
	FeeLines      []*VoucherLine `json:"fee_lines"`
	LinkedFineIDs []string       `json:"linked_fine_ids"`
	Discount      float64        `json:"discount"`
	LateFine      float64        `json:"late_fine"`
}

// VoucherStatistics is the read-only rollup consumed by dashboards.
type VoucherStatistics struct {
	Total         int     `json:"total"`
	Paid          int     `json:"paid"`
	Partial       int     `json:"partial"`
	Unpaid        int     `json:"unpaid"`
	Overdue       int     `json:"overdue"`
	TotalAmount   float64 `json:"total_amount"`
	PaidAmount    float64 `json:"paid_amount"`
	PendingAmount float64 `json:"pending_amount"`
}
