package models

import (
	"testing"
	"time"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name  string
		paid  float64
		total float64
		want  VoucherStatus
	}{
		{"nothing paid", 0, 500, VoucherUnpaid},
		{"partial payment", 300, 500, VoucherPartial},
		{"another partial", 499.98, 500, VoucherPartial},
		{"exact payment", 500, 500, VoucherPaid},
		{"within tolerance", 499.99, 500, VoucherPaid},
		{"tiny voucher fully paid", 0.01, 0.01, VoucherPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.paid, tt.total); got != tt.want {
				t.Errorf("StatusFor(%v, %v) = %v, want %v", tt.paid, tt.total, got, tt.want)
			}
		})
	}
}

func TestStatusForProgression(t *testing.T) {
	// 300 then 200 against a 500 voucher: partial, then paid.
	total := 500.0
	paid := 300.0
	if got := StatusFor(paid, total); got != VoucherPartial {
		t.Fatalf("after first payment: got %v, want partial", got)
	}
	paid += 200
	if got := StatusFor(paid, total); got != VoucherPaid {
		t.Fatalf("after second payment: got %v, want paid", got)
	}
}

func TestVoucherTotal(t *testing.T) {
	lines := []*VoucherLine{
		{Category: "Tuition", Amount: 400},
		{Category: "Library", Amount: 50},
	}

	tests := []struct {
		name        string
		lines       []*VoucherLine
		fineAmounts []float64
		lateFine    float64
		discount    float64
		want        float64
	}{
		{"lines only", lines, nil, 0, 0, 450},
		{"with linked fine", lines, []float64{50}, 0, 0, 500},
		{"with late fine", lines, nil, 100, 0, 550},
		{"with discount", lines, nil, 0, 50, 400},
		{"everything", lines, []float64{50, 25}, 100, 75, 550},
		{"rounds to cents", []*VoucherLine{{Category: "Tuition", Amount: 0.1}, {Category: "Lab", Amount: 0.2}}, nil, 0, 0, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VoucherTotal(tt.lines, tt.fineAmounts, tt.lateFine, tt.discount)
			if got != tt.want {
				t.Errorf("VoucherTotal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVoucherBalance(t *testing.T) {
	v := &FeeVoucher{TotalAmount: 500, PaidAmount: 300}
	if got := v.Balance(); got != 200 {
		t.Errorf("Balance() = %v, want 200", got)
	}
}

func TestVoucherIsOverdue(t *testing.T) {
	now := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -5)
	future := now.AddDate(0, 0, 5)

	tests := []struct {
		name    string
		status  VoucherStatus
		dueDate time.Time
		want    bool
	}{
		{"unpaid past due", VoucherUnpaid, past, true},
		{"partial past due", VoucherPartial, past, false},
		{"paid past due", VoucherPaid, past, false},
		{"unpaid not yet due", VoucherUnpaid, future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &FeeVoucher{Status: tt.status, DueDate: tt.dueDate}
			if got := v.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}
