package models

// EntryKind defines the direction of a ledger entry.
type EntryKind string

const (
	EntryCredit EntryKind = "credit"
	EntryDebit  EntryKind = "debit"
)

// EntryStatus defines the lifecycle state of a ledger entry.
type EntryStatus string

const (
	EntryActive EntryStatus = "active"
	EntryVoid   EntryStatus = "void"
)

// FineStatus defines the lifecycle state of a fine.
type FineStatus string

const (
	FinePending FineStatus = "pending"
	FinePaid    FineStatus = "paid"
)

// VoucherStatus defines the payment state of a fee voucher.
type VoucherStatus string

const (
	VoucherUnpaid  VoucherStatus = "unpaid"
	VoucherPartial VoucherStatus = "partial"
	VoucherPaid    VoucherStatus = "paid"
)

// StaffStatus defines whether a staff member is on the active payroll.
type StaffStatus string

const (
	StaffActive   StaffStatus = "active"
	StaffInactive StaffStatus = "inactive"
)

// SalaryPaid is the only status a persisted salary payment carries;
// the record itself is the disbursement event.
const SalaryPaid = "paid"
