package models

import "time"

// LedgerEntry represents a single money-in/money-out event. The ledger is the
// canonical log of revenue and expenses; void entries stay queryable for the
// audit trail but are excluded from every aggregate.
type LedgerEntry struct {
	ID          string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Kind        EntryKind   `json:"kind" gorm:"not null;index;type:varchar(10)" validate:"required"`
	Category    string      `json:"category" gorm:"not null;index" validate:"required"`
	Amount      float64     `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required,gt=0"`
	Date        time.Time   `json:"date" gorm:"not null;index;type:date" validate:"required"`
	Method      string      `json:"method" gorm:"type:varchar(50)"`
	Description string      `json:"description" gorm:"type:text"`
	Status      EntryStatus `json:"status" gorm:"not null;default:'active';index;type:varchar(10)"`
	CreatedBy   string      `json:"created_by" gorm:"not null"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}

// IsVoid reports whether the entry has been soft-deleted from aggregates.
func (e *LedgerEntry) IsVoid() bool {
	return e.Status == EntryVoid
}

// NewLedgerEntry carries the caller-supplied fields for posting an entry.
type NewLedgerEntry struct {
	Kind        EntryKind `json:"kind"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Date        string    `json:"date"` // 2006-01-02
	Method      string    `json:"method"`
	Description string    `json:"description"`
}

// LedgerEntryEdit carries replacement fields for an active entry.
// The id, void state and created_by are never editable.
type LedgerEntryEdit struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Method      string  `json:"method"`
}

// LedgerFilter narrows ledger listings for reports.
type LedgerFilter struct {
	Kind     EntryKind
	From     *time.Time
	To       *time.Time
	Category string
	// IncludeVoid keeps voided rows in the listing (they are still marked);
	// aggregates never include them regardless.
	IncludeVoid bool
}
