package models

import "fmt"

// ErrorKind classifies a failed financial operation. Callers translate kinds
// to user messages; Conflict is the only kind that should be retried
// automatically.
type ErrorKind string

const (
	ErrInvalidInput ErrorKind = "invalid_input"
	ErrNotFound     ErrorKind = "not_found"
	ErrInvalidState ErrorKind = "invalid_state"
	ErrOverpayment  ErrorKind = "overpayment"
	ErrAlreadyPaid  ErrorKind = "already_paid"
	ErrConflict     ErrorKind = "conflict"
)

// FinanceError is the typed error returned by all core financial operations.
// A failed operation leaves every entity exactly as before the attempt.
type FinanceError struct {
	Kind    ErrorKind
	Message string
}

func (e *FinanceError) Error() string {
	return e.Message
}

// NewFinanceError builds a typed error with a formatted message.
func NewFinanceError(kind ErrorKind, format string, args ...interface{}) *FinanceError {
	return &FinanceError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrorKindOf returns the kind of err if it is a FinanceError.
func ErrorKindOf(err error) (ErrorKind, bool) {
	if fe, ok := err.(*FinanceError); ok {
		return fe.Kind, true
	}
	return "", false
}

// IsErrorKind reports whether err is a FinanceError of the given kind.
func IsErrorKind(err error, kind ErrorKind) bool {
	k, ok := ErrorKindOf(err)
	return ok && k == kind
}
