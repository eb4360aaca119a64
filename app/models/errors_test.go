package models

import (
	"errors"
	"testing"
)

func TestErrorKindOf(t *testing.T) {
	err := NewFinanceError(ErrOverpayment, "payment of %.2f exceeds balance", 300.0)

	kind, ok := ErrorKindOf(err)
	if !ok || kind != ErrOverpayment {
		t.Errorf("ErrorKindOf() = %v, %v; want overpayment, true", kind, ok)
	}
	if err.Error() != "payment of 300.00 exceeds balance" {
		t.Errorf("Error() = %q", err.Error())
	}

	if _, ok := ErrorKindOf(errors.New("plain")); ok {
		t.Error("ErrorKindOf(plain error) reported a kind")
	}
}

func TestIsErrorKind(t *testing.T) {
	err := NewFinanceError(ErrAlreadyPaid, "already paid")
	if !IsErrorKind(err, ErrAlreadyPaid) {
		t.Error("IsErrorKind() = false for matching kind")
	}
	if IsErrorKind(err, ErrConflict) {
		t.Error("IsErrorKind() = true for wrong kind")
	}
}
