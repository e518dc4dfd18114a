package service

import (
	"errors"
	"fmt"
)

var (
	// Validation failures, rejected before any side effect.
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidAmount = errors.New("total amount must be positive")

	// Returned when a QRIS confirmation references an unknown or
	// already-resolved order id.
	ErrNoPendingCheckout = errors.New("no pending checkout for order id")
)

// PartialWriteError marks a checkout that failed after some sibling
// writes already landed. The applied effects are not reversed; the
// checkout intent row stays incomplete for reconciliation.
type PartialWriteError struct {
	Step    string
	OrderID string
	Err     error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("checkout %s failed at %s: %v (already-applied writes not rolled back)", e.OrderID, e.Step, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
