package ricemill

import (
	"errors"
	"fmt"
)

var (
	ErrRiceNotFound  = errors.New("rice item not found")
	ErrQuoteNotFound = errors.New("quote not found")
	ErrOrderNotFound = errors.New("order not found")

	ErrUnauthorized    = errors.New("unauthorized access")
	ErrQuoteNotPending = errors.New("quote is not pending")

	// Soft fleet failures: the order stays payable, delivery just slips.
	ErrNoVehicleAvailable = errors.New("no suitable vehicle available, expect delivery in a week")
	ErrNoDriverAvailable  = errors.New("no suitable driver available, expect delivery in a week")
)

// InsufficientStockError reports a stock shortfall in kilograms so the
// client can see exactly which item fell short and by how much.
type InsufficientStockError struct {
	RiceID      int64
	RequestedKg float64
	AvailableKg float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for rice %d: requested %.0f kg exceeds available stock (%.0f kg)",
		e.RiceID, e.RequestedKg, e.AvailableKg)
}

// Reason is the client-facing detail string used in error responses.
func (e *InsufficientStockError) Reason() string {
	return fmt.Sprintf("Requested quantity (%.0f kg) exceeds available stock (%.0f kg)", e.RequestedKg, e.AvailableKg)
}

// InvalidStateError rejects an order operation attempted outside the one
// status it is allowed in, e.g. paying an already Paid order.
type InvalidStateError struct {
	Status OrderStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("order is already %s", e.Status)
}
