package services

import (
	"errors"
	"fmt"
)

// Error taxonomy of the cart/order core. Everything here is recoverable by
// the caller: retry the operation or surface it to the shopper.
var (
	ErrNotFound  = errors.New("not found")
	ErrEmptyCart = errors.New("cart is empty")
	ErrConflict  = errors.New("conflicting concurrent update, retry")

	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// OutOfStockError names the variant whose stock could not cover the
// requested quantity.
type OutOfStockError struct {
	VariantID string
	Available int
	Requested int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("variant %s out of stock: available %d, requested %d", e.VariantID, e.Available, e.Requested)
}
