package sales

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart            = errors.New("cart cannot be empty")
	ErrInvalidQuantity      = errors.New("item quantity must be a positive integer")
	ErrInvalidPaymentMethod = errors.New("payment method must be cash or qris")
	ErrInsufficientPayment  = errors.New("amount received is less than the total amount")
	ErrTransactionNotFound  = errors.New("transaction not found")
)

type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}

type InsufficientStockError struct {
	ProductID int64
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.Name, e.Requested, e.Available)
}
