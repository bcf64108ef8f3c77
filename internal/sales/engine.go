// Package sales converts carts into persisted transactions while keeping
// product stock honest: a sale decrements stock, a void restores it, and
// no committed operation may leave any stock negative.
package sales

import (
	"fmt"
	"sort"
	"time"

	"warung-pos/internal/models"
	"warung-pos/internal/store"
)

const (
	PaymentCash = "cash"
	PaymentQRIS = "qris"
)

// DefaultRecentLimit caps the dashboard's recent-transactions strip.
const DefaultRecentLimit = 5

type Engine struct {
	store *store.Store
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Checkout turns a cart into a transaction record and decrements stock.
// Cart lines are validated in order and the first violation aborts the
// whole sale with nothing persisted: stock is only ever decremented in
// the in-memory snapshot until both collections are written back.
func (e *Engine) Checkout(items []models.CartItem, paymentMethod string, amountReceived float64, userID int64) (*models.Transaction, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range items {
		if line.Qty <= 0 {
			return nil, ErrInvalidQuantity
		}
	}
	if paymentMethod != PaymentCash && paymentMethod != PaymentQRIS {
		return nil, ErrInvalidPaymentMethod
	}

	var trx *models.Transaction
	err := e.store.Mutate(func() error {
		products, err := e.store.Products()
		if err != nil {
			return err
		}

		var totalAmount float64
		trxItems := make([]models.TransactionItem, 0, len(items))
		for _, line := range items {
			idx := findProduct(products, line.ProductID)
			if idx < 0 {
				return &ProductNotFoundError{ProductID: line.ProductID}
			}
			p := &products[idx]
			if p.Stock < line.Qty {
				return &InsufficientStockError{
					ProductID: p.ID,
					Name:      p.Name,
					Requested: line.Qty,
					Available: p.Stock,
				}
			}
			p.Stock -= line.Qty
			subtotal := p.Price * float64(line.Qty)
			totalAmount += subtotal
			trxItems = append(trxItems, models.TransactionItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Qty:       line.Qty,
				Subtotal:  subtotal,
			})
		}

		received := totalAmount
		change := 0.0
		if paymentMethod == PaymentCash {
			if amountReceived < totalAmount {
				return ErrInsufficientPayment
			}
			received = amountReceived
			change = amountReceived - totalAmount
		}

		transactions, err := e.store.Transactions()
		if err != nil {
			return err
		}

		now := time.Now()
		trx = &models.Transaction{
			ID:             newTransactionID(now),
			Timestamp:      now,
			UserID:         userID,
			Items:          trxItems,
			TotalAmount:    totalAmount,
			PaymentMethod:  paymentMethod,
			AmountReceived: received,
			Change:         change,
		}

		if err := e.store.SaveTransactions(append(transactions, *trx)); err != nil {
			return err
		}
		return e.store.SaveProducts(products)
	})
	if err != nil {
		return nil, err
	}
	return trx, nil
}

// Void cancels a completed sale: every item's qty goes back onto its
// product's stock and the transaction record is removed for good.
// Products deleted since the sale are skipped.
func (e *Engine) Void(transactionID string) error {
	return e.store.Mutate(func() error {
		transactions, err := e.store.Transactions()
		if err != nil {
			return err
		}
		idx := -1
		for i := range transactions {
			if transactions[i].ID == transactionID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrTransactionNotFound
		}

		products, err := e.store.Products()
		if err != nil {
			return err
		}
		for _, item := range transactions[idx].Items {
			if j := findProduct(products, item.ProductID); j >= 0 {
				products[j].Stock += item.Qty
			}
		}

		transactions = append(transactions[:idx], transactions[idx+1:]...)
		if err := e.store.SaveProducts(products); err != nil {
			return err
		}
		return e.store.SaveTransactions(transactions)
	})
}

// Recent returns transactions newest-first, truncated to limit.
func (e *Engine) Recent(limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	transactions, err := e.store.Transactions()
	if err != nil {
		return nil, err
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Timestamp.After(transactions[j].Timestamp)
	})
	if len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

// List returns the full transaction history.
func (e *Engine) List() ([]models.Transaction, error) {
	return e.store.Transactions()
}

func findProduct(products []models.Product, id int64) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

// newTransactionID builds a sortable, human-legible ID: a date stamp
// plus a monotonic millisecond suffix.
func newTransactionID(now time.Time) string {
	return fmt.Sprintf("TRX-%s-%d", now.Format("20060102"), store.NextID())
}
