package models

import (
	"time"
)

// User - staff member who can log into the POS
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"` // unique, case-insensitive
	Name      string    `json:"name"`
	Password  string    `json:"password,omitempty"` // bcrypt hash; blanked before leaving the API
	Role      string    `json:"role"`               // 'admin', 'cashier'
	Status    string    `json:"status"`             // 'active', 'inactive'
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Sanitized returns a copy safe to send to clients.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// Product - the inventory
type Product struct {
	ID            int64   `json:"id"`
	SKU           string  `json:"sku"`
	Name          string  `json:"name"` // unique, case-insensitive
	PurchasePrice float64 `json:"purchasePrice"`
	SellingPrice  float64 `json:"sellingPrice"`
	Price         float64 `json:"price"` // legacy alias of sellingPrice, kept in sync for the POS screen
	Stock         int     `json:"stock"` // never negative after a committed operation
	CategoryID    int64   `json:"categoryId,omitempty"`
	ImageBase64   string  `json:"imageBase64,omitempty"`
	QRCode        string  `json:"qrCode,omitempty"`
	IsTopProduct  bool    `json:"isTopProduct"`
	IsBestSeller  bool    `json:"isBestSeller"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"` // unique, case-insensitive
	Description string `json:"description,omitempty"`
}

// CartItem - one line of a checkout request
type CartItem struct {
	ProductID int64 `json:"productId"`
	Qty       int   `json:"qty"`
}

// TransactionItem - a cart line frozen at sale time
type TransactionItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	Subtotal  float64 `json:"subtotal"`
}

// Transaction - a completed sale. Immutable once written; void removes it.
type Transaction struct {
	ID             string            `json:"id"` // TRX-YYYYMMDD-<millis>
	Timestamp      time.Time         `json:"timestamp"`
	UserID         int64             `json:"userId"`
	Items          []TransactionItem `json:"items"`
	TotalAmount    float64           `json:"totalAmount"`
	PaymentMethod  string            `json:"paymentMethod"` // 'cash', 'qris'
	AmountReceived float64           `json:"amountReceived"`
	Change         float64           `json:"change"`
}

// DraftItem carries enough for the POS screen to rebuild a cart line.
type DraftItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// Draft - a parked, not-yet-completed cart
type Draft struct {
	ID        string      `json:"id"`
	Items     []DraftItem `json:"items"`
	Timestamp time.Time   `json:"timestamp"`
}

// Banner - singleton storefront banner config
type Banner struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	ImageBase64 string `json:"imageBase64"`
}

// QRIS - singleton static payment QR image
type QRIS struct {
	ID          int    `json:"id"`
	ImageBase64 string `json:"imageBase64"`
}
