package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"warung-pos/internal/models"
	"warung-pos/internal/sales"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	engine *sales.Engine
}

func NewTransactionHandler(e *sales.Engine) *TransactionHandler {
	return &TransactionHandler{engine: e}
}

// CheckoutRequest is what the POS screen sends for a sale.
type CheckoutRequest struct {
	Items          []models.CartItem `json:"items"`
	PaymentMethod  string            `json:"paymentMethod"`
	AmountReceived float64           `json:"amountReceived"`
}

// Checkout runs the sale and returns the persisted transaction.
func (h *TransactionHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	trx, err := h.engine.Checkout(req.Items, req.PaymentMethod, req.AmountReceived, c.GetInt64("userID"))
	if err != nil {
		var notFound *sales.ProductNotFoundError
		var noStock *sales.InsufficientStockError
		switch {
		case errors.Is(err, sales.ErrEmptyCart),
			errors.Is(err, sales.ErrInvalidQuantity),
			errors.Is(err, sales.ErrInvalidPaymentMethod),
			errors.Is(err, sales.ErrInsufficientPayment),
			errors.As(err, &notFound),
			errors.As(err, &noStock):
			fail(c, http.StatusBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, "Failed to create transaction")
		}
		return
	}
	c.JSON(http.StatusOK, trx)
}

// Void cancels a sale, restoring stock and removing the record.
func (h *TransactionHandler) Void(c *gin.Context) {
	err := h.engine.Void(c.Param("id"))
	if errors.Is(err, sales.ErrTransactionNotFound) {
		fail(c, http.StatusNotFound, "Transaction not found.")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to void transaction.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Transaction voided successfully."})
}

// Recent returns the newest transactions for the POS sidebar.
func (h *TransactionHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	transactions, err := h.engine.Recent(limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch recent transactions.")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// List returns the full history for the admin dashboard.
func (h *TransactionHandler) List(c *gin.Context) {
	transactions, err := h.engine.List()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load transactions")
		return
	}
	c.JSON(http.StatusOK, transactions)
}
