package handlers

import (
	"net/http"
	"sort"

	"warung-pos/internal/models"
	"warung-pos/internal/store"

	"github.com/gin-gonic/gin"
)

// ReportData is the admin dashboard's analytics payload.
type ReportData struct {
	TotalRevenue float64              `json:"totalRevenue"`
	TotalOrders  int                  `json:"totalOrders"`
	TopSelling   []TopSellingItem     `json:"topSelling"`
	RecentSales  []models.Transaction `json:"recentSales"`
}

type TopSellingItem struct {
	ProductName string  `json:"productName"`
	Sold        int     `json:"sold"`
	Revenue     float64 `json:"revenue"`
}

type ReportHandler struct {
	store *store.Store
}

func NewReportHandler(s *store.Store) *ReportHandler {
	return &ReportHandler{store: s}
}

// Summary folds the whole transaction collection into revenue totals,
// the top 5 sellers by quantity, and the 10 newest sales.
func (h *ReportHandler) Summary(c *gin.Context) {
	transactions, err := h.store.Transactions()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	var data ReportData
	data.TotalOrders = len(transactions)
	data.TopSelling = []TopSellingItem{}

	totals := make(map[int64]*TopSellingItem)
	for _, t := range transactions {
		data.TotalRevenue += t.TotalAmount
		for _, item := range t.Items {
			entry, ok := totals[item.ProductID]
			if !ok {
				entry = &TopSellingItem{ProductName: item.Name}
				totals[item.ProductID] = entry
			}
			entry.Sold += item.Qty
			entry.Revenue += item.Subtotal
		}
	}

	for _, entry := range totals {
		data.TopSelling = append(data.TopSelling, *entry)
	}
	sort.Slice(data.TopSelling, func(i, j int) bool {
		return data.TopSelling[i].Sold > data.TopSelling[j].Sold
	})
	if len(data.TopSelling) > 5 {
		data.TopSelling = data.TopSelling[:5]
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Timestamp.After(transactions[j].Timestamp)
	})
	if len(transactions) > 10 {
		transactions = transactions[:10]
	}
	data.RecentSales = transactions

	c.JSON(http.StatusOK, data)
}
