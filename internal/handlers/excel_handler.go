package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"warung-pos/internal/models"
	"warung-pos/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Spreadsheet columns for product export, import template and import
// parsing. Image data stays out of the sheet to avoid cell size limits.
var productColumns = []struct {
	Header string
	Width  float64
}{
	{"Product Name", 30},
	{"Purchase Price", 15},
	{"Selling Price", 15},
	{"Price", 15},
	{"Stock", 10},
	{"Category", 20},
	{"SKU", 20},
	{"QR Code", 25},
	{"Is Top Product", 15},
	{"Is Best Seller", 15},
	{"Has Image", 15},
}

// ExcelHandler covers XLSX export, the import template, and bulk import.
type ExcelHandler struct {
	store *store.Store
}

func NewExcelHandler(s *store.Store) *ExcelHandler {
	return &ExcelHandler{store: s}
}

func writeSheet(sheet string, rows [][]any) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	for i, col := range productColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return nil, err
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return nil, err
		}
	}
	for r, row := range rows {
		for i, v := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Export streams the product collection as an XLSX attachment.
func (h *ExcelHandler) Export(c *gin.Context) {
	products, err := h.store.Products()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to export products")
		return
	}
	categories, err := h.store.Categories()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to export products")
		return
	}
	categoryNames := make(map[int64]string, len(categories))
	for _, cat := range categories {
		categoryNames[cat.ID] = cat.Name
	}

	rows := make([][]any, 0, len(products))
	for _, p := range products {
		sellingPrice := p.SellingPrice
		if sellingPrice == 0 {
			sellingPrice = p.Price
		}
		rows = append(rows, []any{
			p.Name, p.PurchasePrice, sellingPrice, p.Price, p.Stock,
			categoryNames[p.CategoryID], p.SKU, p.QRCode,
			yesNo(p.IsTopProduct), yesNo(p.IsBestSeller), yesNo(p.ImageBase64 != ""),
		})
	}

	f, err := writeSheet("Products", rows)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to export products: "+err.Error())
		return
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to export products: "+err.Error())
		return
	}
	c.Header("Content-Disposition", "attachment; filename=products_export.xlsx")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Template serves an example sheet in the exact shape Import expects.
func (h *ExcelHandler) Template(c *gin.Context) {
	categories, err := h.store.Categories()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to generate template")
		return
	}
	categoryName := func(i int) string {
		if i < len(categories) {
			return categories[i].Name
		}
		return "General"
	}

	rows := [][]any{
		{"Example Product 1", 8000, 10000, 10000, 50, categoryName(0), "PROD-001", "QR-EX-001", "Yes", "No", "No"},
		{"Example Product 2", 20000, 25000, 25000, 30, categoryName(1), "PROD-002", "QR-EX-002", "No", "Yes", "No"},
	}

	f, err := writeSheet("Template", rows)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to generate template: "+err.Error())
		return
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to generate template: "+err.Error())
		return
	}
	c.Header("Content-Disposition", "attachment; filename=product_import_template.xlsx")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ImportRequest carries spreadsheet rows the admin UI already parsed
// into header-keyed objects.
type ImportRequest struct {
	Products []map[string]any `json:"products"`
}

// Import appends products row by row; rows with missing required cells
// are skipped and reported, unknown categories are created on the fly.
func (h *ExcelHandler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Products) == 0 {
		fail(c, http.StatusBadRequest, "No valid data to import")
		return
	}

	var successCount, errorCount int
	var rowErrors []string

	err := h.store.Mutate(func() error {
		products, err := h.store.Products()
		if err != nil {
			return err
		}
		categories, err := h.store.Categories()
		if err != nil {
			return err
		}

		for i, row := range req.Products {
			name := strings.TrimSpace(cellString(row["Product Name"]))
			stock, hasStock := cellInt(row["Stock"])
			sellingPrice, hasSelling := cellFloat(row["Selling Price"])
			legacyPrice, hasLegacy := cellFloat(row["Price"])
			if name == "" || !hasStock || (!hasSelling && !hasLegacy) {
				rowErrors = append(rowErrors, fmt.Sprintf("Row %d: required columns missing. Required: Product Name, Stock, and Selling Price or Price.", i+1))
				errorCount++
				continue
			}
			if !hasSelling {
				sellingPrice = legacyPrice
			}

			var categoryID int64
			if catName := strings.TrimSpace(cellString(row["Category"])); catName != "" {
				found := false
				for _, cat := range categories {
					if strings.EqualFold(cat.Name, catName) {
						categoryID = cat.ID
						found = true
						break
					}
				}
				if !found {
					newCategory := models.Category{
						ID:          store.NextID(),
						Name:        catName,
						Description: "Created automatically from import",
					}
					categories = append(categories, newCategory)
					categoryID = newCategory.ID
				}
			}

			id := store.NextID()
			sku := strings.TrimSpace(cellString(row["SKU"]))
			if sku == "" {
				sku = fmt.Sprintf("PROD-%d", id)
			}
			purchasePrice, _ := cellFloat(row["Purchase Price"])

			products = append(products, models.Product{
				ID:            id,
				SKU:           sku,
				Name:          name,
				PurchasePrice: purchasePrice,
				SellingPrice:  sellingPrice,
				Price:         sellingPrice,
				Stock:         stock,
				CategoryID:    categoryID,
				QRCode:        strings.TrimSpace(cellString(row["QR Code"])),
				IsTopProduct:  strings.EqualFold(cellString(row["Is Top Product"]), "yes"),
				IsBestSeller:  strings.EqualFold(cellString(row["Is Best Seller"]), "yes"),
			})
			successCount++
		}

		if err := h.store.SaveProducts(products); err != nil {
			return err
		}
		return h.store.SaveCategories(categories)
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to import products: "+err.Error())
		return
	}

	message := fmt.Sprintf("Import finished. Success: %d, Errors: %d", successCount, errorCount)
	if len(rowErrors) > 10 {
		rowErrors = rowErrors[:10]
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      message,
		"successCount": successCount,
		"errorCount":   errorCount,
		"errors":       rowErrors,
	})
}

// Spreadsheet cells arrive as whatever JSON type the client's parser
// produced, so the readers below accept both strings and numbers.

func cellString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func cellFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		n = strings.TrimSpace(n)
		if n == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func cellInt(v any) (int, bool) {
	f, ok := cellFloat(v)
	return int(f), ok
}
