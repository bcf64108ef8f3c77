package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"warung-pos/internal/catalog"
	"warung-pos/internal/models"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	catalog *catalog.Manager
}

func NewProductHandler(m *catalog.Manager) *ProductHandler {
	return &ProductHandler{catalog: m}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.Products()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input models.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	created, err := h.catalog.CreateProduct(input)
	if err != nil {
		respondCatalogError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid product ID")
		return
	}
	var input catalog.ProductUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	updated, err := h.catalog.UpdateProduct(id, input)
	if err != nil {
		respondCatalogError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid product ID")
		return
	}
	if err := h.catalog.DeleteProduct(id); err != nil {
		respondCatalogError(c, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProductHandler) CheckName(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	excludeID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	taken, err := h.catalog.ProductNameTaken(strings.TrimSpace(input.Name), excludeID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": taken})
}

// respondCatalogError maps catalog errors onto the API's status codes.
func respondCatalogError(c *gin.Context, err error, fallback string) {
	var nameTaken *catalog.NameTakenError
	var inUse *catalog.CategoryInUseError
	switch {
	case errors.As(err, &nameTaken),
		errors.As(err, &inUse),
		errors.Is(err, catalog.ErrProductNameRequired),
		errors.Is(err, catalog.ErrCategoryNameRequired),
		errors.Is(err, catalog.ErrProductInUse):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, catalog.ErrCategoryNotFound):
		fail(c, http.StatusNotFound, err.Error())
	default:
		fail(c, http.StatusInternalServerError, fallback)
	}
}
