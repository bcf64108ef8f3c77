package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"warung-pos/internal/catalog"
	"warung-pos/internal/models"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	catalog *catalog.Manager
}

func NewCategoryHandler(m *catalog.Manager) *CategoryHandler {
	return &CategoryHandler{catalog: m}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.catalog.Categories()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var input models.Category
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	created, err := h.catalog.CreateCategory(input)
	if err != nil {
		respondCatalogError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid category ID")
		return
	}
	var input models.Category
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	updated, err := h.catalog.UpdateCategory(id, input)
	if err != nil {
		respondCatalogError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid category ID")
		return
	}
	if err := h.catalog.DeleteCategory(id); err != nil {
		respondCatalogError(c, err, "Failed to delete category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CategoryHandler) CheckName(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	excludeID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	taken, err := h.catalog.CategoryNameTaken(strings.TrimSpace(input.Name), excludeID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": taken})
}
