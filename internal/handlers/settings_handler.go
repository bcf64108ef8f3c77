package handlers

import (
	"net/http"

	"warung-pos/internal/models"
	"warung-pos/internal/store"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the singleton banner and QRIS config records.
type SettingsHandler struct {
	store *store.Store
}

func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

func (h *SettingsHandler) GetBanner(c *gin.Context) {
	banner, err := h.store.Banner()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load banner")
		return
	}
	c.JSON(http.StatusOK, banner)
}

// ListBanners keeps the legacy array-shaped endpoint alive.
func (h *SettingsHandler) ListBanners(c *gin.Context) {
	banner, err := h.store.Banner()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load banners")
		return
	}
	if banner.ID == 0 && banner.ImageBase64 == "" {
		c.JSON(http.StatusOK, []models.Banner{})
		return
	}
	c.JSON(http.StatusOK, []models.Banner{banner})
}

func (h *SettingsHandler) SaveBanner(c *gin.Context) {
	var input struct {
		Title       string `json:"title"`
		Subtitle    string `json:"subtitle"`
		ImageBase64 string `json:"imageBase64"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	banner := models.Banner{ID: 1, Title: input.Title, Subtitle: input.Subtitle, ImageBase64: input.ImageBase64}
	err := h.store.Mutate(func() error {
		return h.store.SaveBanner(banner)
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to save banner")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "banner": banner, "message": "Banner updated"})
}

func (h *SettingsHandler) GetQRIS(c *gin.Context) {
	qris, err := h.store.QRIS()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load QRIS")
		return
	}
	c.JSON(http.StatusOK, qris)
}

func (h *SettingsHandler) SaveQRIS(c *gin.Context) {
	var input struct {
		ImageBase64 string `json:"imageBase64"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	qris := models.QRIS{ID: 1, ImageBase64: input.ImageBase64}
	err := h.store.Mutate(func() error {
		return h.store.SaveQRIS(qris)
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to save QRIS")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "qris": qris, "message": "QRIS updated"})
}
