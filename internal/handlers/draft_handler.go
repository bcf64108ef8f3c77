package handlers

import (
	"errors"
	"net/http"

	"warung-pos/internal/drafts"
	"warung-pos/internal/models"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	drafts *drafts.Store
}

func NewDraftHandler(d *drafts.Store) *DraftHandler {
	return &DraftHandler{drafts: d}
}

func (h *DraftHandler) List(c *gin.Context) {
	list, err := h.drafts.List()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load drafts")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *DraftHandler) Save(c *gin.Context) {
	var input struct {
		Items []models.DraftItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	draft, err := h.drafts.Save(input.Items)
	if errors.Is(err, drafts.ErrEmptyDraft) {
		fail(c, http.StatusBadRequest, "Cannot save an empty draft.")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to save draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Draft saved successfully!", "draft": draft})
}

// Load hands back the draft's items and deletes the draft.
func (h *DraftHandler) Load(c *gin.Context) {
	items, err := h.drafts.Load(c.Param("id"))
	if errors.Is(err, drafts.ErrDraftNotFound) {
		fail(c, http.StatusNotFound, "Draft not found.")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Draft loaded successfully.", "items": items})
}

func (h *DraftHandler) Delete(c *gin.Context) {
	err := h.drafts.Delete(c.Param("id"))
	if errors.Is(err, drafts.ErrDraftNotFound) {
		fail(c, http.StatusNotFound, "Draft not found.")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Draft deleted successfully."})
}
