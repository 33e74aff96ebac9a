package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/service"
)

func (h *Handler) addEntry(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var input service.AddEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Missing required fields")
		return
	}

	entry, err := h.svc.Entries.Add(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Entry added successfully", "id": entry.ID})
}

func (h *Handler) deleteEntry(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var key model.EntryKey
	if err := c.ShouldBindJSON(&key); err != nil {
		badRequest(c, "Missing required fields")
		return
	}
	if err := h.svc.Entries.Delete(c.Request.Context(), principal, key); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Entry deleted successfully")
}

func (h *Handler) submissions(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}
	entries, err := h.svc.Entries.Submissions(c.Request.Context(), principal, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) analytics(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	entries, err := h.svc.Entries.Analytics(c.Request.Context(), principal, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
