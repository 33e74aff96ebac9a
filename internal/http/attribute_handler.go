package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/basura/basura-api/internal/service"
)

func (h *Handler) listAttributes(c *gin.Context) {
	attributes, err := h.svc.Attributes.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, attributes)
}

func (h *Handler) addAttribute(c *gin.Context) {
	var req struct {
		AttributeName string `json:"attribute_name"`
		Color         string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.svc.Attributes.Create(c.Request.Context(), req.AttributeName, req.Color); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Attribute added successfully")
}

func (h *Handler) updateAttribute(c *gin.Context) {
	var update service.AttributeUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.svc.Attributes.Update(c.Request.Context(), c.Param("attribute_name"), update); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Attribute updated successfully")
}

func (h *Handler) deleteAttribute(c *gin.Context) {
	if err := h.svc.Attributes.Delete(c.Request.Context(), c.Param("attribute_name")); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Attribute deleted successfully")
}
