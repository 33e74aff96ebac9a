package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/basura/basura-api/internal/service"
)

func (h *Handler) suggestPropertyID(c *gin.Context) {
	id, err := h.svc.Properties.SuggestID(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggested_property_id": id})
}

func (h *Handler) addProperty(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		badRequest(c, "invalid request body")
		return
	}

	err = h.svc.Properties.Create(c.Request.Context(), service.CreatePropertyInput{
		PropertyID:             stringField(fields, "property_id"),
		PropertyType:           stringField(fields, "property_type"),
		PropertyManagerName:    stringField(fields, "property_manager_name"),
		PropertyManagerPhoneNo: stringField(fields, "property_manager_phone_no"),
		Email:                  stringField(fields, "email"),
		Fields:                 fields,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Property created successfully")
}

func (h *Handler) listProperties(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	properties, err := h.svc.Properties.List(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

func (h *Handler) getProperty(c *gin.Context) {
	property, err := h.svc.Properties.Get(c.Request.Context(), c.Param("property_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *Handler) updateProperty(c *gin.Context) {
	fields := map[string]any{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := h.svc.Properties.Update(c.Request.Context(), c.Param("property_id"), fields); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Property updated successfully")
}

func (h *Handler) deleteProperty(c *gin.Context) {
	if err := h.svc.Properties.Delete(c.Request.Context(), c.Param("property_id")); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Property deleted successfully")
}

func (h *Handler) unassignedProperties(c *gin.Context) {
	ids, err := h.svc.Properties.Unassigned(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

func (h *Handler) propertyDetails(c *gin.Context) {
	details, err := h.svc.Properties.Details(c.Request.Context(), c.Param("property_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}
