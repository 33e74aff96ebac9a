package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/service"
)

func (h *Handler) suggestClientID(c *gin.Context) {
	id, err := h.svc.Clients.SuggestID(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggested_client_id": id})
}

func (h *Handler) addClient(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		badRequest(c, "invalid request body")
		return
	}

	password, _ := fields["password"].(string)
	err = h.svc.Clients.Create(c.Request.Context(), service.CreateClientInput{
		ClientID:   stringField(fields, "client_id"),
		ClientName: stringField(fields, "client_name"),
		ClientType: stringField(fields, "client_type"),
		Phone:      stringField(fields, "phone"),
		Email:      stringField(fields, "email"),
		Properties: stringList(fields["properties"]),
		Username:   stringField(fields, "username"),
		Password:   password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Client created successfully")
}

func (h *Handler) listClients(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	clients, err := h.svc.Clients.List(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *Handler) getClient(c *gin.Context) {
	client, err := h.svc.Clients.Get(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) updateClient(c *gin.Context) {
	var update service.ClientUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.svc.Clients.Update(c.Request.Context(), c.Param("client_id"), update); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Client updated successfully")
}

func (h *Handler) deleteClient(c *gin.Context) {
	if err := h.svc.Clients.Delete(c.Request.Context(), c.Param("client_id")); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Client deleted successfully")
}

func (h *Handler) clientProperties(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	properties, err := h.svc.Clients.Properties(c.Request.Context(), principal, c.Param("client_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

func (h *Handler) clientEntries(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	entries, err := h.svc.Entries.ForClient(c.Request.Context(), principal, c.Param("client_id"), service.ClientEntriesQuery{
		StartDate:   c.Query("start_date"),
		EndDate:     c.Query("end_date"),
		PropertyIDs: c.QueryArray("property_ids"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type exportEntriesRequest struct {
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	PropertyIDs []string `json:"property_ids"`
}

func (h *Handler) exportEntries(c *gin.Context) {
	h.export(c, model.ReportFormatXLSX)
}

func (h *Handler) exportEntriesPDF(c *gin.Context) {
	h.export(c, model.ReportFormatPDF)
}

func (h *Handler) export(c *gin.Context, format model.ReportFormat) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req exportEntriesRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	result, err := h.svc.Reports.Export(c.Request.Context(), service.ExportInput{
		ClientID:    c.Param("client_id"),
		StartDate:   strings.TrimSpace(req.StartDate),
		EndDate:     strings.TrimSpace(req.EndDate),
		PropertyIDs: req.PropertyIDs,
		Format:      format,
		Principal:   principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
