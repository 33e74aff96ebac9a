package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/basura/basura-api/internal/http/middleware"
	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/service"
)

type Services struct {
	Auth       *service.AuthService
	Employees  *service.EmployeeService
	Properties *service.PropertyService
	Clients    *service.ClientService
	Attributes *service.AttributeService
	Entries    *service.EntryService
	Reports    *service.ReportService
}

type Handler struct {
	svc Services
	log zerolog.Logger
}

func NewHandler(svc Services, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts every route. requireAccess guards normal routes,
// requireRefresh guards the token refresh route.
func (h *Handler) Register(router *gin.Engine, requireAccess, requireRefresh gin.HandlerFunc) {
	router.POST("/login", h.login)
	router.POST("/forgot-password", h.forgotPassword)
	router.POST("/reset-password/:token", h.resetPassword)
	router.POST("/token/refresh", requireRefresh, h.refresh)

	protected := router.Group("/")
	protected.Use(requireAccess)
	protected.GET("/user/details", h.userDetails)
	protected.PUT("/profile/photo", h.updateProfilePhoto)
	protected.GET("/garbage-attributes", h.listAttributes)

	admin := protected.Group("/")
	admin.Use(middleware.RequireRoles(model.RoleAdmin))
	admin.GET("/employee-id/suggest", h.suggestEmployeeID)
	admin.POST("/add-employee", h.addEmployee)
	admin.GET("/employees", h.listEmployees)
	admin.GET("/employee/:employee_id", h.getEmployee)
	admin.PUT("/employee/:employee_id", h.updateEmployee)
	admin.DELETE("/employee/:employee_id", h.deleteEmployee)

	admin.GET("/property-id/suggest", h.suggestPropertyID)
	admin.POST("/add-property", h.addProperty)
	admin.GET("/properties", h.listProperties)
	admin.GET("/property/:property_id", h.getProperty)
	admin.PUT("/property/:property_id", h.updateProperty)
	admin.DELETE("/property/:property_id", h.deleteProperty)
	admin.GET("/unassigned-properties", h.unassignedProperties)

	admin.GET("/client-id/suggest", h.suggestClientID)
	admin.POST("/add-client", h.addClient)
	admin.GET("/clients", h.listClients)
	admin.GET("/client/:client_id", h.getClient)
	admin.PUT("/client/:client_id", h.updateClient)
	admin.DELETE("/client/:client_id", h.deleteClient)

	admin.POST("/garbage-attributes", h.addAttribute)
	admin.PUT("/garbage-attributes/:attribute_name", h.updateAttribute)
	admin.DELETE("/garbage-attributes/:attribute_name", h.deleteAttribute)

	staff := protected.Group("/")
	staff.Use(middleware.RequireRoles(model.RoleAdmin, model.RoleEmployee))
	staff.GET("/property-details/:property_id", h.propertyDetails)
	staff.POST("/add-entry", h.addEntry)
	staff.DELETE("/delete-entry", h.deleteEntry)
	staff.GET("/submissions", h.submissions)
	staff.GET("/analytics", h.analytics)

	clientScoped := protected.Group("/client/:client_id")
	clientScoped.Use(middleware.RequireRoles(model.RoleAdmin, model.RoleClient))
	clientScoped.GET("/properties", h.clientProperties)
	clientScoped.GET("/entries", h.clientEntries)
	clientScoped.POST("/entries/export", h.exportEntries)
	clientScoped.POST("/entries/export/pdf", h.exportEntriesPDF)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNoRecords):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) principal(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return principal, ok
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func respondMessage(c *gin.Context, status int, text string) {
	c.JSON(status, gin.H{"message": text})
}

func parsePage(c *gin.Context) (int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		badRequest(c, "Invalid page")
		return 0, false
	}
	return page, true
}

func listParams(c *gin.Context) (service.ListParams, bool) {
	page, ok := parsePage(c)
	if !ok {
		return service.ListParams{}, false
	}
	return service.ListParams{
		Page:      page,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}, true
}
