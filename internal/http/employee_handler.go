package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/service"
)

func (h *Handler) suggestEmployeeID(c *gin.Context) {
	id, err := h.svc.Employees.SuggestID(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggested_employee_id": id})
}

func (h *Handler) addEmployee(c *gin.Context) {
	idProof, err := readUpload(c, "id_proof")
	if err != nil {
		if errors.Is(err, errUploadType) {
			badRequest(c, "Invalid ID proof file type")
			return
		}
		badRequest(c, err.Error())
		return
	}
	photo, err := readUpload(c, "profile_photo")
	if err != nil {
		if errors.Is(err, errUploadType) {
			badRequest(c, "Invalid profile photo file type")
			return
		}
		badRequest(c, err.Error())
		return
	}

	form := func(key string) string { return strings.TrimSpace(c.PostForm(key)) }
	err = h.svc.Employees.Create(c.Request.Context(), service.CreateEmployeeInput{
		EmployeeID: form("employee_id"),
		Name: model.PersonName{
			FirstName:  form("firstname"),
			MiddleName: form("middlename"),
			LastName:   form("lastname"),
		},
		Contact:       form("contact"),
		Email:         form("email"),
		Username:      form("username"),
		BankAccountNo: form("bank_account_no"),
		Password:      c.PostForm("password"),
		Role:          form("role"),
		IDProof:       idProof,
		ProfilePhoto:  photo,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Employee created successfully")
}

func (h *Handler) listEmployees(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	employees, err := h.svc.Employees.List(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *Handler) getEmployee(c *gin.Context) {
	employee, err := h.svc.Employees.Get(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *Handler) updateEmployee(c *gin.Context) {
	var update service.EmployeeUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.svc.Employees.Update(c.Request.Context(), c.Param("employee_id"), update); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Employee updated successfully")
}

func (h *Handler) deleteEmployee(c *gin.Context) {
	if err := h.svc.Employees.Delete(c.Request.Context(), c.Param("employee_id")); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Employee deleted successfully")
}
