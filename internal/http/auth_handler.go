package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		badRequest(c, "username and password are required")
		return
	}

	tokens, err := h.svc.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) refresh(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	token, err := h.svc.Auth.Refresh(principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email is required")
		return
	}
	if err := h.svc.Auth.ForgotPassword(c.Request.Context(), strings.TrimSpace(req.Email)); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Password reset link sent to email")
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req struct {
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "new_password is required")
		return
	}
	if err := h.svc.Auth.ResetPassword(c.Request.Context(), c.Param("token"), req.NewPassword); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Password updated successfully")
}

func (h *Handler) userDetails(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	user, err := h.svc.Auth.UserDetails(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) updateProfilePhoto(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	photo, err := readUpload(c, "profile_photo")
	if errors.Is(err, errUploadType) || (err == nil && photo == nil) {
		badRequest(c, "Invalid profile photo file type")
		return
	}
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.svc.Auth.UpdateProfilePhoto(c.Request.Context(), principal, *photo); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Profile photo updated successfully")
}
