package handler

import (
	"net/http"

	"marketplace-service/internal/service"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves vendor login, registration and superadmin login
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		WhatsApp string `json:"whatsapp" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	session, err := h.auth.VendorLogin(c.Request().Context(), req.WhatsApp, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// Register handles POST /api/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	reg, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, reg)
}

// AdminLogin handles POST /api/admin/login
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req struct {
		Password string `json:"password" validate:"required"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	token, err := h.auth.AdminLogin(c.Request().Context(), req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
