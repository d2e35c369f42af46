package handler

import (
	"net/http"

	"marketplace-service/internal/service"

	"github.com/labstack/echo/v4"
)

// AdminHandler serves the superadmin endpoints. The route group already requires the
// superadmin capability.
type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c echo.Context) error {
	d, err := h.admin.Dashboard(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// CreateCode handles POST /api/admin/codes; an empty code is generated
func (h *AdminHandler) CreateCode(c echo.Context) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	code, err := h.admin.IssueCode(c.Request().Context(), req.Code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, code)
}

// DeleteCode handles DELETE /api/admin/codes/:id
func (h *AdminHandler) DeleteCode(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.admin.RevokeCode(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

// SetStoreStatus handles PUT /api/admin/store/:id/status. Without is_suspended the flag flips.
func (h *AdminHandler) SetStoreStatus(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req struct {
		IsSuspended *bool `json:"is_suspended"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	state, err := h.admin.SetSuspension(c.Request().Context(), id, req.IsSuspended)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "is_suspended": state})
}

// DeleteStore handles DELETE /api/admin/store/:id
func (h *AdminHandler) DeleteStore(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.admin.DeleteStore(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

// SetStorePassword handles PUT /api/admin/store/:id/password
func (h *AdminHandler) SetStorePassword(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req struct {
		NewPassword string `json:"newPassword" validate:"required"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.admin.SetStorePassword(c.Request().Context(), id, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

// SetStoreContact handles PUT /api/admin/store/:id/contact
func (h *AdminHandler) SetStoreContact(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req struct {
		WhatsApp string `json:"whatsapp" validate:"required"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.admin.SetStoreContact(c.Request().Context(), id, req.WhatsApp); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

// ChangePassword handles PUT /api/admin/password
func (h *AdminHandler) ChangePassword(c echo.Context) error {
	var req struct {
		Password string `json:"password" validate:"required"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.admin.ChangePassword(c.Request().Context(), req.Password); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

// SetSupportContact handles PUT /api/admin/config/contact
func (h *AdminHandler) SetSupportContact(c echo.Context) error {
	var req struct {
		WhatsApp string `json:"whatsapp" validate:"required"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.admin.SetSupportContact(c.Request().Context(), req.WhatsApp); err != nil {
		return respondError(c, err)
	}
	return success(c)
}
