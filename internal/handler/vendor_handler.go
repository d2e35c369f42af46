package handler

import (
	"net/http"

	"marketplace-service/internal/apperror"
	mid "marketplace-service/internal/middleware"
	"marketplace-service/internal/service"

	"github.com/labstack/echo/v4"
)

// VendorHandler serves the endpoints a store owner calls for their own store
type VendorHandler struct {
	products   *service.ProductService
	storefront *service.StorefrontService
}

func NewVendorHandler(products *service.ProductService, storefront *service.StorefrontService) *VendorHandler {
	return &VendorHandler{products: products, storefront: storefront}
}

func vendor(c echo.Context) (mid.Vendor, error) {
	v, ok := mid.VendorFrom(c)
	if !ok {
		return mid.Vendor{}, apperror.Forbidden("not authorized")
	}
	return v, nil
}

// ListProducts handles GET /api/products
func (h *VendorHandler) ListProducts(c echo.Context) error {
	v, err := vendor(c)
	if err != nil {
		return respondError(c, err)
	}
	products, err := h.products.List(c.Request().Context(), v.StoreID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /api/products
func (h *VendorHandler) CreateProduct(c echo.Context) error {
	v, err := vendor(c)
	if err != nil {
		return respondError(c, err)
	}
	var in service.ProductInput
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}

	product, err := h.products.Create(c.Request().Context(), v.StoreID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/:id
func (h *VendorHandler) UpdateProduct(c echo.Context) error {
	v, err := vendor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in service.ProductInput
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}

	product, err := h.products.Update(c.Request().Context(), v.StoreID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/:id
func (h *VendorHandler) DeleteProduct(c echo.Context) error {
	v, err := vendor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.products.Delete(c.Request().Context(), v.StoreID, id); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

// UpdateSettings handles PUT /api/store/settings
func (h *VendorHandler) UpdateSettings(c echo.Context) error {
	v, err := vendor(c)
	if err != nil {
		return respondError(c, err)
	}
	var in service.SettingsInput
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}

	store, err := h.storefront.UpdateSettings(c.Request().Context(), v.StoreID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, store)
}
