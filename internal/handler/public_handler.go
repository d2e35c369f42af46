package handler

import (
	"net/http"

	"marketplace-service/internal/service"

	"github.com/labstack/echo/v4"
)

// PublicHandler serves the anonymous endpoints
type PublicHandler struct {
	catalog    *service.CatalogService
	storefront *service.StorefrontService
}

func NewPublicHandler(catalog *service.CatalogService, storefront *service.StorefrontService) *PublicHandler {
	return &PublicHandler{catalog: catalog, storefront: storefront}
}

// Config handles GET /api/public/config
func (h *PublicHandler) Config(c echo.Context) error {
	cfg, err := h.catalog.PublicConfig(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

// AllProducts handles GET /api/public/all-products
func (h *PublicHandler) AllProducts(c echo.Context) error {
	entries, err := h.catalog.Products(c.Request().Context(), nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// ProvinceProducts handles GET /api/public/products/province/:id
func (h *PublicHandler) ProvinceProducts(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	entries, err := h.catalog.Products(c.Request().Context(), &id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// Provinces handles GET /api/public/provinces
func (h *PublicHandler) Provinces(c echo.Context) error {
	provinces, err := h.catalog.Provinces(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, provinces)
}

// Stores handles GET /api/public/stores
func (h *PublicHandler) Stores(c echo.Context) error {
	stores, err := h.storefront.Directory(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stores)
}

// Storefront handles GET /api/store/:identifier
func (h *PublicHandler) Storefront(c echo.Context) error {
	page, err := h.storefront.Storefront(c.Request().Context(), c.Param("identifier"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}
