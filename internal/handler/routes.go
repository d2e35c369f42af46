package handler

import (
	"net/http"

	mid "marketplace-service/internal/middleware"

	"github.com/labstack/echo/v4"
)

// Handlers groups everything the router needs
type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Public  *PublicHandler
	Vendor  *VendorHandler
	Admin   *AdminHandler
	Metrics http.Handler
}

// RegisterRoutes wires every endpoint onto e. Authenticated groups decode the bearer token
// once and gate on the required capability.
func RegisterRoutes(e *echo.Echo, h Handlers, tokens mid.TokenValidator) {
	auth := mid.JWTAuthMiddleware(tokens)
	e.Validator = newRequestValidator()

	e.GET("/health", h.Health.HealthCheck)
	if h.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.Metrics))
	}

	public := e.Group("/api/public")
	public.GET("/config", h.Public.Config)
	public.GET("/all-products", h.Public.AllProducts)
	public.GET("/products/province/:id", h.Public.ProvinceProducts)
	public.GET("/stores", h.Public.Stores)
	public.GET("/provinces", h.Public.Provinces)

	e.POST("/api/login", h.Auth.Login)
	e.POST("/api/register", h.Auth.Register)
	e.POST("/api/admin/login", h.Auth.AdminLogin)

	e.GET("/api/store/:identifier", h.Public.Storefront)
	e.PUT("/api/store/settings", h.Vendor.UpdateSettings, auth, mid.RequireVendor)

	products := e.Group("/api/products", auth, mid.RequireVendor)
	products.GET("", h.Vendor.ListProducts)
	products.POST("", h.Vendor.CreateProduct)
	products.PUT("/:id", h.Vendor.UpdateProduct)
	products.DELETE("/:id", h.Vendor.DeleteProduct)

	admin := e.Group("/api/admin", auth, mid.RequireSuperAdmin)
	admin.GET("/dashboard", h.Admin.Dashboard)
	admin.POST("/codes", h.Admin.CreateCode)
	admin.DELETE("/codes/:id", h.Admin.DeleteCode)
	admin.PUT("/store/:id/status", h.Admin.SetStoreStatus)
	admin.PUT("/store/:id/password", h.Admin.SetStorePassword)
	admin.PUT("/store/:id/contact", h.Admin.SetStoreContact)
	admin.DELETE("/store/:id", h.Admin.DeleteStore)
	admin.PUT("/password", h.Admin.ChangePassword)
	admin.PUT("/config/contact", h.Admin.SetSupportContact)
}
