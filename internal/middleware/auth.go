package middleware

import (
	"net/http"
	"strings"

	"marketplace-service/pkg/jwtutil"
	"marketplace-service/pkg/logger"
	"marketplace-service/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const principalKey = "principal"

// Principal is the authenticated caller, decoded once from the bearer token
type Principal struct {
	Role    string
	StoreID uuid.UUID
	Name    string
}

// Vendor is the capability to act on one store
type Vendor struct {
	StoreID uuid.UUID
	Name    string
}

// SuperAdmin is the capability to moderate the platform
type SuperAdmin struct{}

// AsVendor returns the vendor capability, or false for any other principal
func (p *Principal) AsVendor() (Vendor, bool) {
	if p == nil || p.Role != jwtutil.RoleVendor || p.StoreID == uuid.Nil {
		return Vendor{}, false
	}
	return Vendor{StoreID: p.StoreID, Name: p.Name}, true
}

// AsSuperAdmin returns the superadmin capability, or false for any other principal
func (p *Principal) AsSuperAdmin() (SuperAdmin, bool) {
	if p == nil || p.Role != jwtutil.RoleSuperAdmin {
		return SuperAdmin{}, false
	}
	return SuperAdmin{}, true
}

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwtutil.Claims, error)
}

// JWTAuthMiddleware validates the bearer token and stores the caller's Principal
func JWTAuthMiddleware(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token required"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				log.Warn("Invalid authorization header format")
				prometheus.RecordAuthError("malformed_header")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header format"})
			}

			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}

			principal := &Principal{Role: claims.Role, Name: claims.Name}
			if claims.StoreID != "" {
				id, err := uuid.Parse(claims.StoreID)
				if err != nil {
					log.Warn("Token carries a malformed store id", zap.String("store_id", claims.StoreID))
					prometheus.RecordAuthError("invalid_token")
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
				}
				principal.StoreID = id
			}

			c.Set(principalKey, principal)
			log.Debug("JWT token validated", zap.String("role", principal.Role))

			return next(c)
		}
	}
}

// PrincipalFrom returns the Principal stored by JWTAuthMiddleware, or nil
func PrincipalFrom(c echo.Context) *Principal {
	p, _ := c.Get(principalKey).(*Principal)
	return p
}

// VendorFrom returns the vendor capability of the caller
func VendorFrom(c echo.Context) (Vendor, bool) {
	return PrincipalFrom(c).AsVendor()
}

// RequireVendor rejects callers that are not vendors with 403
func RequireVendor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := VendorFrom(c); !ok {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "not authorized"})
		}
		return next(c)
	}
}

// RequireSuperAdmin rejects callers that are not the superadmin with 403
func RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := PrincipalFrom(c).AsSuperAdmin(); !ok {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "superadmin required"})
		}
		return next(c)
	}
}
