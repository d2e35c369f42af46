package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the role claim
const (
	RoleVendor     = "vendor"
	RoleSuperAdmin = "superadmin"
)

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey string
}

// Claims represents the JWT claims for both principal kinds.
// Superadmin tokens carry no store id.
type Claims struct {
	StoreID string `json:"id,omitempty"`
	Role    string `json:"role"`
	Name    string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTUtil is a utility for JWT token operations
type JWTUtil struct {
	config *JWTConfig
	now    func() time.Time
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(config *JWTConfig) *JWTUtil {
	return &JWTUtil{
		config: config,
		now:    time.Now,
	}
}

// GenerateVendorToken signs a vendor token bound to a store. A zero ttl produces a token
// without an expiry claim.
func (j *JWTUtil) GenerateVendorToken(storeID, ownerName string, ttl time.Duration) (string, error) {
	if storeID == "" {
		return "", errors.New("store id is required for a vendor token")
	}
	return j.GenerateToken(Claims{StoreID: storeID, Role: RoleVendor, Name: ownerName}, ttl)
}

// GenerateSuperAdminToken signs an operator token
func (j *JWTUtil) GenerateSuperAdminToken(ttl time.Duration) (string, error) {
	return j.GenerateToken(Claims{Role: RoleSuperAdmin}, ttl)
}

// GenerateToken signs an arbitrary claim set with HS256
func (j *JWTUtil) GenerateToken(claims Claims, ttl time.Duration) (string, error) {
	if j.config == nil || j.config.SigningKey == "" {
		return "", errors.New("JWT configuration not provided")
	}

	now := j.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// ValidateToken validates and parses the JWT token
func (j *JWTUtil) ValidateToken(tokenString string) (*Claims, error) {
	if j.config == nil || j.config.SigningKey == "" {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Role != RoleVendor && claims.Role != RoleSuperAdmin {
		return nil, fmt.Errorf("unknown role %q", claims.Role)
	}
	if claims.Role == RoleVendor && claims.StoreID == "" {
		return nil, errors.New("vendor token without store id")
	}

	return claims, nil
}
