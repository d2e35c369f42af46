package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"marketplace-service/internal/apperror"
	"marketplace-service/internal/model"
	"marketplace-service/internal/repository"
	"marketplace-service/pkg/jwtutil"
	"marketplace-service/pkg/logger"
	"marketplace-service/prometheus"

	"go.uber.org/zap"
)

// TokenIssuer signs principal tokens
type TokenIssuer interface {
	GenerateVendorToken(storeID, ownerName string, ttl time.Duration) (string, error)
	GenerateSuperAdminToken(ttl time.Duration) (string, error)
}

var _ TokenIssuer = (*jwtutil.JWTUtil)(nil)

// VendorSession is returned by a successful vendor login
type VendorSession struct {
	Token    string          `json:"token"`
	Store    *model.Store    `json:"store"`
	Products []model.Product `json:"products"`
}

// Registration is returned by a successful code redemption
type Registration struct {
	Store *model.Store `json:"store"`
	Token string       `json:"token"`
}

// RegisterRequest carries the registration form
type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	WhatsApp  string `json:"whatsapp" validate:"required"`
	OwnerName string `json:"ownerName"`
	Code      string `json:"code" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// AuthService authenticates vendors and the superadmin
type AuthService struct {
	stores    repository.StoreRepository
	products  repository.ProductRepository
	settings  repository.SettingsRepository
	registrar repository.RegistrationRepository
	tokens    TokenIssuer
	vendorTTL time.Duration
	adminTTL  time.Duration
}

// AuthConfig holds the token lifetimes
type AuthConfig struct {
	VendorTTL time.Duration
	AdminTTL  time.Duration
}

func NewAuthService(
	stores repository.StoreRepository,
	products repository.ProductRepository,
	settings repository.SettingsRepository,
	registrar repository.RegistrationRepository,
	tokens TokenIssuer,
	cfg AuthConfig,
) *AuthService {
	return &AuthService{
		stores:    stores,
		products:  products,
		settings:  settings,
		registrar: registrar,
		tokens:    tokens,
		vendorTTL: cfg.VendorTTL,
		adminTTL:  cfg.AdminTTL,
	}
}

// VendorLogin checks the store credential and returns a session with every owned product
func (s *AuthService) VendorLogin(ctx context.Context, whatsapp, password string) (*VendorSession, error) {
	log := logger.FromContext(ctx)
	prometheus.LoginCounter.WithLabelValues(jwtutil.RoleVendor).Inc()

	store, err := s.stores.FindByWhatsApp(ctx, strings.TrimSpace(whatsapp))
	if errors.Is(err, repository.ErrNotFound) {
		prometheus.RecordAuthError("unknown_vendor")
		return nil, apperror.NotFound("user not found")
	}
	if err != nil {
		return nil, apperror.Internal("failed to load store", err)
	}
	if store.IsSuspended {
		prometheus.RecordAuthError("suspended")
		return nil, apperror.Forbidden("account suspended")
	}
	if !CheckPassword(password, store.PasswordHash) {
		prometheus.RecordAuthError("bad_password")
		return nil, apperror.Unauthorized("incorrect password")
	}

	token, err := s.tokens.GenerateVendorToken(store.ID.String(), store.OwnerName, s.vendorTTL)
	if err != nil {
		return nil, apperror.Internal("failed to issue token", err)
	}

	products, err := s.products.ListByStore(ctx, store.ID, false)
	if err != nil {
		return nil, apperror.Internal("failed to load products", err)
	}

	log.Info("Vendor logged in", zap.String("store_id", store.ID.String()))
	return &VendorSession{Token: token, Store: store, Products: products}, nil
}

// Register redeems an activation code and creates the store. The issued token has no expiry.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*Registration, error) {
	log := logger.FromContext(ctx)

	in := repository.RegistrationInput{
		Name:      strings.TrimSpace(req.Name),
		WhatsApp:  strings.TrimSpace(req.WhatsApp),
		OwnerName: strings.TrimSpace(req.OwnerName),
		Code:      strings.TrimSpace(req.Code),
	}
	switch {
	case in.Name == "":
		return nil, apperror.Validation("store name is required")
	case in.WhatsApp == "":
		return nil, apperror.Validation("whatsapp number is required")
	case in.Code == "":
		return nil, apperror.Validation("activation code is required")
	case req.Password == "":
		return nil, apperror.Validation("password is required")
	}

	hash, err := hashForStorage(req.Password)
	if err != nil {
		return nil, err
	}
	in.PasswordHash = hash

	store, err := s.registrar.Register(ctx, in)
	switch {
	case errors.Is(err, repository.ErrInvalidCode):
		prometheus.RecordAuthError("invalid_code")
		return nil, apperror.Validation("activation code invalid or already used")
	case errors.Is(err, repository.ErrWhatsAppInUse):
		prometheus.RecordAuthError("whatsapp_in_use")
		return nil, apperror.Validation("whatsapp number already in use")
	case err != nil:
		return nil, apperror.Internal("registration failed", err)
	}

	token, err := s.tokens.GenerateVendorToken(store.ID.String(), store.OwnerName, 0)
	if err != nil {
		return nil, apperror.Internal("failed to issue token", err)
	}

	prometheus.RegisterCounter.Inc()
	log.Info("Store registered",
		zap.String("store_id", store.ID.String()),
		zap.String("slug", store.Slug))
	return &Registration{Store: store, Token: token}, nil
}

// AdminLogin checks the superadmin password against the stored hash
func (s *AuthService) AdminLogin(ctx context.Context, password string) (string, error) {
	prometheus.LoginCounter.WithLabelValues(jwtutil.RoleSuperAdmin).Inc()

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return "", apperror.Internal("failed to load platform settings", err)
	}
	if settings.SuperAdminHash == "" {
		return "", apperror.Internal("superadmin credential not configured", nil)
	}
	if !CheckPassword(password, settings.SuperAdminHash) {
		prometheus.RecordAuthError("bad_admin_password")
		return "", apperror.Unauthorized("invalid credentials")
	}

	token, err := s.tokens.GenerateSuperAdminToken(s.adminTTL)
	if err != nil {
		return "", apperror.Internal("failed to issue token", err)
	}
	logger.FromContext(ctx).Info("Superadmin logged in")
	return token, nil
}
