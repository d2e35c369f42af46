package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"marketplace-service/internal/apperror"
	"marketplace-service/internal/model"
	"marketplace-service/internal/repository"
	"marketplace-service/pkg/logger"
	"marketplace-service/prometheus"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	codePrefix        = "PRO-"
	codeLength        = 6
	codeAlphabet      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	minAdminPassword  = 6
	maxCodeGeneration = 5
)

// Stats are the dashboard counters
type Stats struct {
	TotalStores       int64 `json:"total_stores"`
	TotalProducts     int64 `json:"total_products"`
	AvailableLicenses int64 `json:"available_licenses"`
}

// Dashboard is the superadmin overview
type Dashboard struct {
	Stats  Stats                  `json:"stats"`
	Stores []model.Store          `json:"stores"`
	Codes  []model.ActivationCode `json:"codes"`
}

// BootstrapConfig holds the values seeded on first start
type BootstrapConfig struct {
	AdminPassword string
	SupportPhone  string
	Provinces     []string
}

// AdminService implements the superadmin operations
type AdminService struct {
	stores   repository.StoreRepository
	products repository.ProductRepository
	licenses repository.LicenseRepository
	settings repository.SettingsRepository
	catalog  repository.CatalogRepository
}

func NewAdminService(
	stores repository.StoreRepository,
	products repository.ProductRepository,
	licenses repository.LicenseRepository,
	settings repository.SettingsRepository,
	catalog repository.CatalogRepository,
) *AdminService {
	return &AdminService{
		stores:   stores,
		products: products,
		licenses: licenses,
		settings: settings,
		catalog:  catalog,
	}
}

// Bootstrap seeds the default credential, support number and provinces where absent.
// Existing values are never overwritten.
func (s *AdminService) Bootstrap(ctx context.Context, cfg BootstrapConfig) error {
	log := logger.FromContext(ctx)

	hash, err := HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	err = s.settings.EnsureDefaults(ctx, model.PlatformSettings{
		SuperAdminHash:  hash,
		SupportWhatsApp: cfg.SupportPhone,
	})
	if err != nil {
		return err
	}

	added, err := s.catalog.SeedProvinces(ctx, cfg.Provinces)
	if err != nil {
		return err
	}
	log.Info("Platform defaults ensured", zap.Int("provinces_added", added))
	return nil
}

// Dashboard aggregates platform counters with full store and code listings
func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		d   Dashboard
		err error
	)
	if d.Stats.TotalStores, err = s.stores.Count(ctx); err != nil {
		return nil, apperror.Internal("failed to count stores", err)
	}
	if d.Stats.TotalProducts, err = s.products.Count(ctx); err != nil {
		return nil, apperror.Internal("failed to count products", err)
	}
	if d.Stats.AvailableLicenses, err = s.licenses.Count(ctx); err != nil {
		return nil, apperror.Internal("failed to count licenses", err)
	}
	if d.Stores, err = s.stores.ListAll(ctx); err != nil {
		return nil, apperror.Internal("failed to list stores", err)
	}
	if d.Codes, err = s.licenses.List(ctx); err != nil {
		return nil, apperror.Internal("failed to list codes", err)
	}
	return &d, nil
}

// IssueCode stores code, or a generated PRO-XXXXXX code when code is blank
func (s *AdminService) IssueCode(ctx context.Context, code string) (*model.ActivationCode, error) {
	code = strings.TrimSpace(code)
	generated := code == ""

	for attempt := 0; ; attempt++ {
		if generated {
			var err error
			if code, err = GenerateCode(); err != nil {
				return nil, apperror.Internal("failed to generate code", err)
			}
		}

		row := &model.ActivationCode{Code: code}
		err := s.licenses.Create(ctx, row)
		switch {
		case err == nil:
			prometheus.LicenseOperationCounter.WithLabelValues("issue").Inc()
			logger.FromContext(ctx).Info("Activation code issued", zap.Uint("code_id", row.ID))
			return row, nil
		case errors.Is(err, repository.ErrCodeExists) && generated && attempt < maxCodeGeneration:
			continue
		case errors.Is(err, repository.ErrCodeExists):
			return nil, apperror.Validation("code already exists")
		default:
			return nil, apperror.Internal("failed to create code", err)
		}
	}
}

// RevokeCode deletes an unredeemed code
func (s *AdminService) RevokeCode(ctx context.Context, id uint) error {
	err := s.licenses.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("code not found")
	}
	if err != nil {
		return apperror.Internal("failed to delete code", err)
	}
	prometheus.LicenseOperationCounter.WithLabelValues("revoke").Inc()
	return nil
}

// SetSuspension sets the suspension flag, or flips it when suspended is nil. It returns
// the resulting state.
func (s *AdminService) SetSuspension(ctx context.Context, storeID uuid.UUID, suspended *bool) (bool, error) {
	var (
		state bool
		err   error
	)
	if suspended == nil {
		state, err = s.stores.ToggleSuspended(ctx, storeID)
	} else {
		state = *suspended
		err = s.stores.SetSuspended(ctx, storeID, state)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return false, apperror.NotFound("store not found")
	}
	if err != nil {
		return false, apperror.Internal("failed to update store status", err)
	}

	action := "reactivate"
	if state {
		action = "suspend"
	}
	prometheus.ModerationCounter.WithLabelValues(action).Inc()
	logger.FromContext(ctx).Info("Store status changed",
		zap.String("store_id", storeID.String()),
		zap.Bool("is_suspended", state))
	return state, nil
}

// DeleteStore removes a store and, by cascade, its products
func (s *AdminService) DeleteStore(ctx context.Context, storeID uuid.UUID) error {
	err := s.stores.Delete(ctx, storeID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("store not found")
	}
	if err != nil {
		return apperror.Internal("failed to delete store", err)
	}
	prometheus.ModerationCounter.WithLabelValues("delete").Inc()
	logger.FromContext(ctx).Warn("Store deleted", zap.String("store_id", storeID.String()))
	return nil
}

// SetStoreContact overwrites a store's WhatsApp number
func (s *AdminService) SetStoreContact(ctx context.Context, storeID uuid.UUID, whatsapp string) error {
	whatsapp = strings.TrimSpace(whatsapp)
	if whatsapp == "" {
		return apperror.Validation("number required")
	}
	err := s.stores.SetWhatsApp(ctx, storeID, whatsapp)
	switch {
	case errors.Is(err, repository.ErrWhatsAppInUse):
		return apperror.Validation("number in use")
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound("store not found")
	case err != nil:
		return apperror.Internal("failed to update contact", err)
	}
	prometheus.ModerationCounter.WithLabelValues("contact").Inc()
	return nil
}

// SetStorePassword replaces a store's credential without the old password
func (s *AdminService) SetStorePassword(ctx context.Context, storeID uuid.UUID, password string) error {
	if password == "" {
		return apperror.Validation("password required")
	}
	hash, err := hashForStorage(password)
	if err != nil {
		return err
	}
	err = s.stores.SetPasswordHash(ctx, storeID, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("store not found")
	}
	if err != nil {
		return apperror.Internal("failed to update password", err)
	}
	prometheus.ModerationCounter.WithLabelValues("password").Inc()
	return nil
}

// ChangePassword replaces the superadmin credential
func (s *AdminService) ChangePassword(ctx context.Context, password string) error {
	if len(password) < minAdminPassword {
		return apperror.Validation("password too short")
	}
	hash, err := hashForStorage(password)
	if err != nil {
		return err
	}
	if err := s.settings.SetSuperAdminHash(ctx, hash); err != nil {
		return apperror.Internal("failed to save password", err)
	}
	logger.FromContext(ctx).Info("Superadmin password changed")
	return nil
}

// SetSupportContact replaces the platform support number
func (s *AdminService) SetSupportContact(ctx context.Context, whatsapp string) error {
	whatsapp = strings.TrimSpace(whatsapp)
	if whatsapp == "" {
		return apperror.Validation("number required")
	}
	if err := s.settings.SetSupportWhatsApp(ctx, whatsapp); err != nil {
		return apperror.Internal("failed to save contact", err)
	}
	return nil
}

// GenerateCode returns a random PRO-XXXXXX activation code
func GenerateCode() (string, error) {
	var b strings.Builder
	b.WriteString(codePrefix)
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}
