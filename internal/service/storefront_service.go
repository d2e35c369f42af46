package service

import (
	"context"
	"errors"
	"strings"

	"marketplace-service/internal/apperror"
	"marketplace-service/internal/model"
	"marketplace-service/internal/repository"
	"marketplace-service/pkg/logger"
	"marketplace-service/prometheus"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Storefront is the anonymous view of one store
type Storefront struct {
	Store    *model.Store    `json:"store"`
	Products []model.Product `json:"products"`
}

// SettingsInput is the vendor profile form. Absent fields overwrite with their zero value.
type SettingsInput struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	LogoURL        string `json:"logoUrl"`
	WhatsApp       string `json:"whatsapp"`
	IsPublicMarket bool   `json:"is_public_market"`
	ProvinceID     *uint  `json:"province_id"`
}

// StorefrontService serves store pages and store profile edits
type StorefrontService struct {
	stores   repository.StoreRepository
	products repository.ProductRepository
}

func NewStorefrontService(stores repository.StoreRepository, products repository.ProductRepository) *StorefrontService {
	return &StorefrontService{stores: stores, products: products}
}

// lookup resolves an identifier as a store id when it is a canonical UUID, as a slug otherwise
func (s *StorefrontService) lookup(ctx context.Context, identifier string) (*model.Store, error) {
	if len(identifier) == 36 {
		if id, err := uuid.Parse(identifier); err == nil {
			return s.stores.FindByID(ctx, id)
		}
	}
	return s.stores.FindBySlug(ctx, identifier)
}

// Storefront returns a store with its visible products and counts the view
func (s *StorefrontService) Storefront(ctx context.Context, identifier string) (*Storefront, error) {
	store, err := s.lookup(ctx, strings.TrimSpace(identifier))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("store not found")
	}
	if err != nil {
		return nil, apperror.Internal("failed to load store", err)
	}
	if store.IsSuspended {
		return nil, apperror.Forbidden("store suspended")
	}

	products, err := s.products.ListByStore(ctx, store.ID, true)
	if err != nil {
		return nil, apperror.Internal("failed to load products", err)
	}

	if err := s.stores.IncrementClicks(ctx, store.ID); err != nil {
		return nil, apperror.Internal("failed to record view", err)
	}
	store.WhatsAppClicks++
	prometheus.StorefrontViewCounter.Inc()

	return &Storefront{Store: store, Products: products}, nil
}

// Directory lists non-suspended stores, newest first
func (s *StorefrontService) Directory(ctx context.Context) ([]model.StoreSummary, error) {
	stores, err := s.stores.ListDirectory(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list stores", err)
	}
	return stores, nil
}

// UpdateSettings overwrites the caller's store profile
func (s *StorefrontService) UpdateSettings(ctx context.Context, storeID uuid.UUID, in SettingsInput) (*model.Store, error) {
	settings := model.StoreSettings{
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		LogoURL:        in.LogoURL,
		WhatsApp:       strings.TrimSpace(in.WhatsApp),
		IsPublicMarket: in.IsPublicMarket,
		ProvinceID:     in.ProvinceID,
	}
	if settings.Name == "" {
		return nil, apperror.Validation("store name is required")
	}
	if settings.WhatsApp == "" {
		return nil, apperror.Validation("whatsapp number is required")
	}

	store, err := s.stores.UpdateSettings(ctx, storeID, settings)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperror.NotFound("store not found")
	case errors.Is(err, repository.ErrWhatsAppInUse):
		return nil, apperror.Validation("number in use")
	case errors.Is(err, repository.ErrUnknownRef):
		return nil, apperror.Validation("unknown province")
	case err != nil:
		return nil, apperror.Internal("failed to update settings", err)
	}

	logger.FromContext(ctx).Info("Store settings updated", zap.String("store_id", storeID.String()))
	return store, nil
}
