package service

import (
	"context"
	"time"

	"marketplace-service/internal/apperror"
	"marketplace-service/internal/model"
	"marketplace-service/internal/repository"
	"marketplace-service/prometheus"
)

// PublicConfig is what anonymous clients need to contact the platform
type PublicConfig struct {
	WhatsApp string `json:"whatsapp"`
}

// CatalogService serves the cross-store public views
type CatalogService struct {
	catalog        repository.CatalogRepository
	settings       repository.SettingsRepository
	defaultSupport string
}

func NewCatalogService(catalog repository.CatalogRepository, settings repository.SettingsRepository, defaultSupport string) *CatalogService {
	return &CatalogService{catalog: catalog, settings: settings, defaultSupport: defaultSupport}
}

// Products lists the public catalog. A nil province lists every province, stores without
// one included; a province id restricts to stores registered in that province.
func (s *CatalogService) Products(ctx context.Context, provinceID *uint) ([]model.CatalogEntry, error) {
	var (
		entries []model.CatalogEntry
		err     error
	)
	if provinceID == nil {
		defer prometheus.TrackDBOperation("catalog_all")(time.Now())
		entries, err = s.catalog.ListPublic(ctx)
	} else {
		defer prometheus.TrackDBOperation("catalog_province")(time.Now())
		entries, err = s.catalog.ListPublicByProvince(ctx, *provinceID)
	}
	if err != nil {
		return nil, apperror.Internal("failed to load the public market", err)
	}
	return entries, nil
}

func (s *CatalogService) Provinces(ctx context.Context) ([]model.Province, error) {
	provinces, err := s.catalog.ListProvinces(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to load provinces", err)
	}
	return provinces, nil
}

// PublicConfig returns the support number, falling back to the configured default
func (s *CatalogService) PublicConfig(ctx context.Context) (*PublicConfig, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to load platform settings", err)
	}
	whatsapp := settings.SupportWhatsApp
	if whatsapp == "" {
		whatsapp = s.defaultSupport
	}
	return &PublicConfig{WhatsApp: whatsapp}, nil
}
