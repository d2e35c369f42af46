package repository

import (
	"context"
	"errors"

	"marketplace-service/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).Where(query, arg).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *storeRepository) FindBySlug(ctx context.Context, slug string) (*model.Store, error) {
	return r.findOne(ctx, "slug = ?", slug)
}

func (r *storeRepository) FindByWhatsApp(ctx context.Context, whatsapp string) (*model.Store, error) {
	return r.findOne(ctx, "whatsapp = ?", whatsapp)
}

func (r *storeRepository) ListDirectory(ctx context.Context) ([]model.StoreSummary, error) {
	stores := []model.StoreSummary{}
	err := r.db.WithContext(ctx).Model(&model.Store{}).
		Select("id, name, logo_url, description, whatsapp").
		Where("is_suspended = ?", false).
		Order("created_at DESC").
		Scan(&stores).Error
	return stores, err
}

func (r *storeRepository) ListAll(ctx context.Context) ([]model.Store, error) {
	stores := []model.Store{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&stores).Error
	return stores, err
}

func (r *storeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Store{}).Count(&count).Error
	return count, err
}

func (r *storeRepository) IncrementClicks(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Store{}).
		Where("id = ?", id).
		UpdateColumn("whatsapp_clicks", gorm.Expr("whatsapp_clicks + 1")).Error
}

func (r *storeRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings model.StoreSettings) (*model.Store, error) {
	var store model.Store
	result := r.db.WithContext(ctx).Model(&store).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":             settings.Name,
			"description":      settings.Description,
			"logo_url":         settings.LogoURL,
			"whatsapp":         settings.WhatsApp,
			"is_public_market": settings.IsPublicMarket,
			"province_id":      settings.ProvinceID,
		})
	if err := translateWriteError(result.Error); err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &store, nil
}

func (r *storeRepository) SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error {
	return r.updateColumn(ctx, id, "is_suspended", suspended)
}

func (r *storeRepository) ToggleSuspended(ctx context.Context, id uuid.UUID) (bool, error) {
	var out struct {
		IsSuspended bool
	}
	result := r.db.WithContext(ctx).
		Raw("UPDATE stores SET is_suspended = NOT is_suspended WHERE id = ? RETURNING is_suspended", id).
		Scan(&out)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, ErrNotFound
	}
	return out.IsSuspended, nil
}

func (r *storeRepository) SetWhatsApp(ctx context.Context, id uuid.UUID, whatsapp string) error {
	return r.updateColumn(ctx, id, "whatsapp", whatsapp)
}

func (r *storeRepository) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.updateColumn(ctx, id, "password_hash", hash)
}

func (r *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// products go with the store through ON DELETE CASCADE
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Store{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *storeRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Store{}).Where("id = ?", id).UpdateColumn(column, value)
	if err := translateWriteError(result.Error); err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func translateWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err, model.StoreWhatsAppIndex):
		return ErrWhatsAppInUse
	case isForeignKeyViolation(err):
		return ErrUnknownRef
	default:
		return err
	}
}
