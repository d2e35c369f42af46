package repository

import (
	"context"

	"marketplace-service/internal/model"

	"gorm.io/gorm"
)

type licenseRepository struct {
	db *gorm.DB
}

func NewLicenseRepository(db *gorm.DB) LicenseRepository {
	return &licenseRepository{db: db}
}

func (r *licenseRepository) Create(ctx context.Context, code *model.ActivationCode) error {
	err := r.db.WithContext(ctx).Create(code).Error
	if isUniqueViolation(err, "") {
		return ErrCodeExists
	}
	return err
}

func (r *licenseRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.ActivationCode{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *licenseRepository) List(ctx context.Context) ([]model.ActivationCode, error) {
	codes := []model.ActivationCode{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&codes).Error
	return codes, err
}

func (r *licenseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ActivationCode{}).Count(&count).Error
	return count, err
}
