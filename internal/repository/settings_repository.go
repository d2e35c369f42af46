package repository

import (
	"context"

	"marketplace-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Load reads the known keys; missing keys leave their field empty
func (r *settingsRepository) Load(ctx context.Context) (*model.PlatformSettings, error) {
	var rows []model.AdminConfig
	err := r.db.WithContext(ctx).
		Where("key IN ?", []string{model.SettingSuperAdminHash, model.SettingSupportWhatsApp}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	settings := &model.PlatformSettings{}
	for _, row := range rows {
		switch row.Key {
		case model.SettingSuperAdminHash:
			settings.SuperAdminHash = row.Value
		case model.SettingSupportWhatsApp:
			settings.SupportWhatsApp = row.Value
		}
	}
	return settings, nil
}

// EnsureDefaults inserts each default only where the key is absent
func (r *settingsRepository) EnsureDefaults(ctx context.Context, defaults model.PlatformSettings) error {
	rows := []model.AdminConfig{
		{Key: model.SettingSuperAdminHash, Value: defaults.SuperAdminHash},
		{Key: model.SettingSupportWhatsApp, Value: defaults.SupportWhatsApp},
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
		Create(&rows).Error
}

func (r *settingsRepository) SetSuperAdminHash(ctx context.Context, hash string) error {
	return r.upsert(ctx, model.SettingSuperAdminHash, hash)
}

func (r *settingsRepository) SetSupportWhatsApp(ctx context.Context, whatsapp string) error {
	return r.upsert(ctx, model.SettingSupportWhatsApp, whatsapp)
}

func (r *settingsRepository) upsert(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&model.AdminConfig{Key: key, Value: value}).Error
}
