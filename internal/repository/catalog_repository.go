package repository

import (
	"context"

	"marketplace-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const catalogColumns = `
	p.id, p.name, p.price_cup, p.price_usd, p.images,
	s.name AS store_name, s.whatsapp AS store_whatsapp, s.slug AS store_slug,
	prov.name AS store_province`

const catalogVisibility = `
	s.is_public_market = TRUE
	AND s.is_suspended = FALSE
	AND p.is_visible = TRUE`

// The global listing keeps stores without a province (LEFT JOIN); the province listing
// requires one (INNER JOIN). The two paths are intentionally separate queries.
var (
	publicCatalogQuery = `SELECT` + catalogColumns + `
	FROM products p
	JOIN stores s ON p.store_id = s.id
	LEFT JOIN provinces prov ON s.province_id = prov.id
	WHERE` + catalogVisibility + `
	ORDER BY p.id DESC`

	provinceCatalogQuery = `SELECT` + catalogColumns + `
	FROM products p
	JOIN stores s ON p.store_id = s.id
	JOIN provinces prov ON s.province_id = prov.id
	WHERE` + catalogVisibility + `
	AND s.province_id = ?
	ORDER BY p.id DESC`
)

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListPublic(ctx context.Context) ([]model.CatalogEntry, error) {
	entries := []model.CatalogEntry{}
	err := r.db.WithContext(ctx).Raw(publicCatalogQuery).Scan(&entries).Error
	return entries, err
}

func (r *catalogRepository) ListPublicByProvince(ctx context.Context, provinceID uint) ([]model.CatalogEntry, error) {
	entries := []model.CatalogEntry{}
	err := r.db.WithContext(ctx).Raw(provinceCatalogQuery, provinceID).Scan(&entries).Error
	return entries, err
}

func (r *catalogRepository) ListProvinces(ctx context.Context) ([]model.Province, error) {
	provinces := []model.Province{}
	err := r.db.WithContext(ctx).Order("name ASC").Find(&provinces).Error
	return provinces, err
}

// SeedProvinces inserts the names missing from the table and returns how many were added
func (r *catalogRepository) SeedProvinces(ctx context.Context, names []string) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}
	rows := make([]model.Province, 0, len(names))
	for _, name := range names {
		rows = append(rows, model.Province{Name: name})
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows)
	return int(result.RowsAffected), result.Error
}
