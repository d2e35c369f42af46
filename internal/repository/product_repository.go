package repository

import (
	"context"
	"errors"

	"marketplace-service/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	err := r.db.WithContext(ctx).Create(product).Error
	if isForeignKeyViolation(err) {
		return ErrUnknownRef
	}
	return err
}

func (r *productRepository) ListByStore(ctx context.Context, storeID uuid.UUID, visibleOnly bool) ([]model.Product, error) {
	products := []model.Product{}
	query := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	if visibleOnly {
		query = query.Where("is_visible = ?", true)
	}
	err := query.Order("created_at DESC").Order("id DESC").Find(&products).Error
	return products, err
}

// UpdateOwned applies the patch in one statement whose predicate carries the ownership
// check, so a product owned by another store is never touched.
func (r *productRepository) UpdateOwned(ctx context.Context, id uint, storeID uuid.UUID, patch model.ProductPatch) (*model.Product, error) {
	var product model.Product
	db := r.db.WithContext(ctx)

	if patch.Empty() {
		err := db.Where("id = ? AND store_id = ?", id, storeID).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotOwned
		}
		if err != nil {
			return nil, err
		}
		return &product, nil
	}

	result := db.Model(&product).
		Clauses(clause.Returning{}).
		Where("id = ? AND store_id = ?", id, storeID).
		Updates(patch.Columns())
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotOwned
	}
	return &product, nil
}

func (r *productRepository) DeleteOwned(ctx context.Context, id uint, storeID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND store_id = ?", id, storeID).Delete(&model.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotOwned
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}
