package service

import (
	"context"
	"errors"
	"strings"

	"marketplace-service/internal/apperror"
	"marketplace-service/internal/model"
	"marketplace-service/internal/repository"
	"marketplace-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductInput is the product form. Every field is optional on update. imageUrl is the
// legacy name for images and wins only when images is absent or empty while imageUrl is not.
type ProductInput struct {
	Name      *string          `json:"name"`
	PriceCUP  model.Amount     `json:"priceCup"`
	PriceUSD  model.Amount     `json:"priceUsd"`
	Category  *string          `json:"category"`
	Images    *model.ImageList `json:"images"`
	ImageURL  *model.ImageList `json:"imageUrl"`
	Stock     model.Quantity   `json:"stock"`
	IsVisible *bool            `json:"is_visible"`
}

func (in ProductInput) images() *model.ImageList {
	switch {
	case in.Images == nil:
		return in.ImageURL
	case len(*in.Images) == 0 && in.ImageURL != nil && len(*in.ImageURL) > 0:
		return in.ImageURL
	default:
		return in.Images
	}
}

func (in ProductInput) validate() error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return apperror.Validation("product name must not be empty")
	}
	if in.PriceCUP.Valid && in.PriceCUP.Decimal.IsNegative() {
		return apperror.Validation("price_cup must not be negative")
	}
	if in.PriceUSD.Valid && in.PriceUSD.Decimal.IsNegative() {
		return apperror.Validation("price_usd must not be negative")
	}
	if in.Stock.Valid && in.Stock.Int < 0 {
		return apperror.Validation("stock must not be negative")
	}
	return nil
}

// Patch converts the form into a partial update
func (in ProductInput) Patch() model.ProductPatch {
	patch := model.ProductPatch{
		Category:  in.Category,
		IsVisible: in.IsVisible,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		patch.Name = &name
	}
	if in.PriceCUP.Valid {
		v := in.PriceCUP.Decimal
		patch.PriceCUP = &v
	}
	if in.PriceUSD.Valid {
		v := in.PriceUSD.Decimal
		patch.PriceUSD = &v
	}
	if images := in.images(); images != nil {
		patch.Images = []string(*images)
	}
	if in.Stock.Valid {
		v := in.Stock.Int
		patch.Stock = &v
	}
	return patch
}

// ProductService manages a vendor's own products. Every mutation is scoped to the
// caller's store at the storage layer.
type ProductService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List returns all of the store's products, hidden ones included
func (s *ProductService) List(ctx context.Context, storeID uuid.UUID) ([]model.Product, error) {
	products, err := s.products.ListByStore(ctx, storeID, false)
	if err != nil {
		return nil, apperror.Internal("failed to list products", err)
	}
	return products, nil
}

// Create adds a product. Missing prices default to zero and visibility defaults to true.
func (s *ProductService) Create(ctx context.Context, storeID uuid.UUID, in ProductInput) (*model.Product, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, apperror.Validation("product name is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	patch := in.Patch()
	product := &model.Product{
		StoreID:   storeID,
		PriceCUP:  decimal.Zero,
		PriceUSD:  decimal.Zero,
		Images:    pq.StringArray{},
		IsVisible: true,
	}
	patch.Apply(product)

	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrUnknownRef) {
			return nil, apperror.Forbidden("store no longer exists")
		}
		return nil, apperror.Internal("failed to create product", err)
	}

	logger.FromContext(ctx).Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("store_id", storeID.String()))
	return product, nil
}

// Update applies a partial update to a product the store owns
func (s *ProductService) Update(ctx context.Context, storeID uuid.UUID, id uint, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := s.products.UpdateOwned(ctx, id, storeID, in.Patch())
	if errors.Is(err, repository.ErrNotOwned) {
		return nil, apperror.Forbidden("not authorized")
	}
	if err != nil {
		return nil, apperror.Internal("failed to update product", err)
	}
	return product, nil
}

// Delete removes a product the store owns
func (s *ProductService) Delete(ctx context.Context, storeID uuid.UUID, id uint) error {
	err := s.products.DeleteOwned(ctx, id, storeID)
	if errors.Is(err, repository.ErrNotOwned) {
		return apperror.Forbidden("not authorized")
	}
	if err != nil {
		return apperror.Internal("failed to delete product", err)
	}

	logger.FromContext(ctx).Info("Product deleted",
		zap.Uint("product_id", id),
		zap.String("store_id", storeID.String()))
	return nil
}
