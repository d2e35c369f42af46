package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is owned by exactly one store and is only mutable through that store
type Product struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	StoreID   uuid.UUID       `json:"store_id" gorm:"type:uuid;not null;index"`
	Name      string          `json:"name" gorm:"type:varchar(255);not null"`
	PriceCUP  decimal.Decimal `json:"price_cup" gorm:"column:price_cup;type:numeric(14,2);not null"`
	PriceUSD  decimal.Decimal `json:"price_usd" gorm:"column:price_usd;type:numeric(14,2);not null"`
	Category  string          `json:"category" gorm:"type:varchar(100)"`
	Images    pq.StringArray  `json:"images" gorm:"type:text[];not null"`
	Stock     int             `json:"stock" gorm:"not null"`
	IsVisible bool            `json:"is_visible" gorm:"not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"index"`
}

// MarshalJSON adds image_url next to images for clients that still read the legacy field
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		ImageURL string `json:"image_url"`
	}{plain(p), legacyImageField(p.Images)})
}

// BeforeCreate keeps the image column non-null
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Images == nil {
		p.Images = pq.StringArray{}
	}
	return nil
}

// ProductPatch carries a partial update; nil fields keep their stored value
type ProductPatch struct {
	Name      *string
	PriceCUP  *decimal.Decimal
	PriceUSD  *decimal.Decimal
	Category  *string
	Images    []string
	Stock     *int
	IsVisible *bool
}

// Empty reports whether the patch changes nothing
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.PriceCUP == nil && p.PriceUSD == nil && p.Category == nil &&
		p.Images == nil && p.Stock == nil && p.IsVisible == nil
}

// Columns returns the column assignments for the fields present in the patch
func (p ProductPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.PriceCUP != nil {
		cols["price_cup"] = *p.PriceCUP
	}
	if p.PriceUSD != nil {
		cols["price_usd"] = *p.PriceUSD
	}
	if p.Category != nil {
		cols["category"] = *p.Category
	}
	if p.Images != nil {
		cols["images"] = pq.StringArray(p.Images)
	}
	if p.Stock != nil {
		cols["stock"] = *p.Stock
	}
	if p.IsVisible != nil {
		cols["is_visible"] = *p.IsVisible
	}
	return cols
}

// Apply copies the present fields onto a product
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.PriceCUP != nil {
		product.PriceCUP = *p.PriceCUP
	}
	if p.PriceUSD != nil {
		product.PriceUSD = *p.PriceUSD
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Images != nil {
		product.Images = pq.StringArray(p.Images)
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.IsVisible != nil {
		product.IsVisible = *p.IsVisible
	}
}

// CatalogEntry is one row of the cross-store public catalog
type CatalogEntry struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	PriceCUP      decimal.Decimal `json:"price_cup" gorm:"column:price_cup"`
	PriceUSD      decimal.Decimal `json:"price_usd" gorm:"column:price_usd"`
	Images        pq.StringArray  `json:"images" gorm:"type:text[]"`
	StoreName     string          `json:"store_name"`
	StoreWhatsApp string          `json:"store_whatsapp" gorm:"column:store_whatsapp"`
	StoreSlug     string          `json:"store_slug" gorm:"column:store_slug"`
	StoreProvince *string         `json:"store_province" gorm:"column:store_province"`
}

func (e CatalogEntry) MarshalJSON() ([]byte, error) {
	type plain CatalogEntry
	return json.Marshal(struct {
		plain
		ImageURL string `json:"image_url"`
	}{plain(e), legacyImageField(e.Images)})
}
