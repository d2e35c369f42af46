package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unique index names, matched against Postgres constraint violations
const (
	StoreSlugIndex     = "idx_stores_slug"
	StoreWhatsAppIndex = "idx_stores_whatsapp"
)

// Store is a vendor tenant. Its slug and WhatsApp number are unique platform-wide.
type Store struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name           string    `json:"name" gorm:"type:varchar(150);not null"`
	Slug           string    `json:"slug" gorm:"type:varchar(200);not null;uniqueIndex:idx_stores_slug"`
	OwnerName      string    `json:"owner_name" gorm:"type:varchar(150)"`
	WhatsApp       string    `json:"whatsapp" gorm:"column:whatsapp;type:varchar(32);not null;uniqueIndex:idx_stores_whatsapp"`
	PasswordHash   string    `json:"-" gorm:"type:varchar(255);not null"`
	LogoURL        string    `json:"logo_url" gorm:"type:text"`
	Description    string    `json:"description" gorm:"type:text"`
	IsPublicMarket bool      `json:"is_public_market" gorm:"not null"`
	IsSuspended    bool      `json:"is_suspended" gorm:"not null"`
	ProvinceID     *uint     `json:"province_id" gorm:"index"`
	WhatsAppClicks int64     `json:"whatsapp_clicks" gorm:"column:whatsapp_clicks;not null;default:0"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`

	// Relations
	Province *Province `json:"-" gorm:"foreignKey:ProvinceID;constraint:OnDelete:SET NULL"`
	Products []Product `json:"-" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a random id when none was set
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// StoreSettings is the vendor-editable profile. Applying it overwrites every field.
type StoreSettings struct {
	Name           string
	Description    string
	LogoURL        string
	WhatsApp       string
	IsPublicMarket bool
	ProvinceID     *uint
}

// StoreSummary is the public directory projection of a store
type StoreSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	LogoURL     string    `json:"logo_url"`
	Description string    `json:"description"`
	WhatsApp    string    `json:"whatsapp"`
}
