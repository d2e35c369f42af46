package repository

import (
	"context"
	"errors"

	"marketplace-service/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrNotOwned      = errors.New("product does not exist for this store")
	ErrInvalidCode   = errors.New("activation code invalid or already used")
	ErrWhatsAppInUse = errors.New("whatsapp number already in use")
	ErrCodeExists    = errors.New("activation code already exists")
	ErrSlugExhausted = errors.New("could not allocate a unique slug")
	ErrUnknownRef    = errors.New("referenced row does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// StoreRepository reads and mutates stores outside of registration
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error)
	FindBySlug(ctx context.Context, slug string) (*model.Store, error)
	FindByWhatsApp(ctx context.Context, whatsapp string) (*model.Store, error)
	ListDirectory(ctx context.Context) ([]model.StoreSummary, error)
	ListAll(ctx context.Context) ([]model.Store, error)
	Count(ctx context.Context) (int64, error)
	IncrementClicks(ctx context.Context, id uuid.UUID) error
	UpdateSettings(ctx context.Context, id uuid.UUID, settings model.StoreSettings) (*model.Store, error)
	SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error
	ToggleSuspended(ctx context.Context, id uuid.UUID) (bool, error)
	SetWhatsApp(ctx context.Context, id uuid.UUID, whatsapp string) error
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository scopes every mutation to the owning store
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	ListByStore(ctx context.Context, storeID uuid.UUID, visibleOnly bool) ([]model.Product, error)
	UpdateOwned(ctx context.Context, id uint, storeID uuid.UUID, patch model.ProductPatch) (*model.Product, error)
	DeleteOwned(ctx context.Context, id uint, storeID uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// CatalogRepository serves the anonymous cross-store views
type CatalogRepository interface {
	ListPublic(ctx context.Context) ([]model.CatalogEntry, error)
	ListPublicByProvince(ctx context.Context, provinceID uint) ([]model.CatalogEntry, error)
	ListProvinces(ctx context.Context) ([]model.Province, error)
	SeedProvinces(ctx context.Context, names []string) (int, error)
}

// LicenseRepository manages activation codes
type LicenseRepository interface {
	Create(ctx context.Context, code *model.ActivationCode) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]model.ActivationCode, error)
	Count(ctx context.Context) (int64, error)
}

// SettingsRepository persists PlatformSettings
type SettingsRepository interface {
	Load(ctx context.Context) (*model.PlatformSettings, error)
	EnsureDefaults(ctx context.Context, defaults model.PlatformSettings) error
	SetSuperAdminHash(ctx context.Context, hash string) error
	SetSupportWhatsApp(ctx context.Context, whatsapp string) error
}

// RegistrationInput is a validated registration with an already hashed password
type RegistrationInput struct {
	Name         string
	WhatsApp     string
	OwnerName    string
	Code         string
	PasswordHash string
}

// RegistrationRepository redeems an activation code and creates the store atomically
type RegistrationRepository interface {
	Register(ctx context.Context, in RegistrationInput) (*model.Store, error)
}

func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// isUniqueViolation reports a unique violation, optionally on a specific index
func isUniqueViolation(err error, index string) bool {
	code, constraint := pgErrorCode(err)
	return code == pgUniqueViolation && (index == "" || constraint == index)
}

func isForeignKeyViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgForeignKeyViolation
}
