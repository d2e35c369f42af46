package repository

import (
	"context"
	"errors"
	"math/rand"

	"marketplace-service/internal/model"
	"marketplace-service/pkg/slug"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxSlugAttempts = 8
	slugSavepoint   = "store_slug"
)

type registrationRepository struct {
	db     *gorm.DB
	suffix func() int
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{
		db:     db,
		suffix: func() int { return rand.Intn(1000) },
	}
}

// Register redeems the code and creates the store in one transaction. Any failure rolls
// back both, so a consumed code always has a store and vice versa.
func (r *registrationRepository) Register(ctx context.Context, in RegistrationInput) (*model.Store, error) {
	var created *model.Store

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var code model.ActivationCode
		// row lock: a concurrent redemption of the same code waits, then finds it gone
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("code = ?", in.Code).
			First(&code).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		if err != nil {
			return err
		}

		store, err := r.insertStore(tx, in)
		if err != nil {
			return err
		}

		result := tx.Delete(&model.ActivationCode{}, code.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return ErrInvalidCode
		}

		created = store
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// insertStore tries the base slug, then random suffixes. A slug collision only rolls
// back to the savepoint so the surrounding transaction stays usable.
func (r *registrationRepository) insertStore(tx *gorm.DB, in RegistrationInput) (*model.Store, error) {
	base := slug.Make(in.Name)
	candidate := base

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		store := &model.Store{
			Name:         in.Name,
			Slug:         candidate,
			WhatsApp:     in.WhatsApp,
			OwnerName:    in.OwnerName,
			PasswordHash: in.PasswordHash,
		}

		if err := tx.SavePoint(slugSavepoint).Error; err != nil {
			return nil, err
		}
		err := tx.Create(store).Error
		switch {
		case err == nil:
			return store, nil
		case isUniqueViolation(err, model.StoreSlugIndex):
			if rbErr := tx.RollbackTo(slugSavepoint).Error; rbErr != nil {
				return nil, rbErr
			}
			candidate = slug.WithSuffix(base, r.suffix())
		case isUniqueViolation(err, model.StoreWhatsAppIndex):
			return nil, ErrWhatsAppInUse
		default:
			return nil, err
		}
	}

	return nil, ErrSlugExhausted
}
