package merchants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
)

// Repository provides merchant persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a single merchant row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error) {
	var merchant models.Merchant
	if err := r.db.WithContext(ctx).First(&merchant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &merchant, nil
}

// FindByIDs loads all merchants matching the provided set in one query.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Merchant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Merchant
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).
		Error
	return rows, err
}

// AdjustProductCount applies a best-effort delta to the merchant's product
// counter. The counter never goes below zero.
func (r *Repository) AdjustProductCount(ctx context.Context, merchantID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Merchant{}).
		Where("id = ?", merchantID).
		UpdateColumn("product_count", gorm.Expr("GREATEST(product_count + ?, 0)", delta)).
		Error
}
