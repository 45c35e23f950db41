package wishlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts a wishlist entry; saving the same product twice is a no-op.
func (r *Repository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	line := models.WishlistLine{UserID: userID, ProductID: productID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&line).
		Error
}

// Remove deletes the entry if it exists; the affected count tells callers
// whether it did.
func (r *Repository) Remove(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistLine{})
	return res.RowsAffected, res.Error
}

// ListProducts returns the user's saved products, newest save first.
func (r *Repository) ListProducts(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN wishlist_lines wl ON wl.product_id = products.id").
		Where("wl.user_id = ?", userID).
		Order("wl.created_at DESC").
		Find(&rows).
		Error
	return rows, err
}
