package recommend

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
)

// rankExpr orders discounted candidates by their effective discount share.
const rankExpr = "CASE WHEN price > 0 THEN (price - final_price) / price ELSE 0 END DESC"

// minTopRating is the floor of the rating fallback stage.
const minTopRating = 4.0

// Repository runs the candidate queries behind the recommendation engine.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SampleByCategoryOrSub draws a random sample of products sharing the
// source's category or sub-category.
func (r *Repository) SampleByCategoryOrSub(ctx context.Context, category, subCategory string, excludeIDs []uuid.UUID, limit int) ([]models.Product, error) {
	qb := r.db.WithContext(ctx).Model(&models.Product{})

	sub := strings.TrimSpace(subCategory)
	if sub != "" {
		qb = qb.Where("category = ? OR sub_category = ?", category, sub)
	} else {
		qb = qb.Where("category = ?", category)
	}

	var rows []models.Product
	err := excludeFrom(qb, excludeIDs).
		Order("random()").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// ListByBrand returns same-brand products, newest first.
func (r *Repository) ListByBrand(ctx context.Context, brand string, excludeIDs []uuid.UUID, limit int) ([]models.Product, error) {
	if strings.TrimSpace(brand) == "" {
		return nil, nil
	}
	var rows []models.Product
	err := excludeFrom(r.db.WithContext(ctx).Model(&models.Product{}), excludeIDs).
		Where("LOWER(brand) = ?", strings.ToLower(strings.TrimSpace(brand))).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// WishlistDiscounted returns the user's discounted wishlist products, best
// effective discount first.
func (r *Repository) WishlistDiscounted(ctx context.Context, userID uuid.UUID, excludeIDs []uuid.UUID, limit int) ([]models.Product, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN wishlist_lines wl ON wl.product_id = products.id").
		Where("wl.user_id = ?", userID).
		Where("discount > 0")

	var rows []models.Product
	err := excludeFrom(qb, excludeIDs).
		Order(rankExpr).
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// ListDiscounted returns discounted products across the catalog, best
// effective discount first.
func (r *Repository) ListDiscounted(ctx context.Context, excludeIDs []uuid.UUID, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := excludeFrom(r.db.WithContext(ctx).Model(&models.Product{}), excludeIDs).
		Where("discount > 0").
		Order(rankExpr).
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// ListTopRated returns well-reviewed products, best first.
func (r *Repository) ListTopRated(ctx context.Context, excludeIDs []uuid.UUID, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := excludeFrom(r.db.WithContext(ctx).Model(&models.Product{}), excludeIDs).
		Where("rating >= ?", minTopRating).
		Order("rating DESC").
		Order("reviews_count DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

func excludeFrom(qb *gorm.DB, excludeIDs []uuid.UUID) *gorm.DB {
	if len(excludeIDs) == 0 {
		return qb
	}
	return qb.Where("products.id NOT IN ?", excludeIDs)
}
