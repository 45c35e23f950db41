package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
	"github.com/rahulvarma/bazaarly-backend/pkg/pagination"
)

// discountPercentExpr derives the ranking metric of the aggregate mode from
// stored prices. Zero-priced rows rank last instead of dividing by zero.
const discountPercentExpr = "CASE WHEN price > 0 THEN (price - final_price) / price * 100 ELSE 0 END"

// Repository wires product catalog persistence.
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

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves the full product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// ListFiltered runs the paginated mode: filters, a stored-column order, one
// offset/limit page, and a count over the same filter set.
func (r *Repository) ListFiltered(ctx context.Context, params ListParams) ([]models.Product, int64, error) {
	base := applyFilters(r.db.WithContext(ctx).Model(&models.Product{}), params.Filters)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	err := applySort(base.Session(&gorm.Session{}), params.Sort).
		Offset(params.Pagination.Offset()).
		Limit(pagination.NormalizeLimit(params.Pagination.Limit)).
		Find(&rows).
		Error
	return rows, total, err
}

// ListCapped runs the raw limit override: same filters and sort as the
// paginated mode, but only the first rows up to the limit and no count.
func (r *Repository) ListCapped(ctx context.Context, params ListParams) ([]models.Product, error) {
	qb := applyFilters(r.db.WithContext(ctx).Model(&models.Product{}), params.Filters)

	var rows []models.Product
	err := applySort(qb, params.Sort).
		Limit(pagination.NormalizeLimit(params.Pagination.Limit)).
		Find(&rows).
		Error
	return rows, err
}

func applySort(qb *gorm.DB, sort Sort) *gorm.DB {
	switch sort {
	case SortPriceAsc:
		qb = qb.Order("final_price ASC")
	case SortPriceDesc:
		qb = qb.Order("final_price DESC")
	case SortFeaturedDesc:
		qb = qb.Order("is_featured DESC").Order("created_at DESC")
	default:
		qb = qb.Order("created_at DESC")
	}
	return qb.Order("id DESC")
}

// discountRankedRow carries the product plus its derived ranking column.
type discountRankedRow struct {
	models.Product     `gorm:"embedded"`
	DiscountPercentage float64 `gorm:"column:discount_percentage"`
}

// ListDiscountRanked runs the aggregate mode: every matching row gets a
// derived discount percentage, the set is ordered by it descending and capped.
// No pagination metadata is produced for this mode.
func (r *Repository) ListDiscountRanked(ctx context.Context, filters ListFilters, limit int) ([]models.Product, []float64, error) {
	qb := applyFilters(r.db.WithContext(ctx).Model(&models.Product{}), filters).
		Select("*, " + discountPercentExpr + " AS discount_percentage").
		Order("discount_percentage DESC").
		Order("id DESC").
		Limit(pagination.NormalizeLimit(limit))

	var records []discountRankedRow
	if err := qb.Find(&records).Error; err != nil {
		return nil, nil, err
	}

	rows := make([]models.Product, 0, len(records))
	percents := make([]float64, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.Product)
		percents = append(percents, record.DiscountPercentage)
	}
	return rows, percents, nil
}

// DistinctCategories returns every category value in the catalog, sorted.
func (r *Repository) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).
		Error
	return categories, err
}

// ListFeatured returns the newest featured rows.
func (r *Repository) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Limit(pagination.NormalizeLimit(limit)).
		Find(&rows).
		Error
	return rows, err
}

// ListNewArrivals returns the most recently created rows.
func (r *Repository) ListNewArrivals(ctx context.Context, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(pagination.NormalizeLimit(limit)).
		Find(&rows).
		Error
	return rows, err
}

// ListByMerchant lists a merchant's catalog, newest first.
func (r *Repository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

func applyFilters(qb *gorm.DB, filters ListFilters) *gorm.DB {
	if filters.MinPrice != nil {
		qb = qb.Where("final_price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		qb = qb.Where("final_price <= ?", *filters.MaxPrice)
	}
	if len(filters.Categories) > 0 {
		qb = qb.Where("category IN ?", filters.Categories)
	}
	if sub := strings.TrimSpace(filters.SubCategory); sub != "" {
		qb = qb.Where("sub_category = ?", sub)
	}
	if brand := strings.TrimSpace(filters.Brand); brand != "" {
		qb = qb.Where("LOWER(brand) = ?", strings.ToLower(brand))
	}
	if filters.MinRating != nil {
		qb = qb.Where("rating >= ?", *filters.MinRating)
	}
	if filters.Featured != nil {
		qb = qb.Where("is_featured = ?", *filters.Featured)
	}
	if filters.MerchantID != nil {
		qb = qb.Where("merchant_id = ?", *filters.MerchantID)
	}
	if search := strings.TrimSpace(filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where(
			"(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(array_to_string(tags, ' ')) LIKE ?)",
			pattern, pattern, pattern, pattern,
		)
	}
	return qb
}
