package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulvarma/bazaarly-backend/internal/merchants"
	"github.com/rahulvarma/bazaarly-backend/pkg/config"
	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
	pkgerrors "github.com/rahulvarma/bazaarly-backend/pkg/errors"
	"github.com/rahulvarma/bazaarly-backend/pkg/logger"
	"github.com/rahulvarma/bazaarly-backend/pkg/pagination"
	"github.com/rahulvarma/bazaarly-backend/pkg/redis"
)

const categoriesCacheKey = "categories"

// Service exposes the catalog read surface.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Search(ctx context.Context, query string, p pagination.Params) (*ListResult, error)
	Categories(ctx context.Context) ([]string, error)
	Featured(ctx context.Context) ([]*ProductDTO, error)
	NewArrivals(ctx context.Context) ([]*ProductDTO, error)
	ByCategory(ctx context.Context, category, subCategory string, sort Sort, p pagination.Params) (*ListResult, error)
	ByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*ProductDTO, error)
	GetDetail(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*DetailResult, error)
}

type catalogReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListFiltered(ctx context.Context, params ListParams) ([]models.Product, int64, error)
	ListCapped(ctx context.Context, params ListParams) ([]models.Product, error)
	ListDiscountRanked(ctx context.Context, filters ListFilters, limit int) ([]models.Product, []float64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Product, error)
	ListNewArrivals(ctx context.Context, limit int) ([]models.Product, error)
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]models.Product, error)
}

type enricher interface {
	Enrich(ctx context.Context, items []merchants.Ref) error
}

type recommender interface {
	Similar(ctx context.Context, source *models.Product) ([]models.Product, error)
	YouMayLike(ctx context.Context, userID *uuid.UUID, source *models.Product) ([]models.Product, error)
}

type categoryCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(parts ...string) string
}

type service struct {
	repo      catalogReader
	enricher  enricher
	recommend recommender
	cache     categoryCache
	logg      *logger.Logger
	cfg       config.CatalogConfig
}

// NewService builds the catalog service. The cache is optional; everything
// else is required.
func NewService(repo catalogReader, enr enricher, rec recommender, cache categoryCache, logg *logger.Logger, cfg config.CatalogConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if enr == nil {
		return nil, fmt.Errorf("merchant enricher required")
	}
	if rec == nil {
		return nil, fmt.Errorf("recommender required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		enricher:  enr,
		recommend: rec,
		cache:     cache,
		logg:      logg,
		cfg:       cfg,
	}, nil
}

// pageBuilder is one listing execution strategy.
type pageBuilder interface {
	build(ctx context.Context, params ListParams) (*ListResult, error)
}

// simplePageBuilder filters, orders on a stored column, and returns one
// offset/limit page with full pagination metadata. A raw limit override
// skips the count and returns the capped list without metadata.
type simplePageBuilder struct {
	repo catalogReader
}

func (b simplePageBuilder) build(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.flat() {
		rows, err := b.repo.ListCapped(ctx, params)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
		}
		return &ListResult{Products: NewProductDTOs(rows)}, nil
	}

	rows, total, err := b.repo.ListFiltered(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	meta := pagination.NewMeta(params.Pagination, total)
	return &ListResult{Products: NewProductDTOs(rows), Meta: &meta}, nil
}

// discountPageBuilder is the aggregate mode: a derived discount percentage
// orders the whole matching set, the list is capped, and no pagination
// metadata is produced.
type discountPageBuilder struct {
	repo catalogReader
}

func (b discountPageBuilder) build(ctx context.Context, params ListParams) (*ListResult, error) {
	rows, percents, err := b.repo.ListDiscountRanked(ctx, params.Filters, params.Pagination.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rank products by discount")
	}
	items := NewProductDTOs(rows)
	for i := range items {
		if i < len(percents) {
			p := percents[i]
			items[i].DiscountPercentage = &p
		}
	}
	return &ListResult{Products: items}, nil
}

func (s *service) builderFor(sort Sort) pageBuilder {
	if sort == SortDiscountDesc {
		return discountPageBuilder{repo: s.repo}
	}
	return simplePageBuilder{repo: s.repo}
}

// List runs a listing query and enriches the resulting page.
func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if err := validateFilters(params.Filters); err != nil {
		return nil, err
	}

	result, err := s.builderFor(params.Sort).build(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := s.enricher.Enrich(ctx, enrichable(result.Products)); err != nil {
		return nil, err
	}
	return result, nil
}

// Search is the keyword entry point; an empty query is rejected.
func (s *service) Search(ctx context.Context, query string, p pagination.Params) (*ListResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required").
			WithDetails(map[string]any{"field": "q"})
	}
	return s.List(ctx, ListParams{
		Filters:    ListFilters{Query: query},
		Sort:       SortNewest,
		Pagination: p,
	})
}

// Categories returns the distinct category values, served from cache when
// warm. Cache failures degrade to the database silently.
func (s *service) Categories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		key := s.cache.CacheKey(categoriesCacheKey)
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var cached []string
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		} else if !errors.Is(err, redis.ErrCacheMiss) {
			s.logg.Warn(s.logg.WithField(ctx, "cache_key", key), "category cache read failed")
		}
	}

	categories, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}

	if s.cache != nil {
		payload, err := json.Marshal(categories)
		if err == nil {
			key := s.cache.CacheKey(categoriesCacheKey)
			if err := s.cache.Set(ctx, key, payload, s.cfg.CategoryCacheTTL); err != nil {
				s.logg.Warn(s.logg.WithField(ctx, "cache_key", key), "category cache write failed")
			}
		}
	}
	return categories, nil
}

// Featured lists the newest featured products, enriched.
func (s *service) Featured(ctx context.Context) ([]*ProductDTO, error) {
	rows, err := s.repo.ListFeatured(ctx, s.cfg.FeaturedLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured products")
	}
	return s.enrichRows(ctx, rows)
}

// NewArrivals lists the most recent products, enriched.
func (s *service) NewArrivals(ctx context.Context) ([]*ProductDTO, error) {
	rows, err := s.repo.ListNewArrivals(ctx, s.cfg.FeaturedLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list new arrivals")
	}
	return s.enrichRows(ctx, rows)
}

// ByCategory lists one category, optionally narrowed to a sub-category.
// Category listings order on stored columns only, so the discount sort is
// rejected here.
func (s *service) ByCategory(ctx context.Context, category, subCategory string, sort Sort, p pagination.Params) (*ListResult, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if sort == SortDiscountDesc {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount sort is not supported for category listings").
			WithDetails(map[string]any{"field": "sort"})
	}
	if sort == "" {
		sort = SortNewest
	}
	return s.List(ctx, ListParams{
		Filters: ListFilters{
			Categories:  []string{category},
			SubCategory: subCategory,
		},
		Sort:       sort,
		Pagination: p,
	})
}

// ByMerchant lists a merchant's catalog, enriched.
func (s *service) ByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*ProductDTO, error) {
	if merchantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}
	rows, err := s.repo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list merchant products")
	}
	return s.enrichRows(ctx, rows)
}

// GetDetail loads one product with both recommendation lists attached. A
// known user id unlocks the wishlist recommendation stage. Recommendation
// failures degrade to empty lists, never to a failed detail page.
func (s *service) GetDetail(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*DetailResult, error) {
	source, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	similarRows, err := s.recommend.Similar(ctx, source)
	if err != nil {
		s.logg.Error(s.logg.WithProductID(ctx, id.String()), "similar products lookup failed", err)
		similarRows = nil
	}
	likeRows, err := s.recommend.YouMayLike(ctx, userID, source)
	if err != nil {
		s.logg.Error(s.logg.WithProductID(ctx, id.String()), "you-may-like lookup failed", err)
		likeRows = nil
	}

	detail := &DetailResult{
		Product:         NewProductDTO(source),
		SimilarProducts: NewProductDTOs(similarRows),
		YouMayLike:      NewProductDTOs(likeRows),
	}

	// one enrichment pass covers the product and both lists
	refs := enrichable(detail.SimilarProducts)
	refs = append(refs, enrichable(detail.YouMayLike)...)
	refs = append(refs, detail.Product)
	if err := s.enricher.Enrich(ctx, refs); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *service) enrichRows(ctx context.Context, rows []models.Product) ([]*ProductDTO, error) {
	items := NewProductDTOs(rows)
	if err := s.enricher.Enrich(ctx, enrichable(items)); err != nil {
		return nil, err
	}
	return items, nil
}

func validateFilters(filters ListFilters) error {
	if filters.MinPrice != nil && *filters.MinPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_price must be non-negative")
	}
	if filters.MaxPrice != nil && *filters.MaxPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "max_price must be non-negative")
	}
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_price cannot exceed max_price")
	}
	if filters.MinRating != nil && (*filters.MinRating < 0 || *filters.MinRating > 5) {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_rating must be between 0 and 5")
	}
	return nil
}
