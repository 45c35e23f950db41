package recommend

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rahulvarma/bazaarly-backend/pkg/config"
	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
	pkgerrors "github.com/rahulvarma/bazaarly-backend/pkg/errors"
	"github.com/rahulvarma/bazaarly-backend/pkg/logger"
)

// brandTopUpFloor triggers the brand top-up when the similar sample is thin.
const brandTopUpFloor = 5

// Service produces the two recommendation lists of a product page.
type Service interface {
	Similar(ctx context.Context, source *models.Product) ([]models.Product, error)
	YouMayLike(ctx context.Context, userID *uuid.UUID, source *models.Product) ([]models.Product, error)
}

type candidateRepo interface {
	SampleByCategoryOrSub(ctx context.Context, category, subCategory string, excludeIDs []uuid.UUID, limit int) ([]models.Product, error)
	ListByBrand(ctx context.Context, brand string, excludeIDs []uuid.UUID, limit int) ([]models.Product, error)
	WishlistDiscounted(ctx context.Context, userID uuid.UUID, excludeIDs []uuid.UUID, limit int) ([]models.Product, error)
	ListDiscounted(ctx context.Context, excludeIDs []uuid.UUID, limit int) ([]models.Product, error)
	ListTopRated(ctx context.Context, excludeIDs []uuid.UUID, limit int) ([]models.Product, error)
}

type service struct {
	repo  candidateRepo
	logg  *logger.Logger
	limit int
}

// NewService builds the recommendation engine.
func NewService(repo candidateRepo, logg *logger.Logger, cfg config.CatalogConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("candidate repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	limit := cfg.RecommendLimit
	if limit <= 0 {
		limit = 10
	}
	return &service{repo: repo, logg: logg, limit: limit}, nil
}

// Similar samples products that share the source's category or sub-category.
// When the sample is thin the same brand tops the list up.
func (s *service) Similar(ctx context.Context, source *models.Product) ([]models.Product, error) {
	if source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source product required")
	}

	picked := newPicker(s.limit, source.ID)

	sample, err := s.repo.SampleByCategoryOrSub(ctx, source.Category, source.SubCategory, picked.exclusions(), s.limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sample similar products")
	}
	picked.add(sample)

	if picked.len() < brandTopUpFloor && source.Brand != "" {
		topUp, err := s.repo.ListByBrand(ctx, source.Brand, picked.exclusions(), picked.shortfall())
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "brand top-up")
		}
		picked.add(topUp)
	}
	return picked.items, nil
}

// YouMayLike walks the three-stage fallback chain. A failing stage counts as
// zero candidates; later stages fill the shortfall.
func (s *service) YouMayLike(ctx context.Context, userID *uuid.UUID, source *models.Product) ([]models.Product, error) {
	if source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source product required")
	}

	picked := newPicker(s.limit, source.ID)

	if userID != nil && *userID != uuid.Nil {
		s.runStage(ctx, picked, "wishlist_discounted", func(exclude []uuid.UUID, limit int) ([]models.Product, error) {
			return s.repo.WishlistDiscounted(ctx, *userID, exclude, limit)
		})
	}
	s.runStage(ctx, picked, "global_discounted", func(exclude []uuid.UUID, limit int) ([]models.Product, error) {
		return s.repo.ListDiscounted(ctx, exclude, limit)
	})
	s.runStage(ctx, picked, "top_rated", func(exclude []uuid.UUID, limit int) ([]models.Product, error) {
		return s.repo.ListTopRated(ctx, exclude, limit)
	})

	return picked.items, nil
}

func (s *service) runStage(ctx context.Context, picked *picker, stage string, fetch func(exclude []uuid.UUID, limit int) ([]models.Product, error)) {
	if picked.full() {
		return
	}
	rows, err := fetch(picked.exclusions(), picked.shortfall())
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "stage", stage), "recommendation stage failed", err)
		return
	}
	picked.add(rows)
}

// picker accumulates candidates, dropping duplicates and the source product,
// and stops at the configured cap.
type picker struct {
	items []models.Product
	seen  map[uuid.UUID]struct{}
	limit int
}

func newPicker(limit int, sourceID uuid.UUID) *picker {
	return &picker{
		items: make([]models.Product, 0, limit),
		seen:  map[uuid.UUID]struct{}{sourceID: {}},
		limit: limit,
	}
}

func (p *picker) add(rows []models.Product) {
	for _, row := range rows {
		if p.full() {
			return
		}
		if _, ok := p.seen[row.ID]; ok {
			continue
		}
		p.seen[row.ID] = struct{}{}
		p.items = append(p.items, row)
	}
}

func (p *picker) len() int       { return len(p.items) }
func (p *picker) full() bool     { return len(p.items) >= p.limit }
func (p *picker) shortfall() int { return p.limit - len(p.items) }

func (p *picker) exclusions() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(p.seen))
	for id := range p.seen {
		out = append(out, id)
	}
	return out
}
