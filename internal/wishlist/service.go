package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulvarma/bazaarly-backend/internal/merchants"
	products "github.com/rahulvarma/bazaarly-backend/internal/products"
	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
	pkgerrors "github.com/rahulvarma/bazaarly-backend/pkg/errors"
)

// Service exposes wishlist management.
type Service interface {
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]*products.ProductDTO, error)
}

type lineStore interface {
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) (int64, error)
	ListProducts(ctx context.Context, userID uuid.UUID) ([]models.Product, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type enricher interface {
	Enrich(ctx context.Context, items []merchants.Ref) error
}

type service struct {
	repo     lineStore
	products productLoader
	enricher enricher
}

// NewService builds the wishlist service.
func NewService(repo lineStore, loader productLoader, enr enricher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishlist repository required")
	}
	if loader == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if enr == nil {
		return nil, fmt.Errorf("merchant enricher required")
	}
	return &service{repo: repo, products: loader, enricher: enr}, nil
}

// Add saves the product; duplicates succeed silently.
func (s *service) Add(ctx context.Context, userID, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Add(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wishlist entry")
	}
	return nil
}

// Remove drops the entry.
func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	affected, err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist entry")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not in wishlist")
	}
	return nil
}

// List returns the saved products, enriched with merchant details.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]*products.ProductDTO, error) {
	rows, err := s.repo.ListProducts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}
	items := products.NewProductDTOs(rows)
	refs := make([]merchants.Ref, 0, len(items))
	for _, item := range items {
		refs = append(refs, item)
	}
	if err := s.enricher.Enrich(ctx, refs); err != nil {
		return nil, err
	}
	return items, nil
}
