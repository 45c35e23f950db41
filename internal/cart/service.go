package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	products "github.com/rahulvarma/bazaarly-backend/internal/products"
	"github.com/rahulvarma/bazaarly-backend/pkg/config"
	"github.com/rahulvarma/bazaarly-backend/pkg/db"
	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
	pkgerrors "github.com/rahulvarma/bazaarly-backend/pkg/errors"
)

// Service exposes the user cart operations. All totals are computed from the
// LIVE product prices at read time; price_at_addition is display metadata.
type Service interface {
	Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error)
	Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type lineStore interface {
	FindLine(ctx context.Context, userID, productID uuid.UUID) (*models.CartLine, error)
	CreateLine(ctx context.Context, line *models.CartLine) error
	IncrementQuantity(ctx context.Context, userID, productID uuid.UUID, delta int) (int64, error)
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (int64, error)
	DeleteLine(ctx context.Context, userID, productID uuid.UUID) (int64, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     lineStore
	products productLoader
	cfg      config.CartConfig
}

// NewService builds the cart service.
func NewService(repo lineStore, loader productLoader, cfg config.CartConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if loader == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: loader, cfg: cfg}, nil
}

// Add puts the product in the cart, or bumps the quantity if it is already
// there. A concurrent first add losing the unique-index race is retried as an
// increment; the caller never sees a conflict.
func (s *service) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindLine(ctx, userID, productID); err == nil {
		if _, err := s.repo.IncrementQuantity(ctx, userID, productID, quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment cart line")
		}
		return s.Get(ctx, userID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
	}

	line := &models.CartLine{
		UserID:          userID,
		ProductID:       productID,
		Quantity:        quantity,
		PriceAtAddition: product.FinalPrice,
	}
	if err := s.repo.CreateLine(ctx, line); err != nil {
		if db.IsUniqueViolation(err, models.CartLineConstraint) {
			if _, err := s.repo.IncrementQuantity(ctx, userID, productID, quantity); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment cart line after race")
			}
			return s.Get(ctx, userID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert cart line")
	}
	return s.Get(ctx, userID)
}

// Get prices the whole cart from live product data.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	lines, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart lines")
	}
	return s.buildCart(lines), nil
}

// UpdateQuantity sets an absolute quantity on an existing line.
func (s *service) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	affected, err := s.repo.SetQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
	}
	return s.Get(ctx, userID)
}

// Remove drops one product from the cart.
func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error) {
	affected, err := s.repo.DeleteLine(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
	}
	return s.Get(ctx, userID)
}

// Clear empties the cart. Clearing an empty cart succeeds.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) buildCart(lines []models.CartLine) *CartDTO {
	items := make([]LineDTO, 0, len(lines))

	totalActual := decimal.Zero
	totalFinal := decimal.Zero
	totalUnits := 0

	for i := range lines {
		line := &lines[i]
		if line.Product == nil {
			// product deleted since addition; the line no longer prices
			continue
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		actual := decimal.NewFromFloat(line.Product.Price).Mul(qty)
		final := decimal.NewFromFloat(line.Product.FinalPrice).Mul(qty)

		items = append(items, LineDTO{
			Product:         products.NewProductDTO(line.Product),
			Quantity:        line.Quantity,
			PriceAtAddition: line.PriceAtAddition,
			LineActualPrice: actual.InexactFloat64(),
			LineFinalPrice:  final.InexactFloat64(),
			LineDiscount:    actual.Sub(final).InexactFloat64(),
			AddedAt:         line.CreatedAt,
		})

		totalActual = totalActual.Add(actual)
		totalFinal = totalFinal.Add(final)
		totalUnits += line.Quantity
	}

	summary := Summary{
		TotalActualPrice: totalActual.InexactFloat64(),
		TotalFinalPrice:  totalFinal.InexactFloat64(),
		TotalDiscount:    totalActual.Sub(totalFinal).InexactFloat64(),
		TotalItems:       totalUnits,
	}

	if len(items) > 0 {
		fee := s.cfg.DeliveryFee
		if len(items) >= s.cfg.FreeDeliveryLineCount {
			fee = 0
		}
		summary.DeliveryCharge = fee
		summary.GrandTotal = totalFinal.Add(decimal.NewFromFloat(fee)).InexactFloat64()
	}

	return &CartDTO{Items: items, Summary: summary}
}
