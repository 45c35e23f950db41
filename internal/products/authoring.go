package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
	pkgerrors "github.com/rahulvarma/bazaarly-backend/pkg/errors"
	"github.com/rahulvarma/bazaarly-backend/pkg/pricing"
)

// Authoring exposes the merchant-facing catalog mutations. Every write
// recomputes the derived final price; the owning merchant's product counter
// is adjusted off the request path after the primary write.
type Authoring interface {
	Create(ctx context.Context, merchantID uuid.UUID, input CreateInput) (*ProductDTO, error)
	Update(ctx context.Context, merchantID, productID uuid.UUID, input UpdateInput) (*ProductDTO, error)
	Delete(ctx context.Context, merchantID, productID uuid.UUID) error
}

// CreateInput holds the validated payload to create a listing.
type CreateInput struct {
	Title          string
	Description    string
	Brand          string
	Category       string
	SubCategory    string
	Price          float64
	Discount       float64
	Currency       string
	Stock          int
	ImageURL       string
	Images         []string
	Tags           []string
	Warranty       string
	ReturnPolicy   string
	DeliveryCharge float64
	DeliveryTime   string
	IsFeatured     bool
}

// UpdateInput holds optional mutation values; nil means "leave unchanged".
type UpdateInput struct {
	Title          *string
	Description    *string
	Brand          *string
	Category       *string
	SubCategory    *string
	Price          *float64
	Discount       *float64
	Currency       *string
	Stock          *int
	ImageURL       *string
	Images         *[]string
	Tags           *[]string
	Warranty       *string
	ReturnPolicy   *string
	DeliveryCharge *float64
	DeliveryTime   *string
	IsFeatured     *bool
}

type catalogWriter interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type merchantGate interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error)
}

type productCounter interface {
	ProductAdded(ctx context.Context, merchantID uuid.UUID)
	ProductRemoved(ctx context.Context, merchantID uuid.UUID)
}

type authoring struct {
	repo      catalogWriter
	merchants merchantGate
	counters  productCounter
}

// NewAuthoring builds the merchant authoring service.
func NewAuthoring(repo catalogWriter, gate merchantGate, counters productCounter) (Authoring, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if gate == nil {
		return nil, fmt.Errorf("merchant repository required")
	}
	if counters == nil {
		return nil, fmt.Errorf("product counters required")
	}
	return &authoring{repo: repo, merchants: gate, counters: counters}, nil
}

// Create validates pricing, derives the final price, and inserts the listing.
func (a *authoring) Create(ctx context.Context, merchantID uuid.UUID, input CreateInput) (*ProductDTO, error) {
	if err := a.ensureVerifiedMerchant(ctx, merchantID); err != nil {
		return nil, err
	}
	if err := pricing.Validate(input.Price, input.Discount); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "INR"
	}

	product := &models.Product{
		MerchantID:     merchantID,
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Brand:          strings.TrimSpace(input.Brand),
		Category:       strings.TrimSpace(input.Category),
		SubCategory:    strings.TrimSpace(input.SubCategory),
		Price:          input.Price,
		Discount:       input.Discount,
		FinalPrice:     pricing.FinalPrice(input.Price, input.Discount),
		Currency:       currency,
		Stock:          input.Stock,
		ImageURL:       input.ImageURL,
		Images:         input.Images,
		Tags:           input.Tags,
		Warranty:       input.Warranty,
		ReturnPolicy:   input.ReturnPolicy,
		DeliveryCharge: input.DeliveryCharge,
		DeliveryTime:   input.DeliveryTime,
		IsFeatured:     input.IsFeatured,
	}

	created, err := a.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product")
	}

	a.counters.ProductAdded(ctx, merchantID)
	return NewProductDTO(created), nil
}

// Update applies the partial payload. A price or discount change recomputes
// the final price from the merged values.
func (a *authoring) Update(ctx context.Context, merchantID, productID uuid.UUID, input UpdateInput) (*ProductDTO, error) {
	if err := a.ensureVerifiedMerchant(ctx, merchantID); err != nil {
		return nil, err
	}

	product, err := a.loadOwned(ctx, merchantID, productID)
	if err != nil {
		return nil, err
	}

	applyUpdate(product, input)

	if input.Price != nil || input.Discount != nil {
		if err := pricing.Validate(product.Price, product.Discount); err != nil {
			return nil, err
		}
		product.FinalPrice = pricing.FinalPrice(product.Price, product.Discount)
	}

	updated, err := a.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return NewProductDTO(updated), nil
}

// Delete removes the listing and drops the merchant's counter.
func (a *authoring) Delete(ctx context.Context, merchantID, productID uuid.UUID) error {
	if err := a.ensureVerifiedMerchant(ctx, merchantID); err != nil {
		return err
	}
	if _, err := a.loadOwned(ctx, merchantID, productID); err != nil {
		return err
	}
	if err := a.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}

	a.counters.ProductRemoved(ctx, merchantID)
	return nil
}

func (a *authoring) ensureVerifiedMerchant(ctx context.Context, merchantID uuid.UUID) error {
	if merchantID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "merchant context missing")
	}
	merchant, err := a.merchants.FindByID(ctx, merchantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "merchant not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load merchant")
	}
	if !merchant.IsVerified {
		return pkgerrors.New(pkgerrors.CodeForbidden, "merchant is not verified")
	}
	return nil
}

func (a *authoring) loadOwned(ctx context.Context, merchantID, productID uuid.UUID) (*models.Product, error) {
	product, err := a.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.MerchantID != merchantID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product does not belong to merchant")
	}
	return product, nil
}

func applyUpdate(product *models.Product, input UpdateInput) {
	if input.Title != nil {
		product.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Brand != nil {
		product.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.SubCategory != nil {
		product.SubCategory = strings.TrimSpace(*input.SubCategory)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Discount != nil {
		product.Discount = *input.Discount
	}
	if input.Currency != nil {
		product.Currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Images != nil {
		product.Images = *input.Images
	}
	if input.Tags != nil {
		product.Tags = *input.Tags
	}
	if input.Warranty != nil {
		product.Warranty = *input.Warranty
	}
	if input.ReturnPolicy != nil {
		product.ReturnPolicy = *input.ReturnPolicy
	}
	if input.DeliveryCharge != nil {
		product.DeliveryCharge = *input.DeliveryCharge
	}
	if input.DeliveryTime != nil {
		product.DeliveryTime = *input.DeliveryTime
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
}
