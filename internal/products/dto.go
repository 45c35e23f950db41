package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/rahulvarma/bazaarly-backend/internal/merchants"
	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
)

// ProductDTO is the listing shape served to clients. Merchant is attached by
// the enrichment pass and stays null when the owning merchant is gone.
type ProductDTO struct {
	ID             uuid.UUID          `json:"id"`
	MerchantID     uuid.UUID          `json:"merchant_id"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	Brand          string             `json:"brand,omitempty"`
	Category       string             `json:"category"`
	SubCategory    string             `json:"sub_category,omitempty"`
	Price          float64            `json:"price"`
	Discount       float64            `json:"discount"`
	FinalPrice     float64            `json:"final_price"`
	Currency       string             `json:"currency"`
	Stock          int                `json:"stock"`
	ImageURL       string             `json:"image_url,omitempty"`
	Images         []string           `json:"images,omitempty"`
	Rating         float64            `json:"rating"`
	ReviewsCount   int                `json:"reviews_count"`
	Tags           []string           `json:"tags,omitempty"`
	Warranty       string             `json:"warranty,omitempty"`
	ReturnPolicy   string             `json:"return_policy,omitempty"`
	DeliveryCharge float64            `json:"delivery_charge"`
	DeliveryTime   string             `json:"delivery_time,omitempty"`
	IsFeatured     bool               `json:"is_featured"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	Merchant       *merchants.Details `json:"merchant"`

	// set only by the aggregate (discount-ranked) mode
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
}

// NewProductDTO projects a product row into its listing form.
func NewProductDTO(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:             p.ID,
		MerchantID:     p.MerchantID,
		Title:          p.Title,
		Description:    p.Description,
		Brand:          p.Brand,
		Category:       p.Category,
		SubCategory:    p.SubCategory,
		Price:          p.Price,
		Discount:       p.Discount,
		FinalPrice:     p.FinalPrice,
		Currency:       p.Currency,
		Stock:          p.Stock,
		ImageURL:       p.ImageURL,
		Images:         p.Images,
		Rating:         p.Rating,
		ReviewsCount:   p.ReviewsCount,
		Tags:           p.Tags,
		Warranty:       p.Warranty,
		ReturnPolicy:   p.ReturnPolicy,
		DeliveryCharge: p.DeliveryCharge,
		DeliveryTime:   p.DeliveryTime,
		IsFeatured:     p.IsFeatured,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// NewProductDTOs projects a slice of rows, preserving order.
func NewProductDTOs(rows []models.Product) []*ProductDTO {
	out := make([]*ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewProductDTO(&rows[i]))
	}
	return out
}

// MerchantRef implements merchants.Ref.
func (d *ProductDTO) MerchantRef() uuid.UUID { return d.MerchantID }

// AttachMerchant implements merchants.Ref.
func (d *ProductDTO) AttachMerchant(details *merchants.Details) { d.Merchant = details }

// enrichable widens a DTO slice for the enrichment pass.
func enrichable(items []*ProductDTO) []merchants.Ref {
	refs := make([]merchants.Ref, 0, len(items))
	for _, item := range items {
		refs = append(refs, item)
	}
	return refs
}

// DetailResult is the product page payload.
type DetailResult struct {
	Product         *ProductDTO   `json:"product"`
	SimilarProducts []*ProductDTO `json:"similar_products"`
	YouMayLike      []*ProductDTO `json:"products_you_may_like"`
}
