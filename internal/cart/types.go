package cart

import (
	"time"

	products "github.com/rahulvarma/bazaarly-backend/internal/products"
)

// LineDTO is one cart row priced at the product's LIVE values. The frozen
// price_at_addition is included for display only and never feeds the totals.
type LineDTO struct {
	Product         *products.ProductDTO `json:"product"`
	Quantity        int                  `json:"quantity"`
	PriceAtAddition float64              `json:"price_at_addition"`
	LineActualPrice float64              `json:"line_actual_price"`
	LineFinalPrice  float64              `json:"line_final_price"`
	LineDiscount    float64              `json:"line_discount"`
	AddedAt         time.Time            `json:"added_at"`
}

// Summary aggregates the cart. TotalItems counts units, not lines.
type Summary struct {
	TotalActualPrice float64 `json:"total_actual_price"`
	TotalFinalPrice  float64 `json:"total_final_price"`
	TotalDiscount    float64 `json:"total_discount"`
	TotalItems       int     `json:"total_items"`
	DeliveryCharge   float64 `json:"delivery_charge"`
	GrandTotal       float64 `json:"grand_total"`
}

// CartDTO is the user cart payload.
type CartDTO struct {
	Items   []LineDTO `json:"items"`
	Summary Summary   `json:"summary"`
}
