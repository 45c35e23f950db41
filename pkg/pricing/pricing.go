// Package pricing derives a product's effective sale price from its list
// price and discount percentage. The sale price is cached on the product row
// but is never an independent source of truth: every write path recomputes it
// through this package.
package pricing

import (
	pkgerrors "github.com/rahulvarma/bazaarly-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// FinalPrice returns price - price*(discount/100). No rounding is applied;
// the same policy is used at every write site.
func FinalPrice(price, discount float64) float64 {
	p := decimal.NewFromFloat(price)
	d := decimal.NewFromFloat(discount)
	final := p.Sub(p.Mul(d.Div(decimal.NewFromInt(100))))
	return final.InexactFloat64()
}

// DiscountPercent is the ranking metric (price - finalPrice) / price * 100.
// It can diverge from the stored discount field only if the two were written
// under different rounding policies; with FinalPrice they coincide.
// A non-positive price yields 0 rather than a division error.
func DiscountPercent(price, finalPrice float64) float64 {
	if price <= 0 {
		return 0
	}
	p := decimal.NewFromFloat(price)
	f := decimal.NewFromFloat(finalPrice)
	return p.Sub(f).Div(p).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// Validate rejects list prices and discounts outside the model's domain.
func Validate(price, discount float64) error {
	if price <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if discount < 0 || discount > 100 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount must be between 0 and 100")
	}
	return nil
}
