package pricing

import (
	"testing"

	pkgerrors "github.com/rahulvarma/bazaarly-backend/pkg/errors"
)

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{name: "twentyPercent", price: 1000, discount: 20, want: 800},
		{name: "zeroDiscount", price: 499.5, discount: 0, want: 499.5},
		{name: "fullDiscount", price: 250, discount: 100, want: 0},
		{name: "fractionalDiscount", price: 100, discount: 12.5, want: 87.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FinalPrice(tt.price, tt.discount); got != tt.want {
				t.Fatalf("FinalPrice(%v, %v) = %v, want %v", tt.price, tt.discount, got, tt.want)
			}
		})
	}
}

func TestDiscountPercent(t *testing.T) {
	if got := DiscountPercent(100, 80); got != 20 {
		t.Fatalf("expected 20 percent, got %v", got)
	}
	if got := DiscountPercent(100, 90); got != 10 {
		t.Fatalf("expected 10 percent, got %v", got)
	}
	if got := DiscountPercent(0, 0); got != 0 {
		t.Fatalf("zero price should yield 0, got %v", got)
	}
}

func TestDiscountPercentInvertsFinalPrice(t *testing.T) {
	for _, discount := range []float64{0, 5, 12.5, 50, 99, 100} {
		final := FinalPrice(1000, discount)
		if got := DiscountPercent(1000, final); got != discount {
			t.Fatalf("round trip for discount %v yielded %v", discount, got)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(100, 20); err != nil {
		t.Fatalf("valid inputs rejected: %v", err)
	}
	for _, tt := range []struct {
		name     string
		price    float64
		discount float64
	}{
		{name: "zeroPrice", price: 0, discount: 10},
		{name: "negativePrice", price: -5, discount: 10},
		{name: "negativeDiscount", price: 10, discount: -1},
		{name: "discountOver100", price: 10, discount: 101},
	} {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.price, tt.discount)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}
