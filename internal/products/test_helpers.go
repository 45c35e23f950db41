package products

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
	"github.com/rahulvarma/bazaarly-backend/pkg/pricing"
)

func mustCreateTestMerchant(t *testing.T, tx *gorm.DB) *models.Merchant {
	t.Helper()
	merchant := &models.Merchant{
		ID:           uuid.New(),
		MerchantName: "Catalog Merchant",
		BusinessName: "Catalog Merchant LLP",
		Email:        fmt.Sprintf("bz_test_%s@example.com", uuid.NewString()),
		IsVerified:   true,
	}
	if err := tx.Create(merchant).Error; err != nil {
		t.Fatalf("create merchant: %v", err)
	}
	return merchant
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, merchantID uuid.UUID, price, discount float64) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		MerchantID: merchantID,
		Title:      fmt.Sprintf("Test Product %s", uuid.NewString()[:8]),
		Brand:      "Testo",
		Category:   "electronics",
		Price:      price,
		Discount:   discount,
		FinalPrice: pricing.FinalPrice(price, discount),
		Currency:   "INR",
		Stock:      10,
		Tags:       pq.StringArray{"gadget"},
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
