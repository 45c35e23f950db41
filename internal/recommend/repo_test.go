package recommend

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("BAZAARLY_DB_DSN")
	if dsn == "" {
		t.Skip("BAZAARLY_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func mustCreateCandidate(t *testing.T, tx *gorm.DB, merchantID uuid.UUID, price, discount, finalPrice float64) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		MerchantID: merchantID,
		Title:      fmt.Sprintf("Candidate %s", uuid.NewString()[:8]),
		Brand:      "Testo",
		Category:   "electronics",
		Price:      price,
		Discount:   discount,
		FinalPrice: finalPrice,
		Currency:   "INR",
		Stock:      10,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestListDiscountedOrdersByEffectiveDiscount(t *testing.T) {
	conn := openTestDB(t)

	err := conn.Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		merchant := &models.Merchant{
			ID:           uuid.New(),
			MerchantName: "Recommend Merchant",
			BusinessName: "Recommend Merchant LLP",
			Email:        fmt.Sprintf("bz_test_%s@example.com", uuid.NewString()),
			IsVerified:   true,
		}
		if err := tx.Create(merchant).Error; err != nil {
			t.Fatalf("create merchant: %v", err)
		}

		// the stored discount column claims 50 but the price cut is 10 percent,
		// so the row with the bigger effective cut must rank first
		stale := mustCreateCandidate(t, tx, merchant.ID, 1000, 50, 900)
		best := mustCreateCandidate(t, tx, merchant.ID, 1000, 20, 800)

		rows, err := repo.ListDiscounted(context.Background(), nil, 1000)
		if err != nil {
			t.Fatalf("list discounted: %v", err)
		}

		bestAt, staleAt := -1, -1
		for i, row := range rows {
			switch row.ID {
			case best.ID:
				bestAt = i
			case stale.ID:
				staleAt = i
			}
		}
		if bestAt == -1 || staleAt == -1 {
			t.Fatalf("expected both candidates in result, got best=%d stale=%d", bestAt, staleAt)
		}
		if bestAt > staleAt {
			t.Fatalf("expected effective discount order, got best at %d after stale at %d", bestAt, staleAt)
		}
		return gorm.ErrInvalidTransaction
	})
	if err != gorm.ErrInvalidTransaction {
		t.Fatalf("unexpected transaction error: %v", err)
	}
}
