package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulvarma/bazaarly-backend/internal/merchants"
	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
	pkgerrors "github.com/rahulvarma/bazaarly-backend/pkg/errors"
)

type fakeLines struct {
	entries map[uuid.UUID][]uuid.UUID
	byID    map[uuid.UUID]*models.Product
}

func newFakeLines() *fakeLines {
	return &fakeLines{
		entries: map[uuid.UUID][]uuid.UUID{},
		byID:    map[uuid.UUID]*models.Product{},
	}
}

func (f *fakeLines) Add(_ context.Context, userID, productID uuid.UUID) error {
	for _, existing := range f.entries[userID] {
		if existing == productID {
			return nil
		}
	}
	f.entries[userID] = append(f.entries[userID], productID)
	return nil
}

func (f *fakeLines) Remove(_ context.Context, userID, productID uuid.UUID) (int64, error) {
	list := f.entries[userID]
	for i, existing := range list {
		if existing == productID {
			f.entries[userID] = append(list[:i], list[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeLines) ListProducts(_ context.Context, userID uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range f.entries[userID] {
		if p, ok := f.byID[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeLines) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type nopEnricher struct{ calls int }

func (n *nopEnricher) Enrich(_ context.Context, items []merchants.Ref) error {
	n.calls++
	for _, item := range items {
		item.AttachMerchant(&merchants.Details{MerchantName: "Enriched"})
	}
	return nil
}

func testWishlist(t *testing.T, store *fakeLines, enr *nopEnricher) Service {
	t.Helper()
	svc, err := NewService(store, store, enr)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestAddIsIdempotent(t *testing.T) {
	store := newFakeLines()
	svc := testWishlist(t, store, &nopEnricher{})

	user := uuid.New()
	product := &models.Product{ID: uuid.New(), Title: "Saved"}
	store.byID[product.ID] = product

	if err := svc.Add(context.Background(), user, product.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Add(context.Background(), user, product.ID); err != nil {
		t.Fatalf("duplicate add must succeed: %v", err)
	}
	if len(store.entries[user]) != 1 {
		t.Fatalf("expected single entry, got %d", len(store.entries[user]))
	}
}

func TestAddUnknownProduct(t *testing.T) {
	svc := testWishlist(t, newFakeLines(), &nopEnricher{})

	err := svc.Add(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveMissingEntry(t *testing.T) {
	svc := testWishlist(t, newFakeLines(), &nopEnricher{})

	err := svc.Remove(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListEnriches(t *testing.T) {
	store := newFakeLines()
	enr := &nopEnricher{}
	svc := testWishlist(t, store, enr)

	user := uuid.New()
	p := &models.Product{ID: uuid.New(), MerchantID: uuid.New(), Title: "Saved"}
	store.byID[p.ID] = p
	if err := svc.Add(context.Background(), user, p.ID); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := svc.List(context.Background(), user)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Merchant == nil {
		t.Fatalf("expected one enriched item, got %+v", items)
	}
	if enr.calls != 1 {
		t.Fatalf("expected one enrichment pass, got %d", enr.calls)
	}
}
