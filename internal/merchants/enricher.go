package merchants

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rahulvarma/bazaarly-backend/pkg/db/models"
	pkgerrors "github.com/rahulvarma/bazaarly-backend/pkg/errors"
)

// Details is the merchant projection attached to catalog listings. It carries
// display fields only; the drifting product counter is deliberately excluded.
type Details struct {
	ID           uuid.UUID `json:"id"`
	MerchantName string    `json:"merchant_name"`
	BusinessName string    `json:"business_name"`
	Address      string    `json:"address"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email"`
	IsVerified   bool      `json:"is_verified"`
}

// NewDetails projects a merchant row into its listing form.
func NewDetails(m *models.Merchant) *Details {
	if m == nil {
		return nil
	}
	return &Details{
		ID:           m.ID,
		MerchantName: m.MerchantName,
		BusinessName: m.BusinessName,
		Address:      m.Address,
		PhoneNumber:  m.PhoneNumber,
		Email:        m.Email,
		IsVerified:   m.IsVerified,
	}
}

// Ref is implemented by any listing item that carries a merchant reference.
type Ref interface {
	MerchantRef() uuid.UUID
	AttachMerchant(*Details)
}

type batchLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Merchant, error)
}

// Enricher attaches merchant details to listing items. A single Enrich call
// issues exactly one batch fetch no matter how many items it receives; items
// whose merchant no longer exists get a nil attachment.
type Enricher struct {
	loader batchLoader
}

// NewEnricher builds an enricher backed by the provided loader.
func NewEnricher(loader batchLoader) (*Enricher, error) {
	if loader == nil {
		return nil, fmt.Errorf("merchant loader required")
	}
	return &Enricher{loader: loader}, nil
}

// Enrich resolves the distinct merchant ids across items and attaches the
// matching details in place. Safe to call repeatedly on the same items.
func (e *Enricher) Enrich(ctx context.Context, items []Ref) error {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		id := item.MerchantRef()
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := e.loader.FindByIDs(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "batch load merchants")
	}

	byID := make(map[uuid.UUID]*Details, len(rows))
	for i := range rows {
		byID[rows[i].ID] = NewDetails(&rows[i])
	}

	for _, item := range items {
		item.AttachMerchant(byID[item.MerchantRef()])
	}
	return nil
}
