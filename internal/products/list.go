package products

import (
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/rahulvarma/bazaarly-backend/pkg/errors"
	"github.com/rahulvarma/bazaarly-backend/pkg/pagination"
)

// Sort names the supported listing orders. SortDiscountDesc switches the
// engine into its aggregate mode; the rest order on stored columns.
type Sort string

const (
	SortNewest       Sort = "newest"
	SortPriceAsc     Sort = "price_asc"
	SortPriceDesc    Sort = "price_desc"
	SortDiscountDesc Sort = "discount_desc"
	SortFeaturedDesc Sort = "featured_desc"
)

// ParseSort maps the raw query value onto a Sort, defaulting to newest.
func ParseSort(raw string) (Sort, error) {
	switch Sort(strings.TrimSpace(strings.ToLower(raw))) {
	case "":
		return SortNewest, nil
	case SortNewest:
		return SortNewest, nil
	case SortPriceAsc:
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	case SortDiscountDesc:
		return SortDiscountDesc, nil
	case SortFeaturedDesc:
		return SortFeaturedDesc, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort value").
		WithDetails(map[string]any{"field": "sort", "value": raw})
}

// ListFilters describe the filter knobs of the browse endpoints. Nil pointers
// mean "no constraint"; Categories is an OR-set.
type ListFilters struct {
	MinPrice    *float64
	MaxPrice    *float64
	Categories  []string
	SubCategory string
	Brand       string
	MinRating   *float64
	Featured    *bool
	MerchantID  *uuid.UUID
	Query       string
}

// ListParams is the full input of a listing call. Flat switches the simple
// mode from a counted page to a raw capped list without pagination metadata.
type ListParams struct {
	Filters    ListFilters
	Sort       Sort
	Pagination pagination.Params
	Flat       bool
}

// flat reports whether the caller asked for a raw capped list. An explicit
// limit without a page number means the same thing as the switch.
func (p ListParams) flat() bool {
	return p.Flat || (p.Pagination.Page == 0 && p.Pagination.Limit > 0)
}

// ListResult is one page of enriched listings. Meta is nil when the engine
// returned a flat capped list, either from the aggregate mode or from a raw
// limit override.
type ListResult struct {
	Products []*ProductDTO    `json:"products"`
	Meta     *pagination.Meta `json:"pagination,omitempty"`
}
