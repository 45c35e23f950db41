package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rahulvarma/bazaarly-backend/api/middleware"
	"github.com/rahulvarma/bazaarly-backend/api/responses"
	"github.com/rahulvarma/bazaarly-backend/api/validators"
	productsvc "github.com/rahulvarma/bazaarly-backend/internal/products"
	pkgerrors "github.com/rahulvarma/bazaarly-backend/pkg/errors"
	"github.com/rahulvarma/bazaarly-backend/pkg/logger"
	"github.com/rahulvarma/bazaarly-backend/pkg/pagination"
)

// ListProducts handles the filtered/sorted/paginated catalog listing.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		params, err := parseListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductCategories returns the distinct category values across the catalog.
func ProductCategories(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

// SearchProducts handles free-text catalog search. The q parameter is required.
func SearchProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		page, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Search(r.Context(), r.URL.Query().Get("q"), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// FeaturedProducts returns the storefront's featured shelf.
func FeaturedProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		items, err := svc.Featured(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": items})
	}
}

// NewArrivalProducts returns the most recently created listings.
func NewArrivalProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		items, err := svc.NewArrivals(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": items})
	}
}

// ProductsByCategory lists one category, optionally narrowed to a sub category.
func ProductsByCategory(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		category := strings.TrimSpace(chi.URLParam(r, "category"))
		if category == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category is required"))
			return
		}
		subCategory := strings.TrimSpace(chi.URLParam(r, "subCategory"))

		sort, err := productsvc.ParseSort(r.URL.Query().Get("sort"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ByCategory(r.Context(), category, subCategory, sort, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductsByMerchant lists one merchant's catalog.
func ProductsByMerchant(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		merchantID, err := uuid.Parse(chi.URLParam(r, "merchantId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid merchant id"))
			return
		}

		items, err := svc.ByMerchant(r.Context(), merchantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": items})
	}
}

// ProductDetail returns one product plus its recommendation lists. The
// you-may-like chain personalizes on the wishlist when the caller carries a
// valid token, so this endpoint sits behind optional auth.
func ProductDetail(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var userID *uuid.UUID
		if id := middleware.UserIDFromContext(r.Context()); id != uuid.Nil {
			userID = &id
		}

		result, err := svc.GetDetail(r.Context(), productID, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func parsePageParams(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 100000)
	if err != nil {
		return pagination.Params{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, Limit: limit}, nil
}

func parseListParams(r *http.Request) (productsvc.ListParams, error) {
	sort, err := productsvc.ParseSort(r.URL.Query().Get("sort"))
	if err != nil {
		return productsvc.ListParams{}, err
	}

	page, err := parsePageParams(r)
	if err != nil {
		return productsvc.ListParams{}, err
	}

	minPrice, err := validators.ParseQueryFloat(r, "min_price")
	if err != nil {
		return productsvc.ListParams{}, err
	}
	maxPrice, err := validators.ParseQueryFloat(r, "max_price")
	if err != nil {
		return productsvc.ListParams{}, err
	}
	minRating, err := validators.ParseQueryFloat(r, "min_rating")
	if err != nil {
		return productsvc.ListParams{}, err
	}
	featured, err := validators.ParseQueryBool(r, "featured")
	if err != nil {
		return productsvc.ListParams{}, err
	}

	// a raw limit without a page number disables pagination metadata
	query := r.URL.Query()
	flat := query.Get("limit") != "" && query.Get("page") == ""

	return productsvc.ListParams{
		Filters: productsvc.ListFilters{
			MinPrice:    minPrice,
			MaxPrice:    maxPrice,
			Categories:  splitCSVParam(query["categories"]),
			SubCategory: strings.TrimSpace(query.Get("sub_category")),
			Brand:       strings.TrimSpace(query.Get("brand")),
			MinRating:   minRating,
			Featured:    featured,
			Query:       strings.TrimSpace(query.Get("q")),
		},
		Sort:       sort,
		Pagination: page,
		Flat:       flat,
	}, nil
}

// splitCSVParam flattens repeated query values and comma separated lists into
// one slice of trimmed non-empty entries.
func splitCSVParam(values []string) []string {
	var result []string
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
	}
	return result
}
