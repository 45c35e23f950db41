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
)

type createProductRequest struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description"`
	Brand          string   `json:"brand"`
	Category       string   `json:"category" validate:"required"`
	SubCategory    string   `json:"sub_category"`
	Price          float64  `json:"price" validate:"required,gt=0"`
	Discount       float64  `json:"discount" validate:"gte=0,lte=100"`
	Currency       string   `json:"currency"`
	Stock          int      `json:"stock" validate:"gte=0"`
	ImageURL       string   `json:"image_url"`
	Images         []string `json:"images"`
	Tags           []string `json:"tags"`
	Warranty       string   `json:"warranty"`
	ReturnPolicy   string   `json:"return_policy"`
	DeliveryCharge float64  `json:"delivery_charge" validate:"gte=0"`
	DeliveryTime   string   `json:"delivery_time"`
	IsFeatured     bool     `json:"is_featured"`
}

func (r createProductRequest) toInput() productsvc.CreateInput {
	return productsvc.CreateInput{
		Title:          strings.TrimSpace(r.Title),
		Description:    r.Description,
		Brand:          strings.TrimSpace(r.Brand),
		Category:       strings.TrimSpace(r.Category),
		SubCategory:    strings.TrimSpace(r.SubCategory),
		Price:          r.Price,
		Discount:       r.Discount,
		Currency:       strings.TrimSpace(r.Currency),
		Stock:          r.Stock,
		ImageURL:       r.ImageURL,
		Images:         r.Images,
		Tags:           r.Tags,
		Warranty:       r.Warranty,
		ReturnPolicy:   r.ReturnPolicy,
		DeliveryCharge: r.DeliveryCharge,
		DeliveryTime:   r.DeliveryTime,
		IsFeatured:     r.IsFeatured,
	}
}

type updateProductRequest struct {
	Title          *string   `json:"title" validate:"omitempty,min=1"`
	Description    *string   `json:"description"`
	Brand          *string   `json:"brand"`
	Category       *string   `json:"category" validate:"omitempty,min=1"`
	SubCategory    *string   `json:"sub_category"`
	Price          *float64  `json:"price" validate:"omitempty,gt=0"`
	Discount       *float64  `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Currency       *string   `json:"currency"`
	Stock          *int      `json:"stock" validate:"omitempty,gte=0"`
	ImageURL       *string   `json:"image_url"`
	Images         *[]string `json:"images"`
	Tags           *[]string `json:"tags"`
	Warranty       *string   `json:"warranty"`
	ReturnPolicy   *string   `json:"return_policy"`
	DeliveryCharge *float64  `json:"delivery_charge" validate:"omitempty,gte=0"`
	DeliveryTime   *string   `json:"delivery_time"`
	IsFeatured     *bool     `json:"is_featured"`
}

func (r updateProductRequest) toInput() productsvc.UpdateInput {
	return productsvc.UpdateInput{
		Title:          r.Title,
		Description:    r.Description,
		Brand:          r.Brand,
		Category:       r.Category,
		SubCategory:    r.SubCategory,
		Price:          r.Price,
		Discount:       r.Discount,
		Currency:       r.Currency,
		Stock:          r.Stock,
		ImageURL:       r.ImageURL,
		Images:         r.Images,
		Tags:           r.Tags,
		Warranty:       r.Warranty,
		ReturnPolicy:   r.ReturnPolicy,
		DeliveryCharge: r.DeliveryCharge,
		DeliveryTime:   r.DeliveryTime,
		IsFeatured:     r.IsFeatured,
	}
}

// MerchantCreateProduct handles listing creation by a verified merchant.
func MerchantCreateProduct(svc productsvc.Authoring, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, ok := requireMerchantActor(w, r, svc, logg)
		if !ok {
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), merchantID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// MerchantUpdateProduct handles partial edits of an owned listing.
func MerchantUpdateProduct(svc productsvc.Authoring, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, ok := requireMerchantActor(w, r, svc, logg)
		if !ok {
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), merchantID, productID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// MerchantDeleteProduct removes an owned listing.
func MerchantDeleteProduct(svc productsvc.Authoring, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, ok := requireMerchantActor(w, r, svc, logg)
		if !ok {
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		if err := svc.Delete(r.Context(), merchantID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func requireMerchantActor(w http.ResponseWriter, r *http.Request, svc productsvc.Authoring, logg *logger.Logger) (uuid.UUID, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
		return uuid.Nil, false
	}
	merchantID := middleware.MerchantIDFromContext(r.Context())
	if merchantID == uuid.Nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "merchant context missing"))
		return uuid.Nil, false
	}
	return merchantID, true
}
