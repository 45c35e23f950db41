package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rahulvarma/bazaarly-backend/api/middleware"
	productsvc "github.com/rahulvarma/bazaarly-backend/internal/products"
	pkgerrors "github.com/rahulvarma/bazaarly-backend/pkg/errors"
	"github.com/rahulvarma/bazaarly-backend/pkg/pagination"
)

type stubProductService struct {
	listParams   *productsvc.ListParams
	searchQuery  string
	categorySort productsvc.Sort
	detailID     uuid.UUID
	detailUser   *uuid.UUID
	detail       *productsvc.DetailResult
	err          error
}

func (s *stubProductService) List(ctx context.Context, params productsvc.ListParams) (*productsvc.ListResult, error) {
	s.listParams = &params
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ListResult{Products: []*productsvc.ProductDTO{}}, nil
}

func (s *stubProductService) Search(ctx context.Context, query string, p pagination.Params) (*productsvc.ListResult, error) {
	s.searchQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ListResult{Products: []*productsvc.ProductDTO{}}, nil
}

func (s *stubProductService) Categories(ctx context.Context) ([]string, error) {
	return []string{"electronics"}, s.err
}

func (s *stubProductService) Featured(ctx context.Context) ([]*productsvc.ProductDTO, error) {
	return nil, s.err
}

func (s *stubProductService) NewArrivals(ctx context.Context) ([]*productsvc.ProductDTO, error) {
	return nil, s.err
}

func (s *stubProductService) ByCategory(ctx context.Context, category, subCategory string, sort productsvc.Sort, p pagination.Params) (*productsvc.ListResult, error) {
	s.categorySort = sort
	if sort == productsvc.SortDiscountDesc {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount sort is not supported for category listings")
	}
	return &productsvc.ListResult{Products: []*productsvc.ProductDTO{}}, s.err
}

func (s *stubProductService) ByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*productsvc.ProductDTO, error) {
	return nil, s.err
}

func (s *stubProductService) GetDetail(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*productsvc.DetailResult, error) {
	s.detailID = id
	s.detailUser = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

func TestListProductsParsesFilters(t *testing.T) {
	svc := &stubProductService{}
	handler := ListProducts(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?min_price=100&max_price=2000&categories=electronics,fashion&min_rating=3.5&featured=true&sort=price_asc&page=2&limit=24&q=phone", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	if svc.listParams == nil {
		t.Fatal("expected service to be called")
	}
	params := *svc.listParams
	if params.Filters.MinPrice == nil || *params.Filters.MinPrice != 100 {
		t.Fatalf("unexpected min price: %v", params.Filters.MinPrice)
	}
	if len(params.Filters.Categories) != 2 || params.Filters.Categories[1] != "fashion" {
		t.Fatalf("unexpected categories: %v", params.Filters.Categories)
	}
	if params.Filters.Featured == nil || !*params.Filters.Featured {
		t.Fatal("expected featured filter")
	}
	if params.Sort != productsvc.SortPriceAsc {
		t.Fatalf("unexpected sort: %v", params.Sort)
	}
	if params.Pagination.Page != 2 || params.Pagination.Limit != 24 {
		t.Fatalf("unexpected pagination: %+v", params.Pagination)
	}
	if params.Filters.Query != "phone" {
		t.Fatalf("unexpected query: %q", params.Filters.Query)
	}
	if params.Flat {
		t.Fatal("an explicit page must keep pagination on")
	}
}

func TestListProductsRawLimitDisablesPagination(t *testing.T) {
	svc := &stubProductService{}
	handler := ListProducts(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=5", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	if svc.listParams == nil {
		t.Fatal("expected service to be called")
	}
	if !svc.listParams.Flat {
		t.Fatal("expected a limit without a page to request the flat list")
	}
	if svc.listParams.Pagination.Limit != 5 {
		t.Fatalf("unexpected limit: %d", svc.listParams.Pagination.Limit)
	}
}

func TestListProductsRejectsMalformedPrice(t *testing.T) {
	handler := ListProducts(&stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?min_price=cheap", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListProductsRejectsUnknownSort(t *testing.T) {
	handler := ListProducts(&stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=alphabetical", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSearchProductsForwardsQuery(t *testing.T) {
	svc := &stubProductService{}
	handler := SearchProducts(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/search?q=headphones", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.searchQuery != "headphones" {
		t.Fatalf("unexpected search query: %q", svc.searchQuery)
	}
}

func TestProductsByCategoryForwardsSort(t *testing.T) {
	svc := &stubProductService{}
	router := chi.NewRouter()
	router.Get("/products/category/{category}", ProductsByCategory(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/products/category/electronics?sort=price_desc", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	if svc.categorySort != productsvc.SortPriceDesc {
		t.Fatalf("unexpected sort forwarded: %q", svc.categorySort)
	}
}

func TestProductsByCategoryRejectsDiscountSort(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/products/category/{category}", ProductsByCategory(&stubProductService{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/products/category/electronics?sort=discount_desc", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductsByCategoryRejectsUnknownSort(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/products/category/{category}", ProductsByCategory(&stubProductService{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/products/category/electronics?sort=alphabetical", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductDetailRejectsInvalidID(t *testing.T) {
	handler := ProductDetail(&stubProductService{}, nil)

	router := chi.NewRouter()
	router.Get("/products/{id}", handler)

	req := httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductDetailNotFound(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	handler := ProductDetail(svc, nil)

	router := chi.NewRouter()
	router.Get("/products/{id}", handler)

	req := httptest.NewRequest(http.MethodGet, "/products/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestProductDetailForwardsSignedInUser(t *testing.T) {
	svc := &stubProductService{detail: &productsvc.DetailResult{}}
	handler := ProductDetail(svc, nil)

	router := chi.NewRouter()
	router.Get("/products/{id}", handler)

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/products/"+uuid.NewString(), nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.detailUser == nil || *svc.detailUser != userID {
		t.Fatalf("expected user id forwarded, got %v", svc.detailUser)
	}
}

func TestProductCategoriesEnvelope(t *testing.T) {
	handler := ProductCategories(&stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/categories", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Categories []string `json:"categories"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Categories) != 1 || envelope.Data.Categories[0] != "electronics" {
		t.Fatalf("unexpected categories: %v", envelope.Data.Categories)
	}
}
