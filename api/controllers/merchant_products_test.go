package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rahulvarma/bazaarly-backend/api/middleware"
	productsvc "github.com/rahulvarma/bazaarly-backend/internal/products"
)

type stubAuthoring struct {
	createInput *productsvc.CreateInput
	updateInput *productsvc.UpdateInput
	deletedID   uuid.UUID
	err         error
}

func (s *stubAuthoring) Create(ctx context.Context, merchantID uuid.UUID, input productsvc.CreateInput) (*productsvc.ProductDTO, error) {
	s.createInput = &input
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ProductDTO{ID: uuid.New()}, nil
}

func (s *stubAuthoring) Update(ctx context.Context, merchantID, productID uuid.UUID, input productsvc.UpdateInput) (*productsvc.ProductDTO, error) {
	s.updateInput = &input
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ProductDTO{ID: productID}, nil
}

func (s *stubAuthoring) Delete(ctx context.Context, merchantID, productID uuid.UUID) error {
	s.deletedID = productID
	return s.err
}

func withMerchant(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithMerchantID(req.Context(), uuid.New()))
}

func TestMerchantCreateProduct(t *testing.T) {
	svc := &stubAuthoring{}
	handler := MerchantCreateProduct(svc, nil)

	body := `{"title":"Wireless Mouse","category":"electronics","price":1200,"discount":10,"stock":5}`
	req := withMerchant(httptest.NewRequest(http.MethodPost, "/api/v1/merchant/products", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", resp.Code, resp.Body.String())
	}
	if svc.createInput == nil || svc.createInput.Title != "Wireless Mouse" || svc.createInput.Price != 1200 {
		t.Fatalf("unexpected create input: %+v", svc.createInput)
	}
}

func TestMerchantCreateProductRequiresTitle(t *testing.T) {
	handler := MerchantCreateProduct(&stubAuthoring{}, nil)

	req := withMerchant(httptest.NewRequest(http.MethodPost, "/api/v1/merchant/products", strings.NewReader(`{"category":"electronics","price":100}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestMerchantCreateProductRequiresMerchantContext(t *testing.T) {
	handler := MerchantCreateProduct(&stubAuthoring{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/merchant/products", strings.NewReader(`{"title":"x","category":"y","price":1}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestMerchantUpdateProductPartialPayload(t *testing.T) {
	svc := &stubAuthoring{}
	handler := MerchantUpdateProduct(svc, nil)

	router := chi.NewRouter()
	router.Patch("/merchant/products/{id}", handler)

	req := withMerchant(httptest.NewRequest(http.MethodPatch, "/merchant/products/"+uuid.NewString(), strings.NewReader(`{"discount":25}`)))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	if svc.updateInput == nil || svc.updateInput.Discount == nil || *svc.updateInput.Discount != 25 {
		t.Fatalf("unexpected update input: %+v", svc.updateInput)
	}
	if svc.updateInput.Price != nil {
		t.Fatal("expected untouched price to stay nil")
	}
}

func TestMerchantDeleteProduct(t *testing.T) {
	svc := &stubAuthoring{}
	handler := MerchantDeleteProduct(svc, nil)

	router := chi.NewRouter()
	router.Delete("/merchant/products/{id}", handler)

	productID := uuid.New()
	req := withMerchant(httptest.NewRequest(http.MethodDelete, "/merchant/products/"+productID.String(), nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.deletedID != productID {
		t.Fatalf("unexpected deleted id: %s", svc.deletedID)
	}
}
