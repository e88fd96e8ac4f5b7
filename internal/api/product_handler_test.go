package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/catalog"
	"github.com/MorseWayne/lens_store/internal/domain"
	"github.com/MorseWayne/lens_store/internal/service"
)

func newTestProductHandler(t *testing.T) *ProductHandler {
	t.Helper()
	cat, err := catalog.New([]domain.Product{
		{
			ID: 1, Name: "Round Frame", Description: "Classic round frame",
			Type: "Eyeglasses", Collection: "Heritage", Material: "Cellulose Acetate",
			Sizes: []string{"50mm", "52mm"}, Colors: []string{"Black", "Tortoise"},
			Price: 485, ColorCount: 2,
		},
		{
			ID: 2, Name: "Aviator", Description: "Timeless aviator",
			Type: "Sunglasses", Collection: "Premium", Material: "Stainless Steel",
			Sizes: []string{"54mm"}, Colors: []string{"Gold"},
			Price: 595, ColorCount: 1,
		},
	}, map[string][]int64{"new-arrivals": {1, 2}, "coming-soon": {}})
	if err != nil {
		t.Fatalf("catalog.New() unexpected error = %v", err)
	}
	return NewProductHandler(service.NewProductService(cat), zap.NewNop())
}

func TestProductHandler_ListProducts(t *testing.T) {
	handler := newTestProductHandler(t)

	tests := []struct {
		name      string
		target    string
		wantTotal float64
	}{
		{"no filters", "/api/v1/products", 2},
		{"type filter", "/api/v1/products?type=Sunglasses", 1},
		{"all sentinel", "/api/v1/products?type=All", 2},
		{"comma separated values", "/api/v1/products?type=Eyeglasses,Sunglasses", 2},
		{"narrowing combination", "/api/v1/products?type=Eyeglasses&color=Gold", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			w := httptest.NewRecorder()
			handler.ListProducts(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("ListProducts() status = %d, want %d", w.Code, http.StatusOK)
			}

			envelope := decodeEnvelope(t, w.Body.Bytes())
			data, ok := envelope["data"].(map[string]interface{})
			if !ok {
				t.Fatalf("ListProducts() invalid response data: %v", envelope)
			}
			if total, _ := data["total"].(float64); total != tt.wantTotal {
				t.Errorf("ListProducts() total = %v, want %v", total, tt.wantTotal)
			}
		})
	}
}

func TestProductHandler_SearchProducts(t *testing.T) {
	handler := newTestProductHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/products/search?q=round", nil)
	w := httptest.NewRecorder()
	handler.SearchProducts(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("SearchProducts() status = %d, want %d", w.Code, http.StatusOK)
	}
	envelope := decodeEnvelope(t, w.Body.Bytes())
	data, _ := envelope["data"].(map[string]interface{})
	if total, _ := data["total"].(float64); total != 1 {
		t.Errorf("SearchProducts() total = %v, want 1", total)
	}
}

func TestProductHandler_SearchProductsBlankKeyword(t *testing.T) {
	handler := newTestProductHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/products/search?q=%20%20", nil)
	w := httptest.NewRecorder()
	handler.SearchProducts(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("SearchProducts() status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestProductHandler_GetProduct(t *testing.T) {
	handler := newTestProductHandler(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"existing product", "/api/v1/products/1", http.StatusOK},
		{"unknown product", "/api/v1/products/999", http.StatusNotFound},
		{"non numeric id", "/api/v1/products/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			w := httptest.NewRecorder()
			handler.GetProduct(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("GetProduct() status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestProductHandler_FilterOptions(t *testing.T) {
	handler := newTestProductHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/products/filters", nil)
	w := httptest.NewRecorder()
	handler.FilterOptions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("FilterOptions() status = %d, want %d", w.Code, http.StatusOK)
	}
	envelope := decodeEnvelope(t, w.Body.Bytes())
	data, _ := envelope["data"].(map[string]interface{})
	types, _ := data["types"].([]interface{})
	if len(types) != 2 {
		t.Errorf("FilterOptions() types = %v, want 2 entries", types)
	}
}

func TestProductHandler_Collection(t *testing.T) {
	handler := newTestProductHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/collections/new-arrivals", nil)
	w := httptest.NewRecorder()
	handler.Collection(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Collection() status = %d, want %d", w.Code, http.StatusOK)
	}
	envelope := decodeEnvelope(t, w.Body.Bytes())
	data, _ := envelope["data"].(map[string]interface{})
	if total, _ := data["total"].(float64); total != 2 {
		t.Errorf("Collection() total = %v, want 2", total)
	}
}

func TestProductHandler_CollectionDefinedButEmpty(t *testing.T) {
	handler := newTestProductHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/collections/coming-soon", nil)
	w := httptest.NewRecorder()
	handler.Collection(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Collection() status = %d, want %d", w.Code, http.StatusOK)
	}
	envelope := decodeEnvelope(t, w.Body.Bytes())
	data, _ := envelope["data"].(map[string]interface{})
	if total, _ := data["total"].(float64); total != 0 {
		t.Errorf("Collection() total = %v, want 0", total)
	}
}

func TestProductHandler_CollectionNotFound(t *testing.T) {
	handler := newTestProductHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/collections/unknown", nil)
	w := httptest.NewRecorder()
	handler.Collection(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Collection() status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
