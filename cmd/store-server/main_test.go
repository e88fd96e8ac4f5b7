package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/api"
	"github.com/MorseWayne/lens_store/internal/catalog"
	"github.com/MorseWayne/lens_store/internal/config"
	"github.com/MorseWayne/lens_store/internal/panel"
	"github.com/MorseWayne/lens_store/internal/resp"
	"github.com/MorseWayne/lens_store/internal/service"
	"github.com/MorseWayne/lens_store/internal/snapshot"
)

func TestHealthz_OK(t *testing.T) {
	// Build a minimal mux identical to main's handler for /healthz
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		data := map[string]any{
			"status":  "ok",
			"version": "test",
		}
		resp.OK(w, &data, "test-req", "")
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rw := httptest.NewRecorder()
	mux.ServeHTTP(rw, req)

	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}
	var body struct {
		Code    int               `json:"code"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rw.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Code != 0 || body.Data["status"] != "ok" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func newTestDependencies(t *testing.T, cfg *config.Config) *AppDependencies {
	t.Helper()

	cat := catalog.Default()
	snapshots := snapshot.NewMemoryStore()
	lg := zap.NewNop()

	sessionService := service.NewSessionService(cfg, lg)
	return &AppDependencies{
		ProductHandler:    api.NewProductHandler(service.NewProductService(cat), lg),
		CartHandler:       api.NewCartHandler(service.NewCartService(cat, snapshots, lg), lg),
		FavoritesHandler:  api.NewFavoritesHandler(service.NewFavoritesService(cat, snapshots, lg), lg),
		PanelHandler:      api.NewPanelHandler(panel.NewCoordinator(), lg),
		SessionHandler:    api.NewSessionHandler(sessionService, lg),
		NewsletterHandler: api.NewNewsletterHandler(nil, lg),
		SessionService:    sessionService,
	}
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "lens-store"
	cfg.App.Env = "test"
	cfg.App.Version = "test"
	cfg.App.RequestTimeout = 5 * time.Second
	cfg.Session.Secret = "test-secret"
	cfg.Session.TTL = time.Hour

	deps := newTestDependencies(t, cfg)
	handler := setupRoutes(cfg, deps, zap.NewNop())

	session, err := deps.SessionService.Issue()
	if err != nil {
		t.Fatalf("Issue() unexpected error = %v", err)
	}
	authHeader := "Bearer " + session.Token

	tests := []struct {
		name       string
		method     string
		target     string
		auth       bool
		wantStatus int
	}{
		{"get session", http.MethodGet, "/api/v1/session", false, http.StatusMethodNotAllowed},
		{"put auth form", http.MethodPut, "/api/v1/auth/form", false, http.StatusMethodNotAllowed},
		{"post product list", http.MethodPost, "/api/v1/products", false, http.StatusMethodNotAllowed},
		{"post product search", http.MethodPost, "/api/v1/products/search", false, http.StatusMethodNotAllowed},
		{"post filter options", http.MethodPost, "/api/v1/products/filters", false, http.StatusMethodNotAllowed},
		{"delete product", http.MethodDelete, "/api/v1/products/1", false, http.StatusMethodNotAllowed},
		{"post collection", http.MethodPost, "/api/v1/collections/new-arrivals", false, http.StatusMethodNotAllowed},
		{"post panel state", http.MethodPost, "/api/v1/panels", true, http.StatusMethodNotAllowed},
		{"get panel open", http.MethodGet, "/api/v1/panels/open", true, http.StatusMethodNotAllowed},
		{"get panel state still works", http.MethodGet, "/api/v1/panels", true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.auth {
				req.Header.Set("Authorization", authHeader)
			}
			rw := httptest.NewRecorder()
			handler.ServeHTTP(rw, req)

			if rw.Code != tt.wantStatus {
				t.Errorf("%s %s status = %d, want %d", tt.method, tt.target, rw.Code, tt.wantStatus)
			}
		})
	}
}
