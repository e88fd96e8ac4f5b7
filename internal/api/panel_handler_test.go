package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/panel"
)

func newTestPanelHandler() *PanelHandler {
	return NewPanelHandler(panel.NewCoordinator(), zap.NewNop())
}

func TestPanelHandler_OpenAndState(t *testing.T) {
	handler := newTestPanelHandler()

	req := newSessionRequest("POST", "/api/v1/panels/open", []byte(`{"panel_id":"mini-cart"}`))
	w := httptest.NewRecorder()
	handler.Open(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Open() status = %d, want %d", w.Code, http.StatusOK)
	}

	req = newSessionRequest("GET", "/api/v1/panels", nil)
	w = httptest.NewRecorder()
	handler.GetState(w, req)

	envelope := decodeEnvelope(t, w.Body.Bytes())
	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("GetState() invalid response data: %v", envelope)
	}
	if active, _ := data["active"].(string); active != "mini-cart" {
		t.Errorf("GetState() active = %q, want mini-cart", active)
	}
}

func TestPanelHandler_OpenReplacesPrevious(t *testing.T) {
	handler := newTestPanelHandler()

	req := newSessionRequest("POST", "/api/v1/panels/open", []byte(`{"panel_id":"menu"}`))
	handler.Open(httptest.NewRecorder(), req)

	req = newSessionRequest("POST", "/api/v1/panels/open", []byte(`{"panel_id":"mini-cart"}`))
	w := httptest.NewRecorder()
	handler.Open(w, req)

	envelope := decodeEnvelope(t, w.Body.Bytes())
	data, _ := envelope["data"].(map[string]interface{})
	if closed, _ := data["closed"].(string); closed != "menu" {
		t.Errorf("Open() closed = %q, want menu", closed)
	}
}

func TestPanelHandler_OpenMissingPanelID(t *testing.T) {
	handler := newTestPanelHandler()

	req := newSessionRequest("POST", "/api/v1/panels/open", []byte(`{}`))
	w := httptest.NewRecorder()
	handler.Open(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Open() status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestPanelHandler_Close(t *testing.T) {
	handler := newTestPanelHandler()

	req := newSessionRequest("POST", "/api/v1/panels/open", []byte(`{"panel_id":"menu"}`))
	handler.Open(httptest.NewRecorder(), req)

	req = newSessionRequest("POST", "/api/v1/panels/close", []byte(`{"panel_id":"menu"}`))
	w := httptest.NewRecorder()
	handler.Close(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Close() status = %d, want %d", w.Code, http.StatusOK)
	}

	req = newSessionRequest("GET", "/api/v1/panels", nil)
	w = httptest.NewRecorder()
	handler.GetState(w, req)

	envelope := decodeEnvelope(t, w.Body.Bytes())
	data, _ := envelope["data"].(map[string]interface{})
	if active, _ := data["active"].(string); active != "" {
		t.Errorf("GetState() active = %q after close, want empty", active)
	}
}

func TestPanelHandler_CloseAll(t *testing.T) {
	handler := newTestPanelHandler()

	req := newSessionRequest("POST", "/api/v1/panels/open", []byte(`{"panel_id":"menu"}`))
	handler.Open(httptest.NewRecorder(), req)

	req = newSessionRequest("POST", "/api/v1/panels/close-all", nil)
	w := httptest.NewRecorder()
	handler.CloseAll(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("CloseAll() status = %d, want %d", w.Code, http.StatusOK)
	}

	req = newSessionRequest("GET", "/api/v1/panels", nil)
	w = httptest.NewRecorder()
	handler.GetState(w, req)

	envelope := decodeEnvelope(t, w.Body.Bytes())
	data, _ := envelope["data"].(map[string]interface{})
	if active, _ := data["active"].(string); active != "" {
		t.Errorf("GetState() active = %q after close-all, want empty", active)
	}
}
