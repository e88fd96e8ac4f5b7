// Package api 提供界面浮层状态的HTTP API处理器实现。
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/middleware"
	"github.com/MorseWayne/lens_store/internal/panel"
	"github.com/MorseWayne/lens_store/internal/resp"
)

// panelRequest 浮层操作请求体
type panelRequest struct {
	PanelID string `json:"panel_id"`
}

// PanelHandler 浮层状态相关的HTTP处理器
// 同一会话任意时刻最多一个浮层处于打开状态
type PanelHandler struct {
	coordinator *panel.Coordinator
	logger      *zap.Logger
}

// NewPanelHandler 创建浮层处理器实例
func NewPanelHandler(coordinator *panel.Coordinator, logger *zap.Logger) *PanelHandler {
	return &PanelHandler{
		coordinator: coordinator,
		logger:      logger,
	}
}

// GetState 获取当前打开的浮层
// GET /api/v1/panels
func (h *PanelHandler) GetState(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	state := map[string]any{"active": h.coordinator.Active(sessionID)}
	resp.OK(w, &state, reqID, "")
}

// Open 打开浮层，同会话已打开的其他浮层会被自动关闭
// POST /api/v1/panels/open
func (h *PanelHandler) Open(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	var req panelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PanelID == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "panel_id is required", reqID, "")
		return
	}

	closed := h.coordinator.Activate(sessionID, req.PanelID)
	state := map[string]any{
		"active": req.PanelID,
		"closed": closed,
	}
	resp.OK(w, &state, reqID, "")
}

// Close 关闭浮层；只有该浮层当前处于打开状态时才生效
// POST /api/v1/panels/close
func (h *PanelHandler) Close(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	var req panelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PanelID == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "panel_id is required", reqID, "")
		return
	}

	closed := h.coordinator.Deactivate(sessionID, req.PanelID)
	state := map[string]any{
		"closed": closed,
		"active": h.coordinator.Active(sessionID),
	}
	resp.OK(w, &state, reqID, "")
}

// CloseAll 关闭会话中所有浮层
// POST /api/v1/panels/close-all
func (h *PanelHandler) CloseAll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	h.coordinator.DeactivateAll(sessionID)
	state := map[string]any{"active": ""}
	resp.OK(w, &state, reqID, "")
}
