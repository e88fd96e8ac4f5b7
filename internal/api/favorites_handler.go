// Package api 提供收藏夹相关的HTTP API处理器实现。
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/domain"
	"github.com/MorseWayne/lens_store/internal/middleware"
	"github.com/MorseWayne/lens_store/internal/resp"
	"github.com/MorseWayne/lens_store/internal/service"
)

// FavoritesHandler 收藏夹相关的HTTP处理器
type FavoritesHandler struct {
	favoritesService service.FavoritesService
	logger           *zap.Logger
}

// NewFavoritesHandler 创建收藏夹处理器实例
func NewFavoritesHandler(favoritesService service.FavoritesService, logger *zap.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		favoritesService: favoritesService,
		logger:           logger,
	}
}

// ListFavorites 获取收藏列表
// GET /api/v1/favorites
func (h *FavoritesHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	favorites, err := h.favoritesService.Favorites(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("list favorites failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "list favorites failed", reqID, "")
		return
	}

	resp.OK(w, favorites, reqID, "")
}

// AddFavorite 添加收藏
// POST /api/v1/favorites
// 重复添加是幂等的，保留首次收藏时间
func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	var req domain.AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if req.ProductID <= 0 {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "product_id must be positive", reqID, "")
		return
	}

	favorites, err := h.favoritesService.Add(r.Context(), sessionID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}

		h.logger.Error("add favorite failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "add favorite failed", reqID, "")
		return
	}

	resp.OK(w, favorites, reqID, "")
}

// RemoveFavorite 取消收藏
// DELETE /api/v1/favorites/{product_id}
func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	productID, ok := productIDFromPath(r.URL.Path)
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product ID", reqID, "")
		return
	}

	favorites, err := h.favoritesService.Remove(r.Context(), sessionID, productID)
	if err != nil {
		h.logger.Error("remove favorite failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "remove favorite failed", reqID, "")
		return
	}

	resp.OK(w, favorites, reqID, "")
}

// ToggleFavorite 切换收藏状态
// POST /api/v1/favorites/toggle
// 已收藏则取消，未收藏则添加；商品不存在时不做任何修改
func (h *FavoritesHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	var req domain.ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if req.ProductID <= 0 {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "product_id must be positive", reqID, "")
		return
	}

	favorited, favorites, err := h.favoritesService.Toggle(r.Context(), sessionID, req.ProductID)
	if err != nil {
		h.logger.Error("toggle favorite failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "toggle favorite failed", reqID, "")
		return
	}

	result := map[string]any{
		"favorited": favorited,
		"favorites": favorites.Favorites,
		"total":     favorites.Total,
	}
	resp.OK(w, &result, reqID, "")
}

// ClearFavorites 清空收藏夹
// DELETE /api/v1/favorites
func (h *FavoritesHandler) ClearFavorites(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	if err := h.favoritesService.Clear(r.Context(), sessionID); err != nil {
		h.logger.Error("clear favorites failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "clear favorites failed", reqID, "")
		return
	}

	cleared := map[string]any{"cleared": true}
	resp.OK(w, &cleared, reqID, "")
}

// productIDFromPath 从 /api/v1/favorites/{product_id} 提取商品ID
func productIDFromPath(path string) (int64, bool) {
	parts := strings.Split(path, "/")
	if len(parts) < 5 {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
