// Package api 提供购物车相关的HTTP API处理器实现。
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/domain"
	"github.com/MorseWayne/lens_store/internal/middleware"
	"github.com/MorseWayne/lens_store/internal/resp"
	"github.com/MorseWayne/lens_store/internal/service"
)

// CartHandler 购物车相关的HTTP处理器
// 所有接口按会话ID隔离，会话ID由认证中间件注入上下文
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler 创建购物车处理器实例
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// GetCart 获取购物车内容
// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	cart, err := h.cartService.Cart(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("get cart failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "get cart failed", reqID, "")
		return
	}

	resp.OK(w, cart, reqID, "")
}

// AddToCart 加入购物车
// POST /api/v1/cart/items
// 相同商品+颜色+尺码的条目会合并数量，而不是新增条目
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	var req domain.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if err := validateAddToCartRequest(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, err.Error(), reqID, "")
		return
	}

	cart, err := h.cartService.AddToCart(r.Context(), sessionID, &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}

		h.logger.Error("add to cart failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "add to cart failed", reqID, "")
		return
	}

	resp.OK(w, cart, reqID, "")
}

// UpdateQuantity 更新购物车条目数量
// PUT /api/v1/cart/items
// 数量小于等于0时等价于删除该条目
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	var req domain.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if req.ProductID <= 0 {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "product_id is required", reqID, "")
		return
	}

	cart, err := h.cartService.UpdateQuantity(r.Context(), sessionID, &req)
	if err != nil {
		h.logger.Error("update quantity failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "update quantity failed", reqID, "")
		return
	}

	resp.OK(w, cart, reqID, "")
}

// RemoveFromCart 删除购物车条目
// DELETE /api/v1/cart/items
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	var req domain.RemoveFromCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if req.ProductID <= 0 {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "product_id is required", reqID, "")
		return
	}

	cart, err := h.cartService.RemoveFromCart(r.Context(), sessionID, req.ProductID, req.Color, req.Size)
	if err != nil {
		h.logger.Error("remove from cart failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "remove from cart failed", reqID, "")
		return
	}

	resp.OK(w, cart, reqID, "")
}

// ClearCart 清空购物车
// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := middleware.SessionIDFromContext(r.Context())

	if err := h.cartService.ClearCart(r.Context(), sessionID); err != nil {
		h.logger.Error("clear cart failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "clear cart failed", reqID, "")
		return
	}

	cleared := map[string]any{"cleared": true}
	resp.OK(w, &cleared, reqID, "")
}

// validateAddToCartRequest 校验加购请求
func validateAddToCartRequest(req *domain.AddToCartRequest) error {
	if req.ProductID <= 0 {
		return errInvalidProductID
	}
	if req.Color == "" {
		return errColorRequired
	}
	if req.Size == "" {
		return errSizeRequired
	}
	return nil
}
