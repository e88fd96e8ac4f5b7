// Package api 提供邮件订阅相关的HTTP API处理器
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/domain"
	"github.com/MorseWayne/lens_store/internal/repo"
	"github.com/MorseWayne/lens_store/internal/resp"
	"github.com/MorseWayne/lens_store/internal/service"
)

// NewsletterHandler 邮件订阅API处理器
type NewsletterHandler struct {
	newsletterService service.NewsletterService
	logger            *zap.Logger
}

// NewNewsletterHandler 创建邮件订阅API处理器
func NewNewsletterHandler(newsletterService service.NewsletterService, logger *zap.Logger) *NewsletterHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &NewsletterHandler{
		newsletterService: newsletterService,
		logger:            logger,
	}
}

// Subscribe 订阅邮件列表
// @Summary 订阅邮件列表
// @Description 提交邮箱地址订阅新品与促销通知，重复订阅幂等
// @Tags 邮件订阅
// @Accept json
// @Produce json
// @Param request body domain.SubscribeRequest true "订阅请求"
// @Success 200 {object} resp.Response[domain.NewsletterSubscription] "成功"
// @Failure 400 {object} resp.Response[any] "请求参数错误"
// @Failure 500 {object} resp.Response[any] "服务器内部错误"
// @Router /api/v1/newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req domain.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("参数绑定失败", zap.Error(err))
		resp.Error(c.Writer, http.StatusBadRequest, resp.CodeInvalidParam,
			"请求参数格式错误", h.getRequestID(c), h.getTraceID(c))
		return
	}

	sub, err := h.newsletterService.Subscribe(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			resp.Error(c.Writer, http.StatusBadRequest, resp.CodeInvalidParam,
				"邮箱地址无效", h.getRequestID(c), h.getTraceID(c))
			return
		}

		h.logger.Error("订阅失败", zap.Error(err))
		resp.Error(c.Writer, http.StatusInternalServerError, resp.CodeInternalError,
			"订阅失败", h.getRequestID(c), h.getTraceID(c))
		return
	}

	resp.OK(c.Writer, sub, h.getRequestID(c), h.getTraceID(c))
}

// Unsubscribe 退订邮件列表
// @Summary 退订邮件列表
// @Router /api/v1/newsletter/subscribe [delete]
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req domain.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("参数绑定失败", zap.Error(err))
		resp.Error(c.Writer, http.StatusBadRequest, resp.CodeInvalidParam,
			"请求参数格式错误", h.getRequestID(c), h.getTraceID(c))
		return
	}

	if err := h.newsletterService.Unsubscribe(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			resp.Error(c.Writer, http.StatusBadRequest, resp.CodeInvalidParam,
				"邮箱地址无效", h.getRequestID(c), h.getTraceID(c))
		case errors.Is(err, repo.ErrSubscriptionNotFound):
			resp.Error(c.Writer, http.StatusNotFound, resp.CodeNotFound,
				"订阅不存在", h.getRequestID(c), h.getTraceID(c))
		default:
			h.logger.Error("退订失败", zap.Error(err))
			resp.Error(c.Writer, http.StatusInternalServerError, resp.CodeInternalError,
				"退订失败", h.getRequestID(c), h.getTraceID(c))
		}
		return
	}

	result := map[string]any{"unsubscribed": true}
	resp.OK(c.Writer, &result, h.getRequestID(c), h.getTraceID(c))
}

// ListSubscriptions 查询订阅列表
// @Summary 查询订阅列表
// @Router /api/v1/newsletter/subscriptions [get]
func (h *NewsletterHandler) ListSubscriptions(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	subs, total, err := h.newsletterService.List(offset, limit)
	if err != nil {
		h.logger.Error("查询订阅列表失败", zap.Error(err))
		resp.Error(c.Writer, http.StatusInternalServerError, resp.CodeInternalError,
			"查询订阅列表失败", h.getRequestID(c), h.getTraceID(c))
		return
	}

	result := map[string]any{
		"subscriptions": subs,
		"total":         total,
	}
	resp.OK(c.Writer, &result, h.getRequestID(c), h.getTraceID(c))
}

// getRequestID 获取请求ID
func (h *NewsletterHandler) getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// getTraceID 获取追踪ID
func (h *NewsletterHandler) getTraceID(c *gin.Context) string {
	if traceID, exists := c.Get("trace_id"); exists {
		if id, ok := traceID.(string); ok {
			return id
		}
	}
	return ""
}
