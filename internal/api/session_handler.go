// Package api 提供会话相关的HTTP API处理器实现。
package api

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/domain"
	"github.com/MorseWayne/lens_store/internal/middleware"
	"github.com/MorseWayne/lens_store/internal/resp"
	"github.com/MorseWayne/lens_store/internal/service"
)

// SessionHandler 会话相关的HTTP处理器
type SessionHandler struct {
	sessionService service.SessionService
	logger         *zap.Logger
}

// NewSessionHandler 创建会话处理器实例
func NewSessionHandler(sessionService service.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// CreateSession 签发游客会话
// POST /api/v1/session
// 会话仅用于隔离购物车与收藏夹的归属，不代表用户身份
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	session, err := h.sessionService.Issue()
	if err != nil {
		h.logger.Error("issue session failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "issue session failed", reqID, "")
		return
	}

	resp.OK(w, session, reqID, "")
}

// AuthForm 登录/注册表单受理
// POST /api/v1/auth/form
// 表单只做形状校验并签发游客会话；不存在用户库，不校验也不保存密码
func (h *SessionHandler) AuthForm(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req domain.AuthFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if err := validateAuthForm(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, err.Error(), reqID, "")
		return
	}

	// 密码字段绝不落日志
	h.logger.Info("auth form accepted",
		zap.String("request_id", reqID),
		zap.String("mode", req.Mode),
	)

	session, err := h.sessionService.Issue()
	if err != nil {
		h.logger.Error("issue session failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "issue session failed", reqID, "")
		return
	}

	resp.OK(w, session, reqID, "")
}

// validateAuthForm 校验登录/注册表单
func validateAuthForm(req *domain.AuthFormRequest) error {
	if req.Mode != "signin" && req.Mode != "signup" {
		return errInvalidAuthMode
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return errEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errEmailInvalid
	}
	if req.Password == "" {
		return errPasswordRequired
	}
	if req.Mode == "signup" && strings.TrimSpace(req.Name) == "" {
		return errNameRequired
	}
	return nil
}
