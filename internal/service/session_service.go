// Package service 提供游客会话令牌的签发与验证。
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/config"
	"github.com/MorseWayne/lens_store/internal/domain"
)

// 会话令牌相关错误定义
var (
	ErrInvalidToken  = errors.New("invalid session token")
	ErrTokenExpired  = errors.New("session token expired")
	ErrTokenNotReady = errors.New("session token used before valid")
)

// SessionClaims 定义会话令牌载荷结构
// 继承jwt.RegisteredClaims以获得标准声明字段
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// SessionService 定义游客会话业务逻辑接口
// 会话仅用于隔离购物车/收藏夹归属，不代表任何用户身份；
// 没有用户存储，也不验证凭据
type SessionService interface {
	// Issue 签发一个新的游客会话令牌
	Issue() (*domain.SessionResponse, error)

	// Validate 验证令牌并返回其中的会话ID
	Validate(tokenString string) (string, error)
}

// sessionService 实现SessionService接口
type sessionService struct {
	config *config.Config
	logger *zap.Logger
}

// NewSessionService 创建会话服务实例
func NewSessionService(cfg *config.Config, logger *zap.Logger) SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sessionService{config: cfg, logger: logger}
}

// Issue 签发游客会话令牌
func (s *sessionService) Issue() (*domain.SessionResponse, error) {
	now := time.Now()
	sessionID := uuid.New().String()
	expiresAt := now.Add(s.config.Session.TTL)

	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.App.Name,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Session.Secret))
	if err != nil {
		s.logger.Error("failed to sign session token", zap.Error(err))
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.Info("guest session issued",
		zap.String("session_id", sessionID),
		zap.Duration("ttl", s.config.Session.TTL),
	)

	return &domain.SessionResponse{
		Token:     tokenString,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate 验证令牌并返回会话ID
func (s *sessionService) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Session.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return "", ErrTokenNotReady
		}
		s.logger.Warn("session token validation failed", zap.Error(err))
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	// 验证发行者
	if claims.Issuer != s.config.App.Name {
		s.logger.Warn("session token issuer mismatch",
			zap.String("expected", s.config.App.Name),
			zap.String("actual", claims.Issuer),
		)
		return "", ErrInvalidToken
	}

	if claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}
