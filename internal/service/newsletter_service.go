// Package service 实现邮件订阅业务逻辑。
package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/domain"
	"github.com/MorseWayne/lens_store/internal/repo"
)

// 订阅相关错误定义
var (
	ErrInvalidEmail = errors.New("invalid email address")
)

// NewsletterService 定义邮件订阅业务逻辑接口
type NewsletterService interface {
	// Subscribe 订阅邮件列表；重复订阅是幂等的，返回已有记录
	Subscribe(email string) (*domain.NewsletterSubscription, error)

	// Unsubscribe 退订邮件列表
	Unsubscribe(email string) error

	// List 分页查询订阅记录
	List(offset, limit int) ([]*domain.NewsletterSubscription, int64, error)
}

// newsletterService 实现NewsletterService接口
type newsletterService struct {
	repo   repo.NewsletterRepository
	logger *zap.Logger
}

// NewNewsletterService 创建邮件订阅服务实例
func NewNewsletterService(r repo.NewsletterRepository, logger *zap.Logger) NewsletterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &newsletterService{repo: r, logger: logger}
}

// Subscribe 订阅邮件列表
func (s *newsletterService) Subscribe(email string) (*domain.NewsletterSubscription, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	// 检查是否已订阅，重复订阅直接返回已有记录
	existing, err := s.repo.GetByEmail(normalized)
	if err != nil {
		return nil, fmt.Errorf("check existing subscription: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	sub := &domain.NewsletterSubscription{Email: normalized}
	if err := s.repo.Create(sub); err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	s.logger.Info("newsletter subscription created", zap.Int64("id", sub.ID))
	return sub, nil
}

// Unsubscribe 退订邮件列表
func (s *newsletterService) Unsubscribe(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	return s.repo.Delete(normalized)
}

// List 分页查询订阅记录
func (s *newsletterService) List(offset, limit int) ([]*domain.NewsletterSubscription, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.List(offset, limit)
}

// normalizeEmail 校验并归一化邮箱地址
func normalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(strings.ToLower(email))
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}
