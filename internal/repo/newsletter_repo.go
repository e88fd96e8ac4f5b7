// Package repo 提供数据访问层实现，负责与数据库交互。
// 仓储模式（Repository Pattern）将数据访问逻辑与业务逻辑分离，
// 使得业务逻辑不依赖于具体的数据存储实现。
package repo

import (
	"database/sql"
	"fmt"

	"github.com/MorseWayne/lens_store/internal/database"
	"github.com/MorseWayne/lens_store/internal/domain"
)

// NewsletterRepository 定义邮件订阅数据访问接口
// 使用接口可以方便单元测试时进行模拟（mock）
type NewsletterRepository interface {
	Create(sub *domain.NewsletterSubscription) error
	GetByEmail(email string) (*domain.NewsletterSubscription, error)
	List(offset, limit int) ([]*domain.NewsletterSubscription, int64, error)
	Delete(email string) error
}

// newsletterRepo 是 NewsletterRepository 接口的数据库实现
type newsletterRepo struct {
	db *database.DB
}

// NewNewsletterRepository 创建邮件订阅仓储实例
func NewNewsletterRepository(db *database.DB) NewsletterRepository {
	return &newsletterRepo{db: db}
}

// Create 创建新订阅记录
func (r *newsletterRepo) Create(sub *domain.NewsletterSubscription) error {
	query := `
		INSERT INTO newsletter_subscriptions (email)
		VALUES (?)
	`

	result, err := r.db.Exec(query, sub.Email)
	if err != nil {
		return fmt.Errorf("create newsletter subscription: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	sub.ID = id
	return nil
}

// GetByEmail 根据邮箱查询订阅记录
func (r *newsletterRepo) GetByEmail(email string) (*domain.NewsletterSubscription, error) {
	sub := &domain.NewsletterSubscription{}
	query := `
		SELECT id, email, created_at
		FROM newsletter_subscriptions WHERE email = ?
	`

	err := r.db.QueryRow(query, email).Scan(
		&sub.ID,
		&sub.Email,
		&sub.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // 订阅不存在
		}
		return nil, fmt.Errorf("get subscription by email: %w", err)
	}

	return sub, nil
}

// List 分页查询订阅记录
func (r *newsletterRepo) List(offset, limit int) ([]*domain.NewsletterSubscription, int64, error) {
	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM newsletter_subscriptions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}

	query := `
		SELECT id, email, created_at
		FROM newsletter_subscriptions
		ORDER BY id
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]*domain.NewsletterSubscription, 0, limit)
	for rows.Next() {
		sub := &domain.NewsletterSubscription{}
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate subscriptions: %w", err)
	}

	return subs, total, nil
}

// Delete 删除订阅记录（退订）
func (r *newsletterRepo) Delete(email string) error {
	result, err := r.db.Exec(`DELETE FROM newsletter_subscriptions WHERE email = ?`, email)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}
