// Package domain 定义订阅与认证表单相关的领域模型。
package domain

import "time"

// NewsletterSubscription 表示一条邮件订阅记录
type NewsletterSubscription struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscribeRequest 表示订阅请求
type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// AuthFormRequest 表示认证表单提交
// 表单只做采集与记录，不校验凭据、不落库密码
type AuthFormRequest struct {
	Mode     string `json:"mode" binding:"required"` // signin | signup
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// SessionResponse 表示会话签发响应
type SessionResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
