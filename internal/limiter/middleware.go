// Package limiter 限流中间件实现
package limiter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	mw "github.com/MorseWayne/lens_store/internal/middleware"
	"github.com/MorseWayne/lens_store/internal/resp"
)

// MiddlewareConfig 中间件配置
type MiddlewareConfig struct {
	// 限流器
	Limiter Limiter

	// Key生成函数
	KeyGenerator func(*gin.Context) string

	// 错误处理函数
	ErrorHandler func(*gin.Context, error)

	// 限流回调函数
	OnLimitReached func(*gin.Context, *LimitResult)

	// 是否跳过限流检查
	Skip func(*gin.Context) bool

	// 响应头配置
	Headers *HeaderConfig
}

// HeaderConfig 响应头配置
type HeaderConfig struct {
	// 是否添加限流头
	Enable bool

	// 限流相关头名称
	LimitHeader      string // X-RateLimit-Limit
	RemainingHeader  string // X-RateLimit-Remaining
	RetryAfterHeader string // Retry-After
}

// DefaultHeaderConfig 默认头配置
func DefaultHeaderConfig() *HeaderConfig {
	return &HeaderConfig{
		Enable:           true,
		LimitHeader:      "X-RateLimit-Limit",
		RemainingHeader:  "X-RateLimit-Remaining",
		RetryAfterHeader: "Retry-After",
	}
}

// DefaultKeyGenerator 默认Key生成器（基于IP）
func DefaultKeyGenerator(c *gin.Context) string {
	return fmt.Sprintf("global:%s", c.ClientIP())
}

// SessionKeyGenerator 会话Key生成器
func SessionKeyGenerator(c *gin.Context) string {
	sessionID := c.GetString("session_id")
	if sessionID != "" {
		return fmt.Sprintf("session:%s", sessionID)
	}
	return fmt.Sprintf("ip:%s", c.ClientIP())
}

// PathKeyGenerator 路径Key生成器
func PathKeyGenerator(c *gin.Context) string {
	return fmt.Sprintf("path:%s:%s", c.Request.Method, c.FullPath())
}

// CombinedKeyGenerator 组合Key生成器
func CombinedKeyGenerator(generators ...func(*gin.Context) string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		var parts []string
		for _, gen := range generators {
			parts = append(parts, gen(c))
		}
		return strings.Join(parts, ":")
	}
}

// RateLimitMiddleware 创建限流中间件
func RateLimitMiddleware(config *MiddlewareConfig) gin.HandlerFunc {
	// 未配置限流器时直接放行
	if config.Limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}

	// 设置默认值
	if config.KeyGenerator == nil {
		config.KeyGenerator = DefaultKeyGenerator
	}

	if config.ErrorHandler == nil {
		config.ErrorHandler = defaultErrorHandler
	}

	if config.OnLimitReached == nil {
		config.OnLimitReached = defaultOnLimitReached
	}

	if config.Headers == nil {
		config.Headers = DefaultHeaderConfig()
	}

	return func(c *gin.Context) {
		// 检查是否跳过限流
		if config.Skip != nil && config.Skip(c) {
			c.Next()
			return
		}

		// 生成限流Key
		key := config.KeyGenerator(c)

		// 执行限流检查
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := config.Limiter.Allow(ctx, key)
		if err != nil {
			config.ErrorHandler(c, err)
			return
		}

		// 设置响应头
		if config.Headers.Enable {
			setRateLimitHeaders(c, result, config.Headers)
		}

		// 检查是否被限流
		if !result.Allowed {
			config.OnLimitReached(c, result)
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders 设置限流相关的响应头
func setRateLimitHeaders(c *gin.Context, result *LimitResult, headers *HeaderConfig) {
	if headers.RemainingHeader != "" {
		c.Header(headers.RemainingHeader, strconv.FormatInt(result.Remaining, 10))
	}

	if headers.RetryAfterHeader != "" && result.RetryAfter > 0 {
		c.Header(headers.RetryAfterHeader, strconv.FormatInt(int64(result.RetryAfter.Seconds()), 10))
	}
}

// defaultErrorHandler 默认错误处理器
func defaultErrorHandler(c *gin.Context, err error) {
	requestID := c.GetString("request_id")
	traceID := c.GetString("trace_id")
	resp.Error(c.Writer, http.StatusInternalServerError, resp.CodeInternalError, "限流服务异常", requestID, traceID)
}

// defaultOnLimitReached 默认限流回调
func defaultOnLimitReached(c *gin.Context, result *LimitResult) {
	requestID := c.GetString("request_id")
	traceID := c.GetString("trace_id")

	resp.Error(c.Writer, http.StatusTooManyRequests, resp.CodeTooManyReqs,
		"请求过于频繁，请稍后重试", requestID, traceID)
}

// APIRateLimitMiddleware API接口限流中间件
func APIRateLimitMiddleware(limiter Limiter) gin.HandlerFunc {
	config := &MiddlewareConfig{
		Limiter: limiter,
		KeyGenerator: func(c *gin.Context) string {
			// 基于会话ID + 接口路径
			sessionID := c.GetString("session_id")
			path := c.FullPath()
			if sessionID != "" {
				return fmt.Sprintf("api:session:%s:path:%s", sessionID, path)
			}
			return fmt.Sprintf("api:ip:%s:path:%s", c.ClientIP(), path)
		},
		Headers: DefaultHeaderConfig(),
	}

	return RateLimitMiddleware(config)
}

// HTTPRateLimitMiddleware 标准库版限流中间件
// 购物车与收藏夹的写接口按会话ID限流，没有会话时退化为按IP限流
func HTTPRateLimitMiddleware(limiter Limiter, prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := mw.SessionIDFromContext(r.Context())
			if key == "" {
				key = clientIP(r)
			}

			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()

			result, err := limiter.Allow(ctx, fmt.Sprintf("%s:%s", prefix, key))
			reqID := mw.RequestIDFromContext(r.Context())
			if err != nil {
				resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "rate limiter unavailable", reqID, "")
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
			if !result.Allowed {
				if result.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.FormatInt(int64(result.RetryAfter.Seconds()), 10))
				}
				resp.Error(w, http.StatusTooManyRequests, resp.CodeTooManyReqs, "too many requests", reqID, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP 提取客户端IP，优先取代理头
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	host := r.RemoteAddr
	if idx := strings.LastIndexByte(host, ':'); idx > 0 {
		host = host[:idx]
	}
	return host
}
