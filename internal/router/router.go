// Package router 提供基于Gin的邮件订阅路由设置
package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/api"
	"github.com/MorseWayne/lens_store/internal/config"
	"github.com/MorseWayne/lens_store/internal/limiter"
	"github.com/MorseWayne/lens_store/internal/middleware"
)

// Dependencies 包含路由设置所需的所有依赖
type Dependencies struct {
	NewsletterHandler *api.NewsletterHandler
	APILimiter        limiter.Limiter
}

// Router 路由器接口
type Router interface {
	Setup(cfg *config.Config, deps *Dependencies, lg *zap.Logger) http.Handler
}

// GinRouter Gin路由器实现
type GinRouter struct {
	engine *gin.Engine
	deps   *Dependencies
	logger *zap.Logger
}

// New 创建新的路由器实例
func New() Router {
	return &GinRouter{}
}

// Setup 设置路由和中间件
func (r *GinRouter) Setup(cfg *config.Config, deps *Dependencies, lg *zap.Logger) http.Handler {
	// 根据环境设置 Gin 模式
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r.engine = gin.New()
	r.deps = deps
	r.logger = lg

	// 设置中间件
	r.engine.Use(gin.Recovery())
	r.engine.Use(r.ginLogger())
	r.engine.Use(r.requestIDMiddleware())

	// 设置路由
	r.setupRoutes()

	return r.engine
}

// setupRoutes 设置邮件订阅路由
func (r *GinRouter) setupRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		newsletter := v1.Group("/newsletter")
		{
			// 订阅（写接口，带限流与幂等键）
			newsletter.POST("/subscribe",
				limiter.APIRateLimitMiddleware(r.deps.APILimiter),
				middleware.IdempotencyMiddleware(),
				r.deps.NewsletterHandler.Subscribe)

			// 退订
			newsletter.DELETE("/subscribe",
				limiter.APIRateLimitMiddleware(r.deps.APILimiter),
				r.deps.NewsletterHandler.Unsubscribe)

			// 订阅列表
			newsletter.GET("/subscriptions",
				limiter.APIRateLimitMiddleware(r.deps.APILimiter),
				r.deps.NewsletterHandler.ListSubscriptions)
		}
	}
}

// requestIDMiddleware 将请求ID注入Gin上下文，供处理器和限流器读取
func (r *GinRouter) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(middleware.HeaderRequestID)
		if strings.TrimSpace(rid) == "" {
			rid = uuid.New().String()
		}
		c.Header(middleware.HeaderRequestID, rid)
		c.Set("request_id", rid)
		c.Next()
	}
}

// ginLogger 自定义 Gin 日志中间件
func (r *GinRouter) ginLogger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	})
}
