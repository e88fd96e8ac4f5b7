package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/api"
	"github.com/MorseWayne/lens_store/internal/catalog"
	"github.com/MorseWayne/lens_store/internal/config"
	"github.com/MorseWayne/lens_store/internal/database"
	"github.com/MorseWayne/lens_store/internal/limiter"
	"github.com/MorseWayne/lens_store/internal/logger"
	mw "github.com/MorseWayne/lens_store/internal/middleware"
	"github.com/MorseWayne/lens_store/internal/panel"
	"github.com/MorseWayne/lens_store/internal/repo"
	"github.com/MorseWayne/lens_store/internal/resp"
	"github.com/MorseWayne/lens_store/internal/router"
	"github.com/MorseWayne/lens_store/internal/service"
	"github.com/MorseWayne/lens_store/internal/snapshot"
)

// AppDependencies 包含应用的所有依赖
type AppDependencies struct {
	ProductHandler    *api.ProductHandler
	CartHandler       *api.CartHandler
	FavoritesHandler  *api.FavoritesHandler
	PanelHandler      *api.PanelHandler
	SessionHandler    *api.SessionHandler
	NewsletterHandler *api.NewsletterHandler
	SessionService    service.SessionService
	MutationLimiter   limiter.Limiter
	APILimiter        limiter.Limiter
}

// initConfigAndLogger 初始化配置和日志器
func initConfigAndLogger() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %v", err)
	}

	// init logger
	lg, err := logger.New(cfg.App.Env, cfg.Log.Level, cfg.Log.Encoding, cfg.App.Name, cfg.App.Version)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %v", err)
	}

	return cfg, lg, nil
}

// initDatabase 初始化数据库连接并执行迁移
func initDatabase(cfg *config.Config, lg *zap.Logger) (*database.DB, error) {
	db, err := database.New(cfg, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// 在HTTP服务器启动前执行迁移，确保处理请求时库表已就绪
	migrationsDir := cfg.Migrations.Dir
	lg.Sugar().Infow("using migrations directory", "path", migrationsDir)

	if err := db.RunMigrations(migrationsDir); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %v", err)
	}

	return db, nil
}

// initSnapshotStore 初始化购物车/收藏夹快照存储
func initSnapshotStore(cfg *config.Config, lg *zap.Logger) snapshot.Store {
	var store snapshot.Store
	if cfg.Snapshot.Enabled {
		switch cfg.Snapshot.Backend {
		case "redis":
			redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
			redisStore, err := snapshot.NewRedisStore(redisAddr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				lg.Sugar().Warnw("failed to connect to Redis, falling back to memory snapshots", "error", err)
				store = snapshot.NewMemoryStore()
				lg.Sugar().Infow("snapshot store enabled", "backend", "memory (fallback)")
			} else {
				store = redisStore
				lg.Sugar().Infow("snapshot store enabled", "backend", "redis", "addr", redisAddr)
			}
		case "memory":
			store = snapshot.NewMemoryStore()
			lg.Sugar().Infow("snapshot store enabled", "backend", "memory")
		default:
			lg.Sugar().Warnw("unknown snapshot backend, using memory", "backend", cfg.Snapshot.Backend)
			store = snapshot.NewMemoryStore()
			lg.Sugar().Infow("snapshot store enabled", "backend", "memory (default)")
		}
	} else {
		store = snapshot.NewNullStore()
		lg.Sugar().Infow("snapshot store disabled, state will not survive restarts")
	}
	return store
}

// initRateLimiters 初始化写接口限流器
// Redis不可用时返回nil，主流程据此跳过限流
func initRateLimiters(cfg *config.Config, lg *zap.Logger) (limiter.Limiter, limiter.Limiter) {
	if !cfg.RateLimit.Enabled {
		lg.Sugar().Infow("rate limiting disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lg.Sugar().Warnw("failed to connect to Redis, rate limiting disabled", "error", err)
		_ = client.Close()
		return nil, nil
	}

	mutationLimiter, err := limiter.NewTokenBucketLimiter(client, &limiter.Config{
		Rate:      cfg.RateLimit.Rate,
		Window:    cfg.RateLimit.Window,
		Burst:     cfg.RateLimit.Burst,
		KeyPrefix: "limiter:mutation",
	})
	if err != nil {
		lg.Sugar().Warnw("failed to create mutation limiter", "error", err)
		return nil, nil
	}

	apiLimiter, err := limiter.NewTokenBucketLimiter(client, &limiter.Config{
		Rate:      cfg.RateLimit.Rate,
		Window:    cfg.RateLimit.Window,
		Burst:     cfg.RateLimit.Burst,
		KeyPrefix: "limiter:api",
	})
	if err != nil {
		lg.Sugar().Warnw("failed to create api limiter", "error", err)
		return nil, nil
	}

	lg.Sugar().Infow("rate limiting enabled",
		"rate", cfg.RateLimit.Rate,
		"window", cfg.RateLimit.Window,
		"burst", cfg.RateLimit.Burst,
	)
	return mutationLimiter, apiLimiter
}

// initDependencies 初始化应用依赖（目录、仓储、服务、处理器）
func initDependencies(cfg *config.Config, db *database.DB, snapshots snapshot.Store, lg *zap.Logger) *AppDependencies {
	// 商品目录为进程内静态数据
	cat := catalog.Default()

	// 依赖注入链：仓储 -> 服务 -> API处理器
	sessionService := service.NewSessionService(cfg, lg)
	productService := service.NewProductService(cat)
	cartService := service.NewCartService(cat, snapshots, lg)
	favoritesService := service.NewFavoritesService(cat, snapshots, lg)

	newsletterRepo := repo.NewNewsletterRepository(db)
	newsletterService := service.NewNewsletterService(newsletterRepo, lg)

	coordinator := panel.NewCoordinator()

	mutationLimiter, apiLimiter := initRateLimiters(cfg, lg)

	return &AppDependencies{
		ProductHandler:    api.NewProductHandler(productService, lg),
		CartHandler:       api.NewCartHandler(cartService, lg),
		FavoritesHandler:  api.NewFavoritesHandler(favoritesService, lg),
		PanelHandler:      api.NewPanelHandler(coordinator, lg),
		SessionHandler:    api.NewSessionHandler(sessionService, lg),
		NewsletterHandler: api.NewNewsletterHandler(newsletterService, lg),
		SessionService:    sessionService,
		MutationLimiter:   mutationLimiter,
		APILimiter:        apiLimiter,
	}
}

// getOnly 仅放行GET请求
func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// postOnly 仅放行POST请求
func postOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// setupRoutes 设置路由和中间件
func setupRoutes(cfg *config.Config, deps *AppDependencies, lg *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// 健康检查端点
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		reqID := mw.RequestIDFromContext(r.Context())
		data := map[string]any{
			"status":  "ok",
			"version": cfg.App.Version,
		}
		resp.OK(w, &data, reqID, "")
	})

	// 会话签发（无需认证）
	mux.HandleFunc("/api/v1/session", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			deps.SessionHandler.CreateSession(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/auth/form", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			deps.SessionHandler.AuthForm(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// 商品目录相关API路由（公开访问）
	mux.HandleFunc("/api/v1/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			deps.ProductHandler.ListProducts(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/products/search", getOnly(deps.ProductHandler.SearchProducts))
	mux.HandleFunc("/api/v1/products/filters", getOnly(deps.ProductHandler.FilterOptions))
	mux.HandleFunc("/api/v1/products/", getOnly(deps.ProductHandler.GetProduct))
	mux.HandleFunc("/api/v1/collections/", getOnly(deps.ProductHandler.Collection))

	// 会话认证中间件
	sessionMiddleware := mw.SessionMiddleware(deps.SessionService, lg)

	// 写接口限流（Redis不可用时跳过）
	mutationLimit := func(next http.Handler) http.Handler { return next }
	if deps.MutationLimiter != nil {
		mutationLimit = limiter.HTTPRateLimitMiddleware(deps.MutationLimiter, "mutation")
	}

	// 购物车路由（需要会话）
	mux.Handle("/api/v1/cart", sessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			deps.CartHandler.GetCart(w, r)
		case http.MethodDelete:
			mutationLimit(http.HandlerFunc(deps.CartHandler.ClearCart)).ServeHTTP(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))
	mux.Handle("/api/v1/cart/items", sessionMiddleware(mutationLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			deps.CartHandler.AddToCart(w, r)
		case http.MethodPut:
			deps.CartHandler.UpdateQuantity(w, r)
		case http.MethodDelete:
			deps.CartHandler.RemoveFromCart(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))))

	// 收藏夹路由（需要会话）
	mux.Handle("/api/v1/favorites", sessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			deps.FavoritesHandler.ListFavorites(w, r)
		case http.MethodPost:
			mutationLimit(http.HandlerFunc(deps.FavoritesHandler.AddFavorite)).ServeHTTP(w, r)
		case http.MethodDelete:
			mutationLimit(http.HandlerFunc(deps.FavoritesHandler.ClearFavorites)).ServeHTTP(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))
	mux.Handle("/api/v1/favorites/toggle", sessionMiddleware(mutationLimit(http.HandlerFunc(deps.FavoritesHandler.ToggleFavorite))))
	mux.Handle("/api/v1/favorites/", sessionMiddleware(mutationLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			deps.FavoritesHandler.RemoveFavorite(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))))

	// 浮层状态路由（需要会话）
	mux.Handle("/api/v1/panels", sessionMiddleware(http.HandlerFunc(getOnly(deps.PanelHandler.GetState))))
	mux.Handle("/api/v1/panels/open", sessionMiddleware(http.HandlerFunc(postOnly(deps.PanelHandler.Open))))
	mux.Handle("/api/v1/panels/close", sessionMiddleware(http.HandlerFunc(postOnly(deps.PanelHandler.Close))))
	mux.Handle("/api/v1/panels/close-all", sessionMiddleware(http.HandlerFunc(postOnly(deps.PanelHandler.CloseAll))))

	// 邮件订阅路由走Gin子路由器
	newsletterRouter := router.New().Setup(cfg, &router.Dependencies{
		NewsletterHandler: deps.NewsletterHandler,
		APILimiter:        deps.APILimiter,
	}, lg)
	mux.Handle("/api/v1/newsletter/", newsletterRouter)

	// 构建中间件链：请求进入时执行顺序为 access log → CORS → timeout → recovery → request ID
	// 响应返回时执行顺序为 request ID → recovery → timeout → CORS → access log
	handler := mw.RequestID(mux)
	handler = mw.Recovery(lg)(handler)
	handler = mw.Timeout(cfg.App.RequestTimeout)(handler)
	handler = mw.CORS(mw.CORSConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
	})(handler)
	handler = mw.AccessLog(lg)(handler)

	return handler
}

// startServer 启动服务器并处理优雅关闭
func startServer(cfg *config.Config, handler http.Handler, lg *zap.Logger) {
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	lg.Sugar().Infow("server starting", "addr", addr)
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	// 启动服务器（异步）
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-serverErrCh:
		if err != nil && err != http.ErrServerClosed {
			lg.Sugar().Fatalw("server error", "err", err)
		}
	case <-quit:
		lg.Sugar().Infow("shutdown signal received")
	}

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Sugar().Errorw("server shutdown error", "err", err)
	}
	lg.Sugar().Infow("server exited")
}

// main 为应用入口，协调各个组件的初始化和启动
func main() {
	// 1) 加载配置和初始化日志
	cfg, lg, err := initConfigAndLogger()
	if err != nil {
		log.Fatalf("failed to initialize config and logger: %v", err)
	}

	// 2) 初始化数据库连接并执行迁移
	db, err := initDatabase(cfg, lg)
	if err != nil {
		lg.Sugar().Fatalw("failed to initialize database", "err", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			lg.Sugar().Errorw("failed to close database connection", "err", err)
		}
	}()

	// 3) 初始化快照存储
	snapshots := initSnapshotStore(cfg, lg)
	defer func() {
		if err := snapshots.Close(); err != nil {
			lg.Sugar().Errorw("failed to close snapshot store", "err", err)
		}
	}()

	// 4) 初始化应用依赖（目录、仓储、服务、处理器）
	deps := initDependencies(cfg, db, snapshots, lg)

	// 5) 设置路由和中间件
	handler := setupRoutes(cfg, deps, lg)

	// 6) 启动 HTTP 服务器
	startServer(cfg, handler, lg)
}
