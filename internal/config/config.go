// Package config 提供应用配置的加载与校验。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig 应用基础配置
type AppConfig struct {
	Name            string
	Version         string
	Env             string // dev | test | prod
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string // debug | info | warn | error
	Encoding string // json | console
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig Redis连接配置
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SnapshotConfig 快照存储配置
// Backend 可选 redis / memory；禁用后购物车与收藏夹只存活于进程内
type SnapshotConfig struct {
	Enabled bool
	Backend string
}

// SessionConfig 游客会话令牌配置
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// RateLimitConfig 限流配置（令牌桶）
type RateLimitConfig struct {
	Enabled bool
	Rate    int64         // 每窗口补充的令牌数
	Window  time.Duration // 补充窗口
	Burst   int64         // 桶容量
}

// MigrationsConfig 迁移文件配置
type MigrationsConfig struct {
	Dir string
}

// Config 汇总全部配置项
type Config struct {
	App        AppConfig
	Log        LogConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Snapshot   SnapshotConfig
	Session    SessionConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
	Migrations MigrationsConfig
}

// Load 从环境变量加载配置
// 存在 .env 文件时先行加载，便于本地开发；环境变量优先级更高
func Load() (*Config, error) {
	// .env 缺失不是错误
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:            getString("APP_NAME", "lens-store"),
			Version:         getString("APP_VERSION", "0.1.0"),
			Env:             getString("APP_ENV", "dev"),
			Port:            getInt("APP_PORT", 8080),
			RequestTimeout:  getDuration("APP_REQUEST_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Database: DatabaseConfig{
			Host:     getString("DB_HOST", "127.0.0.1"),
			Port:     getInt("DB_PORT", 3306),
			User:     getString("DB_USER", "root"),
			Password: getString("DB_PASSWORD", ""),
			DBName:   getString("DB_NAME", "lens_store"),
		},
		Redis: RedisConfig{
			Host:     getString("REDIS_HOST", "127.0.0.1"),
			Port:     getInt("REDIS_PORT", 6379),
			Password: getString("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		Snapshot: SnapshotConfig{
			Enabled: getBool("SNAPSHOT_ENABLED", true),
			Backend: getString("SNAPSHOT_BACKEND", "redis"),
		},
		Session: SessionConfig{
			Secret: getString("SESSION_SECRET", ""),
			TTL:    getDuration("SESSION_TTL", 720*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: getStrings("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getStrings("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getStrings("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "X-Request-ID"}),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBool("RATE_LIMIT_ENABLED", true),
			Rate:    getInt64("RATE_LIMIT_RATE", 30),
			Window:  getDuration("RATE_LIMIT_WINDOW", time.Minute),
			Burst:   getInt64("RATE_LIMIT_BURST", 10),
		},
		Migrations: MigrationsConfig{
			Dir: getString("MIGRATIONS_DIR", "migrations"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate 校验配置合法性
func (c *Config) validate() error {
	switch c.App.Env {
	case "dev", "test", "prod":
	default:
		return fmt.Errorf("invalid APP_ENV %q", c.App.Env)
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid APP_PORT %d", c.App.Port)
	}
	if c.Session.Secret == "" {
		if c.App.Env == "prod" {
			return fmt.Errorf("SESSION_SECRET is required in prod")
		}
		// 开发环境允许缺省密钥，避免本地起步门槛
		c.Session.Secret = "dev-only-insecure-secret"
	}
	if c.Snapshot.Enabled {
		switch c.Snapshot.Backend {
		case "redis", "memory":
		default:
			return fmt.Errorf("invalid SNAPSHOT_BACKEND %q", c.Snapshot.Backend)
		}
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit requires positive rate and burst")
	}
	return nil
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(key string, def int64) int64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getStrings(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
