// Package logger 提供基于zap的结构化日志器构造。
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 创建应用日志器
// prod 环境使用生产配置（JSON、采样），其余环境使用开发配置；
// level/encoding 来自配置，name/version 作为全局字段附加到每条日志
func New(env, level, encoding, name, version string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	switch encoding {
	case "json", "console":
		cfg.Encoding = encoding
	case "":
		// 保持各环境默认
	default:
		return nil, fmt.Errorf("unsupported log encoding %q", encoding)
	}

	lg, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return lg.With(
		zap.String("app", name),
		zap.String("version", version),
	), nil
}
