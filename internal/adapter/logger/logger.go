package logger

import (
	"github.com/storewave/payrecon/internal/adapter/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const rootName = "payrecon"

// NewLogger builds the process root logger; components derive theirs with
// Named. DEV mode gets the colored console encoder, everything else logs
// production JSON with RFC3339 timestamps.
func NewLogger(conf *config.App) *zap.Logger {
	lvl, err := zap.ParseAtomicLevel(conf.LogLevel)
	if err != nil {
		zap.L().Error("error parsing log level", zap.Error(err))
		return nil
	}

	if conf.Mode == config.AppModeDevelop {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = lvl
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zap.Must(cfg.Build()).Named(rootName)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return zap.Must(cfg.Build()).Named(rootName)
}
