package logger_test

import (
	"testing"

	"github.com/storewave/payrecon/internal/adapter/config"
	"github.com/storewave/payrecon/internal/adapter/logger"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	dev := logger.NewLogger(&config.App{LogLevel: "debug", Mode: config.AppModeDevelop})
	assert.NotNil(t, dev)

	prod := logger.NewLogger(&config.App{LogLevel: "error", Mode: config.AppModeProduction})
	assert.NotNil(t, prod)

	assert.Nil(t, logger.NewLogger(&config.App{LogLevel: "loud", Mode: config.AppModeProduction}))
}
