package logger

// ZAP LOGGER SETUP

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger: production JSON with ISO8601
// timestamps.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "ts"

	return cfg.Build()
}

// NewDev builds a development logger for local runs and tests.
func NewDev() (*zap.Logger, error) {
	return zap.NewDevelopment()
}
