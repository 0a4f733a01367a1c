package zap

import (
	"github.com/ezraisw/konvert/logger"
	"go.uber.org/zap"
)

// NewLogger adapts a zap logger through its sugared form.
func NewLogger(l *zap.Logger) logger.Logger {
	return l.Sugar()
}

// NewLoggerWithLevel builds a production zap logger at the given level.
func NewLoggerWithLevel(level string) (logger.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return NewLogger(l), nil
}
