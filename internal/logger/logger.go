package logger

import (
	"go.uber.org/zap"
)

// Log — общий логгер процесса. До Initialize пишет в никуда.
var Log = zap.NewNop()

// Initialize настраивает логгер с заданным уровнем ("debug", "info", ...).
func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = zl
	return nil
}
