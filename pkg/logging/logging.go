// Package logging configures the process-wide zap logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a logger writing to ws.
func NewLogger(p Parameters, ws zapcore.WriteSyncer) *zap.Logger {
	al := zap.NewAtomicLevelAt(p.Level)
	ec := zap.NewDevelopmentEncoderConfig()
	var enc zapcore.Encoder
	switch p.Type {
	case LoggerJSON:
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		enc = zapcore.NewConsoleEncoder(ec)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(ws), al))
}

// SetupLogger installs a stderr logger as the global zap logger. Stdout is
// left to program output.
func SetupLogger(p Parameters) (*zap.Logger, *zap.SugaredLogger) {
	logger := NewLogger(p, os.Stderr)
	zap.ReplaceGlobals(logger)
	return logger, logger.Sugar()
}
