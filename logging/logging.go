package logging

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKeyType string

const loggerKey = loggerKeyType("logger")

var rootLogger *zap.Logger

func init() {
	rootLogger = New(os.Getenv("SCENEGRAPH_DEV") != "")
}

// New builds a console logger, debug level and colors in dev mode, info and up otherwise.
func New(devmode bool) *zap.Logger {
	var cfg zapcore.EncoderConfig
	level := zapcore.InfoLevel
	if devmode {
		cfg = zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		level = zapcore.DebugLevel
	} else {
		cfg = zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

func Root() *zap.Logger { return rootLogger }

// SetRoot replaces the root logger, nil installs a no-op logger.
func SetRoot(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rootLogger = logger
}

// From returns the logger of the current context, if no logger is available, returns the root logger
func From(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return rootLogger
	}
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok {
		return rootLogger
	}
	return l
}

func SubFrom(ctx context.Context, name string) (*zap.Logger, context.Context) {
	logger := From(ctx).Named(name)
	return logger, Context(ctx, logger)
}

func Context(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		logger = rootLogger
	}
	return context.WithValue(ctx, loggerKey, logger)
}
