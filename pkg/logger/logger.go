package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type Logger struct {
	l *zap.Logger
}

func New(ctx context.Context) (context.Context, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("error creating new logger: %w", err)
	}
	ctx = context.WithValue(ctx, "logger", &Logger{logger})

	return ctx, nil
}

// GetLogger returns the request logger, falling back to a nop logger so that
// library code can always log without checking the context first.
func GetLogger(ctx context.Context) *Logger {
	if l, ok := ctx.Value("logger").(*Logger); ok {
		return l
	}
	return &Logger{zap.NewNop()}
}

// With attaches an existing logger to a context. Used by the HTTP middleware.
func With(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, "logger", l)
}

func (logger *Logger) Info(msg string, fields ...zap.Field) {
	logger.l.Info(msg, fields...)
}

func (logger *Logger) Warn(msg string, fields ...zap.Field) {
	logger.l.Warn(msg, fields...)
}

func (logger *Logger) Error(msg string, fields ...zap.Field) {
	logger.l.Error(msg, fields...)
}

func (logger *Logger) Fatal(msg string, fields ...zap.Field) {
	logger.l.Fatal(msg, fields...)
}
