package middleware

import (
	"context"
	"log/slog"
)

// loggerCtxKey is the key used to store the request-scoped logger in the
// standard request context, so non-HTTP layers can retrieve it without
// depending on Gin.
const loggerCtxKey = contextKey("loggerCtx")

// WithLogger returns a context carrying the given logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context. It returns the default logger if none is set.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
