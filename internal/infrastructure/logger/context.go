package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	userKey      contextKey = "user"
	apiKeyKey    contextKey = "api_key"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from context, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// ForContext returns the request-scoped logger stored on ctx, or fallback
// when the context carries none. Trace fields are added when a span is active.
func ForContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok || l == nil {
		l = fallback
	}
	if l == nil {
		l = zap.NewNop()
	}
	return WithTraceContext(ctx, l)
}

// WithRequestID adds request ID to context and returns enriched logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithCaller records the authenticated user and API key on the context
func WithCaller(ctx context.Context, logger *zap.Logger, user, apiKey string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, userKey, user)
	ctx = context.WithValue(ctx, apiKeyKey, apiKey)
	enriched := logger.With(zap.String("user", user), zap.String("api_key", apiKey))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey).(string)
	return requestID
}

// GetUser retrieves the authenticated user from context
func GetUser(ctx context.Context) string {
	user, _ := ctx.Value(userKey).(string)
	return user
}

// GetAPIKey retrieves the API key of the caller from context
func GetAPIKey(ctx context.Context) string {
	apiKey, _ := ctx.Value(apiKeyKey).(string)
	return apiKey
}

// L returns the context logger with trace_id and span_id from the active
// span, if any.
func L(ctx context.Context) *zap.Logger {
	return WithTraceContext(ctx, FromContext(ctx))
}

// WithTraceContext adds trace_id and span_id to logger from the context's span
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}
