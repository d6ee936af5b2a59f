package infrastructure

import "context"

type contextKey string

// TraceIDContextKey is the key under which the request trace ID is stored.
const TraceIDContextKey contextKey = "trace_id"

// WithTraceID returns a context carrying the given trace ID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDContextKey, traceID)
}

// GetTraceID returns the trace ID from the context, or "" when absent.
func GetTraceID(ctx context.Context) string {
	if v, ok := ctx.Value(TraceIDContextKey).(string); ok {
		return v
	}
	return ""
}
