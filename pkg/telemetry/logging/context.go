package logging

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	checkIDKey   contextKey = "check_id"
)

// WithRequestID adds a request id to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id stored in ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithCheckID adds a flight plan check id to the context.
func WithCheckID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, checkIDKey, id)
}

// CheckID returns the check id stored in ctx.
func CheckID(ctx context.Context) string {
	id, _ := ctx.Value(checkIDKey).(string)
	return id
}
