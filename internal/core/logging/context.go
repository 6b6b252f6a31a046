package logging

import "context"

type contextKey string

const (
	stepIDKey    contextKey = "step_id"
	requestIDKey contextKey = "request_id"
)

// WithStepID adds a walkthrough step ID to the context.
func WithStepID(ctx context.Context, stepID string) context.Context {
	return context.WithValue(ctx, stepIDKey, stepID)
}

// WithRequestID adds an assistant request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetStepID retrieves the step ID from the context.
// Returns empty string if not present.
func GetStepID(ctx context.Context) string {
	if id, ok := ctx.Value(stepIDKey).(string); ok {
		return id
	}
	return ""
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
