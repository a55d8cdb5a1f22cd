package observe

import "context"

// HeaderCorrelationID is propagated from inbound requests to the student API.
const HeaderCorrelationID = "X-Correlation-Id"

type contextKey int

const correlationIDKey contextKey = iota

// WithCorrelationID returns a context carrying the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromContext returns the correlation ID, or "" when absent.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}
