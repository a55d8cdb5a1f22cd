package observe

import (
	"context"
	"time"
)

// CallFunc performs one outbound call and reports its HTTP status code.
// A zero status code means no response was received.
type CallFunc func(ctx context.Context, call CallMeta) (statusCode int, err error)

// Middleware wraps outbound calls with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe CallFunc.
//   - Context: the span context is passed to the wrapped function.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware. Nil components are replaced with no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = NewNoopMetrics()
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps a CallFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn CallFunc) CallFunc {
	return func(ctx context.Context, call CallMeta) (int, error) {
		ctx, span := m.tracer.StartSpan(ctx, call)
		start := time.Now()

		status, err := fn(ctx, call)

		duration := time.Since(start)
		m.tracer.EndSpan(span, status, err)
		m.metrics.RecordCall(ctx, call, duration, status, err)

		fields := []Field{
			F("service", call.Service),
			F("operation", call.Operation),
			F("method", call.Method),
			F("url", call.URL),
			F("duration_ms", float64(duration.Microseconds())/1000),
		}
		if status > 0 {
			fields = append(fields, F("status", status))
		}

		if err != nil {
			fields = append(fields, F("error", err.Error()))
			m.logger.Warn(ctx, "api call failed", fields...)
		} else {
			m.logger.Info(ctx, "api call completed", fields...)
		}

		return status, err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
