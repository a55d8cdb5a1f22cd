package observe

import (
	"context"
	"io"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var benchCall = CallMeta{Service: "api", Operation: "list_students", Method: "GET", URL: "http://api:5000/pozos/api/v1.0/get_student_ages"}

func benchOK(ctx context.Context, call CallMeta) (int, error) { return 200, nil }

// BenchmarkMiddleware_Wrap_Noop measures the wrapper with no-op components.
func BenchmarkMiddleware_Wrap_Noop(b *testing.B) {
	wrapped := NewMiddleware(nil, nil, nil).Wrap(benchOK)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = wrapped(ctx, benchCall)
	}
}

// BenchmarkMiddleware_Wrap_SDK measures the wrapper with real providers.
func BenchmarkMiddleware_Wrap_SDK(b *testing.B) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
	metrics, err := NewMetrics(mp.Meter("bench"))
	if err != nil {
		b.Fatal(err)
	}

	wrapped := NewMiddleware(NewTracer(tp.Tracer("bench")), metrics, NewLoggerWithWriter("info", io.Discard)).Wrap(benchOK)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = wrapped(ctx, benchCall)
	}
}

// BenchmarkLogger_Info measures one structured log line with redaction.
func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := WithCorrelationID(context.Background(), "bench")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "api call completed", F("status", 200), F("password", "python"))
	}
}

// BenchmarkCallMeta_SpanName measures span name construction.
func BenchmarkCallMeta_SpanName(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = benchCall.SpanName()
	}
}
