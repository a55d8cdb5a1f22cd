package observe

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestMiddleware(t *testing.T, buf *bytes.Buffer) (*Middleware, *tracetest.SpanRecorder, *sdkmetric.ManualReader) {
	t.Helper()

	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))

	metricReader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	return NewMiddleware(NewTracer(tp.Tracer("test")), metrics, NewLoggerWithWriter("debug", buf)), spanRecorder, metricReader
}

func sumCounter(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s has unexpected type %T", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

// TestMiddleware_SuccessPath verifies a completed call records span, metrics and a log line.
func TestMiddleware_SuccessPath(t *testing.T) {
	var buf bytes.Buffer
	mw, spans, reader := newTestMiddleware(t, &buf)

	call := CallMeta{Service: "api", Operation: "list_students", Method: "GET", URL: "http://api:5000/x"}
	wrapped := mw.Wrap(func(ctx context.Context, call CallMeta) (int, error) {
		return 200, nil
	})

	status, err := wrapped(context.Background(), call)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if status != 200 {
		t.Errorf("status = %d, want 200", status)
	}

	ended := spans.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	if ended[0].Name() != "api.call.api.list_students" {
		t.Errorf("span name = %q, want api.call.api.list_students", ended[0].Name())
	}
	if ended[0].Status().Code != codes.Ok {
		t.Errorf("span status = %v, want Ok", ended[0].Status().Code)
	}

	if got := sumCounter(t, reader, "api.call.total"); got != 1 {
		t.Errorf("api.call.total = %d, want 1", got)
	}
	if got := sumCounter(t, reader, "api.call.errors"); got != 0 {
		t.Errorf("api.call.errors = %d, want 0", got)
	}

	entry := decodeLines(t, &buf)[0]
	if entry["msg"] != "api call completed" {
		t.Errorf("msg = %v, want 'api call completed'", entry["msg"])
	}
}

// TestMiddleware_ErrorPath verifies transport errors are recorded and returned unchanged.
func TestMiddleware_ErrorPath(t *testing.T) {
	var buf bytes.Buffer
	mw, spans, reader := newTestMiddleware(t, &buf)

	wantErr := errors.New("dial tcp: connection refused")
	wrapped := mw.Wrap(func(ctx context.Context, call CallMeta) (int, error) {
		return 0, wantErr
	})

	_, err := wrapped(context.Background(), CallMeta{Service: "api", Operation: "health"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}

	span := spans.Ended()[0]
	if span.Status().Code != codes.Error {
		t.Errorf("span status = %v, want Error", span.Status().Code)
	}
	found := false
	for _, attr := range span.Attributes() {
		if attr.Key == attribute.Key("api.error") && attr.Value.AsBool() {
			found = true
		}
	}
	if !found {
		t.Error("expected api.error=true attribute")
	}

	if got := sumCounter(t, reader, "api.call.errors"); got != 1 {
		t.Errorf("api.call.errors = %d, want 1", got)
	}

	entry := decodeLines(t, &buf)[0]
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
}

func TestNewMiddleware_NilComponents(t *testing.T) {
	mw := NewMiddleware(nil, nil, nil)
	wrapped := mw.Wrap(func(ctx context.Context, call CallMeta) (int, error) { return 204, nil })
	if status, err := wrapped(context.Background(), CallMeta{Service: "api"}); err != nil || status != 204 {
		t.Fatalf("wrapped() = %d, %v", status, err)
	}
}
