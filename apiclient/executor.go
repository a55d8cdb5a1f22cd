package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jonwraymond/studentops/observe"
	"github.com/jonwraymond/studentops/resilience"
)

// DefaultMaxBodyBytes caps response bodies read by the Executor.
const DefaultMaxBodyBytes int64 = 10 << 20

// Outcome is the raw result of one call: the status and body of any HTTP
// response, or the transport error that prevented one.
type Outcome struct {
	StatusCode int
	Body       []byte
	Err        error
}

// ExecutorConfig configures an Executor.
type ExecutorConfig struct {
	// HTTPClient sends requests. Default: a client with no global timeout;
	// each call is bounded by its RequestSpec.Timeout.
	HTTPClient *http.Client

	// Service names the downstream in telemetry. Default: "api".
	Service string

	// MaxInFlight caps concurrent calls; 0 disables the cap.
	MaxInFlight int

	// MaxBodyBytes caps response bodies. Default: DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// Middleware records spans, metrics and logs per call. Optional.
	Middleware *observe.Middleware
}

// Executor sends RequestSpecs. It is safe for concurrent use and keeps no
// per-call state.
type Executor struct {
	client   *http.Client
	service  string
	bulkhead *resilience.Bulkhead
	maxBody  int64
	mw       *observe.Middleware
}

// NewExecutor creates an Executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	e := &Executor{
		client:  cfg.HTTPClient,
		service: cfg.Service,
		maxBody: cfg.MaxBodyBytes,
		mw:      cfg.Middleware,
	}
	if e.client == nil {
		e.client = &http.Client{Transport: http.DefaultTransport}
	}
	if e.service == "" {
		e.service = "api"
	}
	if e.maxBody <= 0 {
		e.maxBody = DefaultMaxBodyBytes
	}
	if e.mw == nil {
		e.mw = observe.NewMiddleware(nil, nil, nil)
	}
	if cfg.MaxInFlight > 0 {
		e.bulkhead = resilience.NewBulkhead(resilience.BulkheadConfig{
			MaxConcurrent: cfg.MaxInFlight,
			MaxWait:       time.Second,
		})
	}
	return e
}

// Execute performs exactly one HTTP exchange for spec. When creds is non-nil
// a Basic Authorization header is added. Network faults, timeouts, invalid
// specs and bulkhead rejections are reported in Outcome.Err.
func (e *Executor) Execute(ctx context.Context, spec RequestSpec, creds *Credentials) Outcome {
	if err := spec.Validate(); err != nil {
		return Outcome{Err: err}
	}

	opts := []resilience.ExecutorOption{resilience.WithTimeout(spec.Timeout)}
	if e.bulkhead != nil {
		opts = append(opts, resilience.WithBulkhead(e.bulkhead))
	}
	policy := resilience.NewExecutor(opts...)

	meta := observe.CallMeta{
		Service:   e.service,
		Operation: spec.Operation,
		Method:    spec.Method,
		URL:       redactURL(spec.URL),
	}

	var out Outcome
	call := func(ctx context.Context, _ observe.CallMeta) (int, error) {
		var res Outcome
		err := policy.Execute(ctx, func(ctx context.Context) error {
			res = e.roundTrip(ctx, spec, creds)
			return res.Err
		})
		// res is only safe to read once the operation has returned.
		if err != nil {
			out = Outcome{Err: err}
			return 0, err
		}
		out = res
		return res.StatusCode, nil
	}

	_, _ = e.mw.Wrap(call)(ctx, meta)
	return out
}

func (e *Executor) roundTrip(ctx context.Context, spec RequestSpec, creds *Credentials) Outcome {
	var body io.Reader
	if len(spec.Body) > 0 {
		body = bytes.NewReader(spec.Body)
	}
	req, err := http.NewRequestWithContext(ctx, spec.Method, spec.URL, body)
	if err != nil {
		return Outcome{Err: fmt.Errorf("%w: %v", ErrInvalidRequest, err)}
	}

	for _, h := range spec.Headers {
		req.Header.Add(h.Name, h.Value)
	}
	if creds != nil {
		req.Header.Set("Authorization", creds.AuthorizationHeader())
	}
	if cid := observe.CorrelationIDFromContext(ctx); cid != "" {
		req.Header.Set(observe.HeaderCorrelationID, cid)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := e.client.Do(req)
	if err != nil {
		return Outcome{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBody+1))
	if err != nil {
		return Outcome{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}
	if int64(len(data)) > e.maxBody {
		return Outcome{StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, e.maxBody)}
	}
	return Outcome{StatusCode: resp.StatusCode, Body: data}
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
