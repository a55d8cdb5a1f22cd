package health

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/studentops/apiclient"
)

// Prober issues probe calls. *apiclient.Client implements it.
type Prober interface {
	URL(path string) string
	Do(ctx context.Context, spec apiclient.RequestSpec) apiclient.CallResult
}

// ProbeConfig configures a ProbeChecker.
type ProbeConfig struct {
	// Name of the dependency. Default: "api".
	Name string

	// Path of the health endpoint. Default: "/health".
	Path string

	// Timeout bounds each probe. Default: 5s.
	Timeout time.Duration
}

// ProbeChecker checks a dependency by calling its health endpoint.
type ProbeChecker struct {
	name    string
	path    string
	timeout time.Duration
	prober  Prober
}

// NewProbeChecker creates a ProbeChecker.
func NewProbeChecker(prober Prober, cfg ProbeConfig) *ProbeChecker {
	if cfg.Name == "" {
		cfg.Name = "api"
	}
	if cfg.Path == "" {
		cfg.Path = "/health"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &ProbeChecker{
		name:    cfg.Name,
		path:    cfg.Path,
		timeout: cfg.Timeout,
		prober:  prober,
	}
}

// Name returns the dependency name.
func (p *ProbeChecker) Name() string { return p.name }

// Timeout returns the per-probe timeout.
func (p *ProbeChecker) Timeout() time.Duration { return p.timeout }

// Check probes the dependency once.
func (p *ProbeChecker) Check(ctx context.Context) Result {
	start := time.Now()
	spec := apiclient.NewGet(p.prober.URL(p.path), p.timeout).WithOperation("health")
	return Evaluate(p.prober.Do(ctx, spec)).WithDuration(time.Since(start))
}

// Evaluate derives a dependency's health from a probe result.
//
// The dependency is healthy only when res is a Success whose payload has a
// string field "status" equal to "healthy". Transport failures wrap
// ErrNotReachable, decode failures are ErrInvalidJSON, and any other payload
// is unhealthy with a nil error.
func Evaluate(res apiclient.CallResult) Result {
	switch res.Kind() {
	case apiclient.KindSuccess:
	case apiclient.KindDecodeFailure:
		return Unhealthy("probe returned invalid JSON", ErrInvalidJSON)
	default:
		return Unhealthy("probe failed", fmt.Errorf("%w: %s", ErrNotReachable, res.Reason()))
	}

	details := map[string]any{"http_status": res.StatusCode}
	status, err := res.Payload().StringField("status")
	if err != nil {
		return Unhealthy("probe payload has no status", nil).WithDetails(details)
	}
	details["reported_status"] = status
	if status != "healthy" {
		return Unhealthy("dependency reports "+status, nil).WithDetails(details)
	}
	return Healthy("dependency reports healthy").WithDetails(details)
}
