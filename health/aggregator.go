package health

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/studentops/observe"
)

// AggregatorConfig configures the health aggregator.
type AggregatorConfig struct {
	// Timeout is the maximum time to wait for all checks.
	// Default: 10 seconds
	Timeout time.Duration

	// Parallel runs health checks concurrently when true.
	// Default: true when no config is given
	Parallel bool

	// MaxParallel bounds concurrent checks when Parallel is set.
	// Default: 8
	MaxParallel int

	// Logger receives one entry per unhealthy check. Optional.
	Logger observe.Logger
}

// Aggregator combines multiple health checkers into one verdict.
type Aggregator struct {
	config   AggregatorConfig
	mu       sync.RWMutex
	checkers map[string]Checker
	order    []string // Maintains registration order
}

// NewAggregator creates a new health aggregator.
func NewAggregator(config ...AggregatorConfig) *Aggregator {
	cfg := AggregatorConfig{
		Timeout:  10 * time.Second,
		Parallel: true,
	}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.Timeout <= 0 {
			cfg.Timeout = 10 * time.Second
		}
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = 8
	}
	if cfg.Logger == nil {
		cfg.Logger = observe.NewNopLogger()
	}

	return &Aggregator{
		config:   cfg,
		checkers: make(map[string]Checker),
	}
}

// Register adds a health checker under name, replacing any existing one.
func (a *Aggregator) Register(name string, checker Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.checkers[name]; !exists {
		a.order = append(a.order, name)
	}
	a.checkers[name] = checker
}

// Unregister removes a health checker from the aggregator.
func (a *Aggregator) Unregister(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.checkers, name)
	a.order = slices.DeleteFunc(a.order, func(n string) bool { return n == name })
}

// CheckerNames returns the names of all registered checkers in
// registration order.
func (a *Aggregator) CheckerNames() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return slices.Clone(a.order)
}

// Check runs a single named health check.
func (a *Aggregator) Check(ctx context.Context, name string) (Result, error) {
	a.mu.RLock()
	checker, ok := a.checkers[name]
	a.mu.RUnlock()

	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrCheckerNotFound, name)
	}

	return a.runCheck(ctx, checker), nil
}

// namedResult is one check outcome in registration order.
type namedResult struct {
	name   string
	local  bool
	result Result
}

// CheckAll runs all registered health checks and returns the results.
// It returns only after every check has finished or timed out.
func (a *Aggregator) CheckAll(ctx context.Context) map[string]Result {
	named := a.checkOrdered(ctx)
	results := make(map[string]Result, len(named))
	for _, nr := range named {
		results[nr.name] = nr.result
	}
	return results
}

func (a *Aggregator) checkOrdered(ctx context.Context) []namedResult {
	a.mu.RLock()
	named := make([]namedResult, len(a.order))
	checkers := make([]Checker, len(a.order))
	for i, name := range a.order {
		named[i].name = name
		checkers[i] = a.checkers[name]
		named[i].local = isLocal(checkers[i])
	}
	a.mu.RUnlock()

	if len(checkers) == 0 {
		return named
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	if a.config.Parallel {
		// A plain Group: one failed check must not cancel the others.
		var g errgroup.Group
		g.SetLimit(a.config.MaxParallel)
		for i, checker := range checkers {
			g.Go(func() error {
				named[i].result = a.runCheck(ctx, checker)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, checker := range checkers {
			named[i].result = a.runCheck(ctx, checker)
		}
	}

	for _, nr := range named {
		if nr.result.Status != StatusHealthy {
			a.config.Logger.Warn(ctx, "health check failed",
				observe.F("check", nr.name),
				observe.F("message", nr.result.Message),
				observe.F("error", nr.result.Error),
				observe.F("duration_ms", nr.result.Duration.Milliseconds()),
			)
		}
	}
	return named
}

// OverallStatus is healthy only if every result is healthy.
// An empty result set is healthy.
func (a *Aggregator) OverallStatus(results map[string]Result) Status {
	for _, result := range results {
		if result.Status != StatusHealthy {
			return StatusUnhealthy
		}
	}
	return StatusHealthy
}

func (a *Aggregator) runCheck(ctx context.Context, checker Checker) Result {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return timedOut(start)
	}

	resultCh := make(chan Result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resultCh <- Unhealthy("check panicked", fmt.Errorf("%w: %v", ErrCheckPanicked, r)).
					WithDuration(time.Since(start))
			}
		}()
		result := checker.Check(ctx)
		if result.Duration == 0 {
			result.Duration = time.Since(start)
		}
		if result.Timestamp.IsZero() {
			result.Timestamp = start
		}
		resultCh <- result
	}()

	select {
	case result := <-resultCh:
		return result
	case <-ctx.Done():
		return timedOut(start)
	}
}

func timedOut(start time.Time) Result {
	return Result{
		Status:    StatusUnhealthy,
		Message:   "check timed out",
		Error:     ErrCheckTimeout,
		Duration:  time.Since(start),
		Timestamp: start,
	}
}
