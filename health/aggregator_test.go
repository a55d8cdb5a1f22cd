package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func staticChecker(name string, r Result) Checker {
	return NewCheckerFunc(name, func(context.Context) Result { return r })
}

func TestAggregator_RegisterOrder(t *testing.T) {
	agg := NewAggregator()
	agg.Register("webapp", NewLocalChecker())
	agg.Register("api", staticChecker("api", Healthy("ok")))
	agg.Register("db", staticChecker("db", Healthy("ok")))
	agg.Register("api", staticChecker("api", Healthy("replaced")))

	names := agg.CheckerNames()
	want := []string{"webapp", "api", "db"}
	if len(names) != len(want) {
		t.Fatalf("CheckerNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("CheckerNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	agg.Unregister("api")
	if got := agg.CheckerNames(); len(got) != 2 || got[1] != "db" {
		t.Errorf("after Unregister: %v", got)
	}
}

func TestAggregator_Check(t *testing.T) {
	agg := NewAggregator()
	agg.Register("api", staticChecker("api", Healthy("ok")))

	r, err := agg.Check(context.Background(), "api")
	if err != nil || r.Status != StatusHealthy {
		t.Errorf("Check(api) = %+v, %v", r, err)
	}

	if _, err := agg.Check(context.Background(), "missing"); !errors.Is(err, ErrCheckerNotFound) {
		t.Errorf("Check(missing) error = %v, want ErrCheckerNotFound", err)
	}
}

// TestAggregator_AllHealthyRule verifies the overall verdict is the AND of
// every entry and that flipping any single entry flips it.
func TestAggregator_AllHealthyRule(t *testing.T) {
	names := []string{"webapp", "api", "db", "queue"}

	for _, parallel := range []bool{false, true} {
		for flip := -1; flip < len(names); flip++ {
			agg := NewAggregator(AggregatorConfig{Parallel: parallel, MaxParallel: 2})
			for i, name := range names {
				r := Healthy("ok")
				if i == flip {
					r = Unhealthy("down", nil)
				}
				agg.Register(name, staticChecker(name, r))
			}

			results := agg.CheckAll(context.Background())
			want := StatusHealthy
			if flip >= 0 {
				want = StatusUnhealthy
			}
			if got := agg.OverallStatus(results); got != want {
				t.Errorf("parallel=%v flip=%d: OverallStatus = %v, want %v", parallel, flip, got, want)
			}
			if len(results) != len(names) {
				t.Errorf("parallel=%v: got %d results, want %d", parallel, len(results), len(names))
			}
		}
	}
}

func TestAggregator_Empty(t *testing.T) {
	agg := NewAggregator()
	results := agg.CheckAll(context.Background())
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if agg.OverallStatus(results) != StatusHealthy {
		t.Error("empty aggregator should be healthy")
	}
}

func TestAggregator_ParallelBounded(t *testing.T) {
	var inFlight, peak atomic.Int32
	slow := func(name string) Checker {
		return NewCheckerFunc(name, func(ctx context.Context) Result {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(30 * time.Millisecond)
			return Healthy("ok")
		})
	}

	agg := NewAggregator(AggregatorConfig{Parallel: true, MaxParallel: 2, Timeout: 5 * time.Second})
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		agg.Register(name, slow(name))
	}

	results := agg.CheckAll(context.Background())

	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	if p := peak.Load(); p > 2 || p < 1 {
		t.Errorf("peak concurrency = %d, want 1..2", p)
	}
}

// TestAggregator_SlowCheckDoesNotBlockSiblings verifies a hung check times
// out on its own while sibling results are kept.
func TestAggregator_SlowCheckDoesNotBlockSiblings(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{Parallel: true, Timeout: 50 * time.Millisecond})
	agg.Register("webapp", NewLocalChecker())
	agg.Register("api", NewCheckerFunc("api", func(ctx context.Context) Result {
		time.Sleep(time.Second)
		return Healthy("too late")
	}))
	agg.Register("db", staticChecker("db", Unhealthy("down", errors.New("refused"))))

	start := time.Now()
	results := agg.CheckAll(context.Background())
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("CheckAll took %v, want bounded by timeout", elapsed)
	}

	if results["webapp"].Status != StatusHealthy {
		t.Errorf("webapp = %v, want healthy", results["webapp"].Status)
	}
	if !errors.Is(results["api"].Error, ErrCheckTimeout) {
		t.Errorf("api error = %v, want ErrCheckTimeout", results["api"].Error)
	}
	if results["db"].Error == nil || results["db"].Error.Error() != "refused" {
		t.Errorf("db error = %v, want refused", results["db"].Error)
	}
}

func TestAggregator_ParentCancelled(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{Parallel: false})
	agg.Register("api", NewCheckerFunc("api", func(ctx context.Context) Result {
		<-ctx.Done()
		return Unhealthy("cancelled", ctx.Err())
	}))
	agg.Register("db", staticChecker("db", Healthy("ok")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := agg.CheckAll(ctx)
	for name, r := range results {
		if !errors.Is(r.Error, ErrCheckTimeout) {
			t.Errorf("%s error = %v, want ErrCheckTimeout", name, r.Error)
		}
	}
}

func TestAggregator_PanickingCheck(t *testing.T) {
	agg := NewAggregator()
	agg.Register("bad", NewCheckerFunc("bad", func(context.Context) Result { panic("nil map") }))
	agg.Register("good", staticChecker("good", Healthy("ok")))

	results := agg.CheckAll(context.Background())

	if !errors.Is(results["bad"].Error, ErrCheckPanicked) {
		t.Errorf("bad error = %v, want ErrCheckPanicked", results["bad"].Error)
	}
	if results["good"].Status != StatusHealthy {
		t.Errorf("good = %v, want healthy", results["good"].Status)
	}
}
