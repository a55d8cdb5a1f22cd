// Package resilience bounds outbound calls to the student API.
//
// Two patterns are provided and can be composed with an Executor:
//
//   - Deadline: fails an operation with ErrTimeout once its time budget is
//     spent, even when the operation ignores its context.
//
//   - Bulkhead: caps the number of in-flight calls so a slow backend cannot
//     exhaust the front-end's goroutines or sockets.
//
// # Usage
//
//	exec := resilience.NewExecutor(
//	    resilience.WithBulkhead(resilience.NewBulkhead(resilience.BulkheadConfig{MaxConcurrent: 32})),
//	    resilience.WithTimeout(10*time.Second),
//	)
//
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    return doRequest(ctx)
//	})
package resilience
