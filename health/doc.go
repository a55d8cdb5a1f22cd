// Package health derives the front-end's health verdict from its own
// constant status and probes of the student API.
//
// A Checker reports a binary Status. ProbeChecker calls a dependency's
// health endpoint through apiclient and is healthy only when the call
// succeeds and the decoded payload has "status": "healthy". LocalChecker
// reports the running process and is never probed.
//
// # Aggregating
//
// Aggregator runs registered checkers, in parallel by default with a bound
// on concurrency, each independently: one failing or slow probe never
// cancels its siblings. The overall status is healthy only when every check
// is healthy.
//
//	agg := health.NewAggregator(health.AggregatorConfig{Parallel: true, MaxParallel: 4})
//	agg.Register("webapp", health.NewLocalChecker())
//	agg.Register("api", health.NewProbeChecker(client, health.ProbeConfig{}))
//
//	report := agg.Report(ctx, "2.0.0")
//
// # HTTP Endpoints
//
//	http.Handle("/health", health.ReportHandler(agg, "2.0.0")) // 200 or 503, JSON report
//	http.Handle("/healthz", health.LivenessHandler())
//	http.Handle("/readyz", health.ReadinessHandler(agg))
package health
