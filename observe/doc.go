// Package observe provides observability primitives for outbound API calls.
//
// It wires an OpenTelemetry tracer and meter, a zap-backed structured logger,
// and a Middleware that records one span, one set of metrics and one log line
// per remote call. Consumers wire the observer into apiclient and the server.
package observe
