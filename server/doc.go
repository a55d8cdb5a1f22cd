// Package server exposes the studentops front-end over HTTP with gin.
//
// Routes:
//
//	GET  /                      service title and version
//	GET  /health                aggregated health report (200 or 503)
//	GET  /healthz, /readyz      liveness and readiness
//	GET  /metrics               Prometheus metrics, when enabled
//	GET  /api/students          name to age map
//	POST /api/students          create a student (JSON or form)
//	GET  /api/students/details  full records
//
// The /api group is protected when an authenticator is configured.
package server
