package health

import "errors"

var (
	// ErrNotReachable marks a dependency whose probe failed in transport.
	// Its text is part of the health report.
	ErrNotReachable = errors.New("API not reachable")

	// ErrInvalidJSON marks a dependency whose probe body was not JSON.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrCheckTimeout indicates a health check did not finish in time.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckPanicked indicates a checker panicked.
	ErrCheckPanicked = errors.New("health: check panicked")

	// ErrCheckerNotFound indicates a checker was not found.
	ErrCheckerNotFound = errors.New("health: checker not found")
)
