package health

import "context"

// LocalChecker reports the running process. It is always healthy: if it
// runs, the process is up.
type LocalChecker struct {
	name string
}

// NewLocalChecker creates the checker for this process, named "webapp".
func NewLocalChecker() *LocalChecker {
	return &LocalChecker{name: "webapp"}
}

// NewNamedLocalChecker creates a local checker with a custom name.
func NewNamedLocalChecker(name string) *LocalChecker {
	return &LocalChecker{name: name}
}

// Name returns the checker name.
func (c *LocalChecker) Name() string { return c.name }

// Local marks the checker as describing this process.
func (c *LocalChecker) Local() bool { return true }

// Check returns a healthy result with uptime "running".
func (c *LocalChecker) Check(context.Context) Result {
	return Healthy("running").WithDetails(map[string]any{"uptime": "running"})
}
