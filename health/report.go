package health

import (
	"context"
	"encoding/json"
	"time"
)

// ServiceHealth is one entry of the health report. It is built only from a
// check Result.
type ServiceHealth struct {
	Name    string
	Healthy bool

	// Error is nil when the service is healthy or answered without
	// reporting itself healthy.
	Error *string

	// Local marks the running process; its entry renders an uptime
	// instead of an error.
	Local  bool
	Uptime string
}

func newServiceHealth(nr namedResult) ServiceHealth {
	sh := ServiceHealth{
		Name:    nr.name,
		Healthy: nr.result.Status == StatusHealthy,
		Local:   nr.local,
	}
	if nr.result.Error != nil {
		msg := nr.result.Error.Error()
		sh.Error = &msg
	}
	if sh.Local {
		sh.Uptime = "running"
		if u, ok := nr.result.Details["uptime"].(string); ok {
			sh.Uptime = u
		}
	}
	return sh
}

// Status returns the entry's status.
func (s ServiceHealth) Status() Status {
	if s.Healthy {
		return StatusHealthy
	}
	return StatusUnhealthy
}

// MarshalJSON renders {"status","uptime"} for the local process and
// {"status","error"} with a null error otherwise.
func (s ServiceHealth) MarshalJSON() ([]byte, error) {
	if s.Local {
		return json.Marshal(struct {
			Status Status `json:"status"`
			Uptime string `json:"uptime"`
		}{s.Status(), s.Uptime})
	}
	return json.Marshal(struct {
		Status Status  `json:"status"`
		Error  *string `json:"error"`
	}{s.Status(), s.Error})
}

// OverallHealth is the aggregated health report.
// Status is "healthy" iff every entry in Services is healthy.
type OverallHealth struct {
	Status    Status                   `json:"status"`
	Timestamp string                   `json:"timestamp"`
	Version   string                   `json:"version"`
	Services  map[string]ServiceHealth `json:"services"`
}

// Healthy reports whether the overall status is healthy.
func (o OverallHealth) Healthy() bool { return o.Status == StatusHealthy }

// HTTPStatus returns 200 when healthy and 503 otherwise.
func (o OverallHealth) HTTPStatus() int {
	if o.Healthy() {
		return 200
	}
	return 503
}

// Report runs every check and folds the results into an OverallHealth
// stamped with the aggregation time.
func (a *Aggregator) Report(ctx context.Context, version string) OverallHealth {
	return buildReport(a.checkOrdered(ctx), version, time.Now())
}

func buildReport(named []namedResult, version string, now time.Time) OverallHealth {
	report := OverallHealth{
		Status:    StatusHealthy,
		Timestamp: now.UTC().Format(time.RFC3339),
		Version:   version,
		Services:  make(map[string]ServiceHealth, len(named)),
	}
	for _, nr := range named {
		sh := newServiceHealth(nr)
		if !sh.Healthy {
			report.Status = StatusUnhealthy
		}
		report.Services[nr.name] = sh
	}
	return report
}
