package health

import (
	"sync"
	"time"
)

// Status is the state a check reports
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

func (s Status) rank() int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// worse returns whichever of a and b is further from healthy. Unknown
// statuses count as unhealthy.
func worse(a, b Status) Status {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// Probe selects which set of checks an endpoint runs
type Probe int

const (
	// ProbeOverall backs /health and tolerates degraded checks
	ProbeOverall Probe = iota
	// ProbeReadiness backs /health/ready
	ProbeReadiness
	// ProbeLiveness backs /health/live
	ProbeLiveness
	probeCount
)

func (p Probe) String() string {
	switch p {
	case ProbeOverall:
		return "overall"
	case ProbeReadiness:
		return "readiness"
	case ProbeLiveness:
		return "liveness"
	}
	return "unknown"
}

// Check is the outcome of one named check
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	Duration    time.Duration  `json:"duration_ms"`
}

// CheckFunc produces a Check on demand
type CheckFunc func() Check

// HealthChecker holds the registered checks of every probe
type HealthChecker struct {
	mu        sync.RWMutex
	probes    [probeCount]map[string]CheckFunc
	startedAt time.Time
}

// Response is the body of every health endpoint
type Response struct {
	Probe     string           `json:"probe"`
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
	Uptime    float64          `json:"uptime_seconds"`
}
