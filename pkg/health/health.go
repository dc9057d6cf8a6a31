package health

import (
	"maps"
	"slices"
	"time"
)

// NewHealthChecker returns a checker with no checks; every probe reports
// healthy until one is registered
func NewHealthChecker() *HealthChecker {
	hc := &HealthChecker{startedAt: time.Now()}
	for i := range hc.probes {
		hc.probes[i] = make(map[string]CheckFunc)
	}
	return hc
}

// Register adds fn to probe p under name, replacing any check of that name
func (hc *HealthChecker) Register(p Probe, name string, fn CheckFunc) {
	if p < 0 || p >= probeCount {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.probes[p][name] = fn
}

// Run executes the checks of probe p in name order. The lock is released
// before any check runs, so a slow check never blocks registration.
func (hc *HealthChecker) Run(p Probe) Response {
	resp := Response{
		Probe:     p.String(),
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Checks:    map[string]Check{},
		Uptime:    time.Since(hc.startedAt).Seconds(),
	}
	if p < 0 || p >= probeCount {
		return resp
	}

	hc.mu.RLock()
	checks := maps.Clone(hc.probes[p])
	hc.mu.RUnlock()

	for _, name := range slices.Sorted(maps.Keys(checks)) {
		start := time.Now()
		check := checks[name]()
		check.LastChecked = start
		check.Duration = time.Since(start)
		if check.Name == "" {
			check.Name = name
		}
		resp.Checks[name] = check
		resp.Status = worse(resp.Status, check.Status)
	}
	return resp
}
