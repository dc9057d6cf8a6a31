package health

import "time"

// Common health check functions

// SimpleCheck creates a simple health check that always returns healthy
func SimpleCheck(name string) Check {
	return Check{
		Name:        name,
		Status:      StatusHealthy,
		LastChecked: time.Now(),
	}
}

// GraphCheck reports whether an analyzable graph is loaded. A graph with no
// nodes is degraded, a load failure is unhealthy.
func GraphCheck(getGraph func() (nodes, edges int, err error)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "graph",
			Details: make(map[string]any),
		}

		nodes, edges, err := getGraph()
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}

		check.Details["nodes"] = nodes
		check.Details["edges"] = edges

		if nodes == 0 {
			check.Status = StatusDegraded
			check.Message = "Graph is empty"
		} else {
			check.Status = StatusHealthy
			check.Message = "Graph loaded"
		}

		return check
	}
}

// ConnectivityCheck reports a fragmented baseline as degraded. The service
// still answers, but every simulation starts from more than one component.
func ConnectivityCheck(getComponents func() (components, largest, nodes int)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "connectivity",
			Details: make(map[string]any),
		}

		components, largest, nodes := getComponents()

		check.Details["components"] = components
		check.Details["largest_component_size"] = largest
		check.Details["nodes"] = nodes

		if components > 1 {
			check.Status = StatusDegraded
			check.Message = "Baseline graph is disconnected"
		} else {
			check.Status = StatusHealthy
			check.Message = "Baseline graph is connected"
		}

		return check
	}
}

// MemoryCheck creates a health check for memory usage
func MemoryCheck(getUsage func() (alloc, sys uint64)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "memory",
			Details: make(map[string]any),
		}

		alloc, sys := getUsage()

		check.Details["alloc_bytes"] = alloc
		check.Details["sys_bytes"] = sys

		if sys == 0 {
			check.Status = StatusHealthy
			check.Message = "Memory usage unknown"
			return check
		}

		// Consider degraded if allocated memory > 90% of system memory
		usagePercent := float64(alloc) / float64(sys) * 100

		if usagePercent > 90 {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		} else {
			check.Status = StatusHealthy
			check.Message = "Memory usage normal"
		}

		return check
	}
}
