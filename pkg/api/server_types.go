package api

import (
	"time"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
	"github.com/dd0wney/cluso-resilience/pkg/graph"
	"github.com/dd0wney/cluso-resilience/pkg/health"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/metrics"
)

// DefaultMaxBodyBytes bounds POST bodies
const DefaultMaxBodyBytes int64 = 1 << 20

// Server represents the HTTP API server over one loaded graph. The graph is
// never mutated after NewServer.
type Server struct {
	graph           *graph.Graph
	analyzer        *algorithms.Analyzer
	critical        *algorithms.CriticalElements
	shape           algorithms.Shape
	opts            algorithms.Options
	topN            int
	logger          logging.Logger
	metricsRegistry *metrics.Registry
	healthChecker   *health.HealthChecker
	maxBodyBytes    int64
	startTime       time.Time
	version         string
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithLogger sets the request and analysis logger
func WithLogger(logger logging.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records HTTP and analysis metrics in reg and serves it on
// /metrics
func WithMetrics(reg *metrics.Registry) ServerOption {
	return func(s *Server) {
		if reg != nil {
			s.metricsRegistry = reg
		}
	}
}

// WithAnalysisOptions sets the defaults of POST /v1/analyze
func WithAnalysisOptions(opts algorithms.Options) ServerOption {
	return func(s *Server) {
		s.opts = opts
	}
}

// WithTopN sets how many records per kind an analysis summary lists
func WithTopN(n int) ServerOption {
	return func(s *Server) {
		if n >= 0 {
			s.topN = n
		}
	}
}

// WithMaxBodyBytes bounds request bodies
func WithMaxBodyBytes(n int64) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithVersion sets the version reported by /v1/graph
func WithVersion(v string) ServerOption {
	return func(s *Server) {
		s.version = v
	}
}
