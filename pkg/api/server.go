// Package api serves resilience analyses of one loaded graph over HTTP.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
	"github.com/dd0wney/cluso-resilience/pkg/api/middleware"
	"github.com/dd0wney/cluso-resilience/pkg/graph"
	"github.com/dd0wney/cluso-resilience/pkg/health"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/metrics"
	"github.com/dd0wney/cluso-resilience/pkg/report"
)

const (
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

// NewServer prepares the API for g. Critical elements and the graph shape
// are computed once here; every request reads them.
func NewServer(g *graph.Graph, opts ...ServerOption) *Server {
	s := &Server{
		graph:           g,
		opts:            algorithms.DefaultOptions(),
		topN:            report.DefaultTopN,
		logger:          logging.NewNopLogger(),
		metricsRegistry: metrics.NewRegistry(),
		maxBodyBytes:    DefaultMaxBodyBytes,
		startTime:       time.Now(),
		version:         "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logging.Component("api"))

	s.analyzer = algorithms.NewAnalyzer(g, s.opts,
		algorithms.WithLogger(s.logger),
		algorithms.WithMetrics(s.metricsRegistry))
	s.opts = s.analyzer.Options()
	s.critical = s.analyzer.Detect()
	s.shape = algorithms.DescribeShape(g)

	stats := g.Statistics()
	s.metricsRegistry.UpdateGraphMetrics(stats.NodeCount, stats.EdgeCount,
		s.shape.Components, stats.ParallelEdges, stats.IsolatedNodes)

	s.healthChecker = s.newHealthChecker()
	return s
}

func (s *Server) newHealthChecker() *health.HealthChecker {
	hc := health.NewHealthChecker()

	// The overall probe carries every check; liveness and readiness carry
	// the subset their status codes depend on
	apiCheck := func() health.Check {
		return health.SimpleCheck("api")
	}
	graphCheck := health.GraphCheck(func() (int, int, error) {
		return s.graph.NodeCount(), s.graph.EdgeCount(), nil
	})
	hc.Register(health.ProbeLiveness, "api", apiCheck)
	hc.Register(health.ProbeOverall, "api", apiCheck)
	hc.Register(health.ProbeReadiness, "graph", graphCheck)
	hc.Register(health.ProbeOverall, "graph", graphCheck)
	hc.Register(health.ProbeOverall, "connectivity", health.ConnectivityCheck(func() (int, int, int) {
		baseline := s.analyzer.Simulator().Baseline()
		return baseline.Count, baseline.LargestSize, baseline.Nodes
	}))
	hc.Register(health.ProbeOverall, "memory", health.MemoryCheck(func() (uint64, uint64) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return m.Alloc, m.Sys
	}))
	return hc
}

// Handler returns the routed API with its middleware chain
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("GET /health", s.healthChecker.Handler(health.ProbeOverall))
	mux.HandleFunc("GET /health/ready", s.healthChecker.Handler(health.ProbeReadiness))
	mux.HandleFunc("GET /health/live", s.healthChecker.Handler(health.ProbeLiveness))
	mux.Handle("GET /metrics", promhttp.HandlerFor(
		s.metricsRegistry.GetPrometheusRegistry(),
		promhttp.HandlerOpts{Registry: s.metricsRegistry.GetPrometheusRegistry()}))

	// Graph and critical elements
	mux.HandleFunc("GET /v1/graph", s.handleGraph)
	mux.HandleFunc("GET /v1/critical", s.handleCritical)

	// Simulations
	mux.HandleFunc("GET /v1/simulate/node", s.handleSimulateNode)
	mux.HandleFunc("GET /v1/simulate/edge", s.handleSimulateEdge)
	mux.HandleFunc("POST /v1/simulate/nodes", s.handleSimulateNodes)

	// Full analysis
	mux.HandleFunc("POST /v1/analyze", s.handleAnalyze)

	// Nothing between Metrics and the mux may copy the request, or the
	// matched route pattern is lost
	var handler http.Handler = middleware.BodySizeLimit(s.maxBodyBytes)(mux)
	handler = middleware.Metrics(s.metricsRegistry)(handler)
	handler = middleware.Logging(s.logger, middleware.GetRequestID)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.PanicRecovery(s.logger)(handler)
	return handler
}

// Run serves on addr until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, readTimeout, writeTimeout)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener, readTimeout, writeTimeout time.Duration) error {
	server := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.updateMetricsPeriodically(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening",
			logging.String("addr", ln.Addr().String()),
			logging.Int("nodes", s.graph.NodeCount()),
			logging.Int("edges", s.graph.EdgeCount()))
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server exited")
	return nil
}

// updateMetricsPeriodically refreshes uptime and runtime gauges until ctx ends
func (s *Server) updateMetricsPeriodically(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	s.metricsRegistry.UpdateSystemMetrics(s.startTime)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.metricsRegistry.UpdateSystemMetrics(s.startTime)
		}
	}
}
