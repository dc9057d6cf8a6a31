package algorithms

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-resilience/pkg/graph"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/metrics"
	"github.com/dd0wney/cluso-resilience/pkg/parallel"
)

// Options controls a full impact analysis
type Options struct {
	// Workers shards the single-element sweeps; <= 0 means runtime.NumCPU()
	Workers int `json:"workers"`
	// Trials is the number of multi-node removal trials
	Trials int `json:"trials"`
	// SampleSize is the number of articulation points removed per trial
	SampleSize int `json:"sample_size"`
	// Seed makes the multi-node sweep reproducible
	Seed uint64 `json:"seed"`
}

// DefaultOptions returns 100 trials of 3 simultaneous removals
func DefaultOptions() Options {
	return Options{
		Workers:    runtime.NumCPU(),
		Trials:     100,
		SampleSize: 3,
		Seed:       1,
	}
}

// Report is the full result of one analysis run
type Report struct {
	RunID       string             `json:"run_id"`
	StartedAt   time.Time          `json:"started_at"`
	Nodes       int                `json:"nodes"`
	Edges       int                `json:"edges"`
	Baseline    ComponentStats     `json:"baseline"`
	Critical    *CriticalElements  `json:"critical"`
	NodeImpacts []ImpactRecord     `json:"node_impacts"`
	EdgeImpacts []ImpactRecord     `json:"edge_impacts"`
	Multi       *MultiRemovalStats `json:"multi,omitempty"`
	Options     Options            `json:"options"`

	DetectionDuration time.Duration `json:"detection_duration"`
	SweepDuration     time.Duration `json:"sweep_duration"`
	MultiDuration     time.Duration `json:"multi_duration"`
}

// Analyzer drives the detector and simulator over one graph.
type Analyzer struct {
	graph   *graph.Graph
	opts    Options
	logger  logging.Logger
	metrics *metrics.Registry
	sim     *Simulator
}

// AnalyzerOption configures an Analyzer
type AnalyzerOption func(*Analyzer)

// WithLogger sets the analyzer logger
func WithLogger(logger logging.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics records detector, simulation and sweep metrics in reg
func WithMetrics(reg *metrics.Registry) AnalyzerOption {
	return func(a *Analyzer) {
		a.metrics = reg
	}
}

// NewAnalyzer prepares an analysis of g. The graph must not be mutated while
// the analyzer is in use.
func NewAnalyzer(g *graph.Graph, opts Options, options ...AnalyzerOption) *Analyzer {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	a := &Analyzer{
		graph:  g,
		opts:   opts,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range options {
		opt(a)
	}
	a.sim = NewSimulator(g, WithSimulatorMetrics(a.metrics))
	return a
}

// Simulator returns the analyzer's simulator
func (a *Analyzer) Simulator() *Simulator {
	return a.sim
}

// Options returns the effective options
func (a *Analyzer) Options() Options {
	return a.opts
}

// Analyze detects the critical elements, sweeps each of them, and runs the
// multi-node sweep over the articulation points. The multi-node sweep is
// skipped when there are no articulation points; fewer articulation points
// than SampleSize fails with ErrInsufficientElements.
func (a *Analyzer) Analyze(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Nodes:     a.graph.NodeCount(),
		Edges:     a.graph.EdgeCount(),
		Baseline:  a.sim.Baseline(),
		Options:   a.opts,
	}
	logger := a.logger.With(logging.RunID(report.RunID))

	if err := a.analyze(ctx, logger, report); err != nil {
		a.metrics.RecordAnalysis("error")
		fields := []logging.Field{logging.Error(err)}
		var analysisErr *AnalysisError
		if errors.As(err, &analysisErr) {
			fields = append(fields, logging.Operation(analysisErr.Op))
		}
		logger.Error("analysis failed", fields...)
		return nil, err
	}
	a.metrics.RecordAnalysis("success")
	return report, nil
}

func (a *Analyzer) analyze(ctx context.Context, logger logging.Logger, report *Report) error {
	if report.Nodes == 0 {
		logger.Warn("analyzing empty graph")
	}
	logger.Info("analysis started",
		logging.Int("nodes", report.Nodes),
		logging.Int("edges", report.Edges),
		logging.Int("baseline_components", report.Baseline.Count),
		logging.Workers(a.opts.Workers))

	start := time.Now()
	report.Critical = a.Detect()
	report.DetectionDuration = time.Since(start)

	start = time.Now()
	nodeImpacts, err := a.SweepArticulationPoints(ctx, report.Critical.ArticulationPoints)
	if err != nil {
		return err
	}
	edgeImpacts, err := a.SweepBridges(ctx, report.Critical.Bridges)
	if err != nil {
		return err
	}
	report.NodeImpacts = nodeImpacts
	report.EdgeImpacts = edgeImpacts
	report.SweepDuration = time.Since(start)

	if len(report.Critical.ArticulationPoints) == 0 {
		logger.Info("multi-node sweep skipped, no articulation points")
		return nil
	}

	start = time.Now()
	multi, err := a.MultiNodeSweep(ctx, report.Critical.ArticulationPoints)
	if err != nil {
		return err
	}
	report.Multi = multi
	report.MultiDuration = time.Since(start)

	logger.Info("analysis finished",
		logging.Duration("detection", report.DetectionDuration),
		logging.Duration("sweep", report.SweepDuration),
		logging.Duration("multi", report.MultiDuration))
	return nil
}

// Detect runs the critical-element detector and records its metrics
func (a *Analyzer) Detect() *CriticalElements {
	timer := logging.StartTimer(a.logger, "detect critical elements")
	critical := FindCriticalElements(a.graph)
	elapsed := timer.End(
		logging.Int("articulation_points", len(critical.ArticulationPoints)),
		logging.Int("bridges", len(critical.Bridges)))
	a.metrics.RecordDetection(elapsed, len(critical.ArticulationPoints), len(critical.Bridges))
	return critical
}

// SweepArticulationPoints simulates the removal of each node independently.
// Records are sorted by resulting component count, highest first.
func (a *Analyzer) SweepArticulationPoints(ctx context.Context, nodes []uint64) ([]ImpactRecord, error) {
	return a.sweep(ctx, "articulation_points", len(nodes), func(sc *simScratch, i int) ImpactRecord {
		return a.sim.nodeRemoval(sc, nodes[i])
	})
}

// SweepBridges simulates the removal of each edge independently.
// Records are sorted by resulting component count, highest first.
func (a *Analyzer) SweepBridges(ctx context.Context, edges []graph.Edge) ([]ImpactRecord, error) {
	return a.sweep(ctx, "bridges", len(edges), func(sc *simScratch, i int) ImpactRecord {
		return a.sim.edgeRemoval(sc, edges[i])
	})
}

// sweep shards n simulations across a worker pool. Every shard writes a
// disjoint slice of the result buffer.
func (a *Analyzer) sweep(ctx context.Context, name string, n int, simulate func(*simScratch, int) ImpactRecord) ([]ImpactRecord, error) {
	records := make([]ImpactRecord, n)
	if n == 0 {
		return records, nil
	}

	pool, err := parallel.NewWorkerPool(min(a.opts.Workers, n), parallel.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("sweep %s: %w", name, err)
	}
	defer pool.Close()

	debug := a.logger.GetLevel() <= logging.DebugLevel
	timer := logging.StartTimer(a.logger, "sweep "+name, logging.Count(n), logging.Workers(pool.Workers()))
	err = parallel.ForEachShard(ctx, pool, n, func(ctx context.Context, _ int, r parallel.Range) error {
		sc := a.sim.newScratch()
		for i := r.Start; i < r.End; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i] = simulate(sc, i)
			if !debug {
				continue
			}
			a.logger.Debug("simulated removal",
				logging.Kind(string(records[i].Kind)),
				logging.String("element", records[i].ElementID()),
				logging.Int("components", records[i].Components),
				logging.Severity(records[i].Severity.String()))
		}
		return nil
	})
	if err != nil {
		timer.EndError(err)
		return nil, NewError("Sweep").Element(name).Cause(err).Err()
	}
	a.metrics.RecordSweep(name, timer.End())

	for _, rec := range records {
		a.metrics.RecordSeverity(string(rec.Kind), rec.Severity.String())
	}
	SortByImpact(records)
	return records, nil
}

// MultiNodeSweep runs Options.Trials simultaneous removals of
// Options.SampleSize distinct candidates. Trials are drawn sequentially from
// the seeded sampler and evaluated in parallel, so results depend only on
// the seed.
func (a *Analyzer) MultiNodeSweep(ctx context.Context, candidates []uint64) (*MultiRemovalStats, error) {
	trials, k := a.opts.Trials, a.opts.SampleSize
	if err := validateMultiSweep(candidates, trials, k); err != nil {
		return nil, err
	}

	draws := drawTrials(NewSampler(a.opts.Seed), candidates, trials, k)
	if len(draws) == 0 {
		return aggregateTrials(k, nil), nil
	}

	pool, err := parallel.NewWorkerPool(min(a.opts.Workers, len(draws)), parallel.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("multi-node sweep: %w", err)
	}
	defer pool.Close()

	timer := logging.StartTimer(a.logger, "multi-node sweep",
		logging.Int("trials", trials), logging.Int("sample_size", k))
	stats, err := multiNodeSweepParallel(ctx, pool, a.sim, draws, k)
	if err != nil {
		timer.EndError(err)
		return nil, NewError("MultiNodeSweep").Cause(err).Err()
	}
	elapsed := timer.End(
		logging.Float64("mean_components", stats.Mean),
		logging.Int("max_components", stats.Max))
	a.metrics.RecordSweep("multi_node", elapsed)
	a.metrics.RecordMultiSweep(stats.Trials, stats.Max)
	return stats, nil
}

// SortByImpact orders records by resulting component count, highest first.
// Ties keep detection order.
func SortByImpact(records []ImpactRecord) {
	slices.SortStableFunc(records, func(x, y ImpactRecord) int {
		return y.Components - x.Components
	})
}
