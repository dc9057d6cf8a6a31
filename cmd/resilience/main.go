// Command resilience loads an edge list, finds its articulation points and
// bridges, simulates their removal and prints a resilience report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
	"github.com/dd0wney/cluso-resilience/pkg/config"
	"github.com/dd0wney/cluso-resilience/pkg/edgelist"
	"github.com/dd0wney/cluso-resilience/pkg/graph"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/report"
	"github.com/dd0wney/cluso-resilience/pkg/topology"
)

const (
	selfTestNodes = 10
	// the demo network has two articulation points
	demoSampleSize = 2
)

var errSelfTestFailed = errors.New("self-test failed")

type options struct {
	configPath string
	input      string
	demo       bool
	jsonOut    bool
	selfTest   bool
	density    int
	export     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "resilience: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts options
	fs := flag.NewFlagSet("resilience", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.StringVar(&opts.input, "input", "", "Edge list to analyze (.sz/.snappy and .gz are decompressed)")
	fs.BoolVar(&opts.demo, "demo", false, "Analyze the built-in 5-node network instead of -input")
	fs.BoolVar(&opts.jsonOut, "json", false, "Print the summary as JSON")
	fs.BoolVar(&opts.selfTest, "selftest", false, "Verify the detector against the benchmark topologies and exit")
	fs.IntVar(&opts.density, "density", 0, "Run the bridge density sweep on N random nodes and exit")
	fs.StringVar(&opts.export, "export", "", "Write the loaded graph to this path (format by extension)")
	trials := fs.Int("trials", 0, "Multi-failure trials (overrides config)")
	sample := fs.Int("sample", 0, "Articulation points removed per trial (overrides config)")
	workers := fs.Int("workers", 0, "Sweep workers, 0 for one per CPU (overrides config)")
	seed := fs.Uint64("seed", 0, "Random seed (overrides config)")
	top := fs.Int("top", 0, "Records listed per element kind (overrides config)")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
		switch f.Name {
		case "trials":
			cfg.Analysis.Trials = *trials
		case "sample":
			cfg.Analysis.SampleSize = *sample
		case "workers":
			cfg.Analysis.Workers = *workers
		case "seed":
			cfg.Analysis.Seed = *seed
		case "top":
			cfg.Analysis.TopN = *top
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if opts.demo && !set["sample"] {
		cfg.Analysis.SampleSize = min(cfg.Analysis.SampleSize, demoSampleSize)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.NewJSONLogger(stderr, logging.ParseLevel(cfg.LogLevel))

	switch {
	case opts.selfTest:
		return selfTest(stdout, opts.jsonOut)
	case opts.density > 0:
		return densitySweep(ctx, stdout, opts.density, cfg.Analysis.Seed, opts.jsonOut)
	}

	g, err := loadGraph(opts, cfg, logger)
	if err != nil {
		return err
	}
	if opts.export != "" {
		if err := edgelist.Save(opts.export, g); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		logger.Info("graph exported", logging.Path(opts.export))
	}

	analyzer := algorithms.NewAnalyzer(g, cfg.AnalysisOptions(), algorithms.WithLogger(logger))
	rep, err := analyzer.Analyze(ctx)
	if err != nil {
		return err
	}

	summary := report.Summarize(rep, cfg.Analysis.TopN)
	if opts.jsonOut {
		return report.WriteJSON(stdout, summary)
	}
	return report.Render(stdout, summary)
}

func loadGraph(opts options, cfg *config.Config, logger logging.Logger) (*graph.Graph, error) {
	switch {
	case opts.demo && opts.input != "":
		return nil, errors.New("-demo and -input are mutually exclusive")
	case opts.demo:
		return topology.SmallNetwork(), nil
	case opts.input == "":
		return nil, errors.New("no input: pass -input FILE or -demo")
	}

	g, stats, err := edgelist.Load(opts.input, cfg.EdgeListOptions(logger))
	if err != nil {
		return nil, err
	}
	logger.Info("graph loaded",
		logging.Path(opts.input),
		logging.Int("nodes", g.NodeCount()),
		logging.Int("edges", g.EdgeCount()))
	if stats.Malformed+stats.SelfLoops > 0 {
		logger.Warn("skipped input lines",
			logging.Int("malformed", stats.Malformed),
			logging.Int("self_loops", stats.SelfLoops))
	}
	if g.NodeCount() == 0 {
		return nil, fmt.Errorf("%s: %w", opts.input, algorithms.ErrEmptyGraph)
	}
	return g, nil
}

func selfTest(w io.Writer, jsonOut bool) error {
	results, err := algorithms.VerifyBenchmarks(selfTestNodes)
	if err != nil {
		return err
	}

	if jsonOut {
		err = writeJSON(w, results)
	} else {
		err = report.RenderBenchmarks(w, results)
	}
	if err != nil {
		return err
	}

	for _, r := range results {
		if !r.Pass() {
			return fmt.Errorf("%w: %s", errSelfTestFailed, r.Name)
		}
	}
	return nil
}

func densitySweep(ctx context.Context, w io.Writer, n int, seed uint64, jsonOut bool) error {
	points, err := algorithms.DensitySweep(ctx, n, algorithms.NewSampler(seed))
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(w, points)
	}
	return report.RenderDensity(w, n, points)
}
