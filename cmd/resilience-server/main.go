// Command resilience-server loads one graph and serves its critical elements
// and removal simulations over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
	"github.com/dd0wney/cluso-resilience/pkg/api"
	"github.com/dd0wney/cluso-resilience/pkg/config"
	"github.com/dd0wney/cluso-resilience/pkg/edgelist"
	"github.com/dd0wney/cluso-resilience/pkg/graph"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/metrics"
	"github.com/dd0wney/cluso-resilience/pkg/topology"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "YAML config file")
	input := flag.String("input", "", "Edge list to serve")
	demo := flag.Bool("demo", false, "Serve the built-in 5-node network")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resilience-server: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	logging.SetDefaultLogger(cfg.Logger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, *input, *demo, logging.DefaultLogger()); err != nil {
		logging.ErrorLog("server exited", logging.Error(err))
		os.Exit(1)
	}
	logging.Info("server exited")
}

func serve(ctx context.Context, cfg *config.Config, input string, demo bool, logger logging.Logger) error {
	reg := metrics.NewRegistry()
	g, err := loadGraph(cfg, input, demo, logger, reg)
	if err != nil {
		return err
	}

	server := api.NewServer(g,
		api.WithLogger(logger),
		api.WithMetrics(reg),
		api.WithAnalysisOptions(cfg.AnalysisOptions()),
		api.WithTopN(cfg.Analysis.TopN),
		api.WithVersion(version),
	)
	return server.Run(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
}

// loadGraph records load and ingest metrics in reg so /metrics shows them
func loadGraph(cfg *config.Config, input string, demo bool, logger logging.Logger, reg *metrics.Registry) (*graph.Graph, error) {
	if demo {
		logger.Info("serving demo network")
		return topology.SmallNetwork(), nil
	}
	if input == "" {
		return nil, errors.New("no input: pass -input FILE or -demo")
	}

	opts := cfg.EdgeListOptions(logger)
	opts.Metrics = reg
	g, stats, err := edgelist.Load(input, opts)
	if err != nil {
		return nil, err
	}
	if g.NodeCount() == 0 {
		return nil, fmt.Errorf("%s: %w", input, algorithms.ErrEmptyGraph)
	}
	logger.Info("graph loaded",
		logging.Path(input),
		logging.Int("nodes", g.NodeCount()),
		logging.Int("edges", g.EdgeCount()),
		logging.Int("malformed", stats.Malformed),
		logging.Int("self_loops", stats.SelfLoops))
	return g, nil
}
