// Command resilience-tui browses the impact analysis of one graph in the
// terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
	"github.com/dd0wney/cluso-resilience/pkg/config"
	"github.com/dd0wney/cluso-resilience/pkg/edgelist"
	"github.com/dd0wney/cluso-resilience/pkg/graph"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/topology"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	input := flag.String("input", "", "Edge list to analyze")
	demo := flag.Bool("demo", false, "Analyze the built-in 5-node network")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Logs would corrupt the alternate screen
	logger := logging.NewNopLogger()

	g, source, err := loadGraph(cfg, *input, *demo, logger)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}

	opts := cfg.AnalysisOptions()
	if *demo {
		opts.SampleSize = min(opts.SampleSize, 2)
	}
	analyzer := algorithms.NewAnalyzer(g, opts, algorithms.WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(newModel(ctx, analyzer, source, cfg.Analysis.TopN), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func loadGraph(cfg *config.Config, input string, demo bool, logger logging.Logger) (*graph.Graph, string, error) {
	if demo {
		return topology.SmallNetwork(), "demo network", nil
	}
	if input == "" {
		return nil, "", errors.New("no input: pass -input FILE or -demo")
	}
	g, _, err := edgelist.Load(input, cfg.EdgeListOptions(logger))
	if err != nil {
		return nil, "", err
	}
	if g.NodeCount() == 0 {
		return nil, "", fmt.Errorf("%s: %w", input, algorithms.ErrEmptyGraph)
	}
	return g, input, nil
}
