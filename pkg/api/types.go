package api

import (
	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
	"github.com/dd0wney/cluso-resilience/pkg/graph"
)

// API Request/Response Types

// GraphResponse describes the loaded graph
type GraphResponse struct {
	graph.Statistics
	Shape                algorithms.Shape `json:"shape"`
	LargestComponentSize int              `json:"largest_component_size"`
	Version              string           `json:"version"`
	Uptime               string           `json:"uptime"`
}

// CriticalResponse lists the articulation points and bridges
type CriticalResponse struct {
	ArticulationPoints []uint64     `json:"articulation_points"`
	Bridges            []graph.Edge `json:"bridges"`
	Counts             struct {
		ArticulationPoints int `json:"articulation_points"`
		Bridges            int `json:"bridges"`
	} `json:"counts"`
}

// SimulateNodesResponse is the outcome of one simultaneous removal
type SimulateNodesResponse struct {
	Removed              []uint64 `json:"removed"`
	Ignored              []uint64 `json:"ignored"`
	BaselineComponents   int      `json:"baseline_components"`
	Components           int      `json:"components"`
	Increase             int      `json:"increase"`
	LargestComponentSize int      `json:"largest_component_size"`
	Severity             string   `json:"severity"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
