package api

import (
	"errors"
	"net/http"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
	"github.com/dd0wney/cluso-resilience/pkg/graph"
	"github.com/dd0wney/cluso-resilience/pkg/validation"
)

// handleSimulateNode answers GET /v1/simulate/node?id=N
func (s *Server) handleSimulateNode(w http.ResponseWriter, r *http.Request) {
	q := s.NewQueryExtractor(w, r)
	id := q.Uint64("id")
	if !q.OK() {
		return
	}

	sim := s.analyzer.Simulator()
	if err := sim.CheckNode(id); err != nil {
		s.respondAnalysisError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, sim.NodeRemoval(id))
}

// handleSimulateEdge answers GET /v1/simulate/edge?u=A&v=B. With parallel
// edges the first stored copy is removed.
func (s *Server) handleSimulateEdge(w http.ResponseWriter, r *http.Request) {
	q := s.NewQueryExtractor(w, r)
	u, v := q.Uint64("u"), q.Uint64("v")
	if !q.OK() {
		return
	}

	sim := s.analyzer.Simulator()
	edge, err := sim.CheckEdge(graph.Edge{ID: -1, U: u, V: v})
	if err != nil {
		s.respondAnalysisError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, sim.EdgeRemoval(edge))
}

// handleSimulateNodes answers POST /v1/simulate/nodes. Unknown IDs are
// reported back and otherwise ignored.
func (s *Server) handleSimulateNodes(w http.ResponseWriter, r *http.Request) {
	var req validation.SimulateNodesRequest
	decoder := s.NewRequestDecoder(w, r).
		DecodeJSON(&req).
		Validate(func() error { return validation.ValidateSimulateNodesRequest(&req) })
	if decoder.RespondError() {
		return
	}

	response := SimulateNodesResponse{
		Removed: []uint64{},
		Ignored: []uint64{},
	}
	seen := make(map[uint64]struct{}, len(req.Nodes))
	for _, id := range req.Nodes {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if s.graph.HasNode(id) {
			response.Removed = append(response.Removed, id)
		} else {
			response.Ignored = append(response.Ignored, id)
		}
	}

	sim := s.analyzer.Simulator()
	stats := sim.MultiNodeRemoval(response.Removed)
	response.BaselineComponents = sim.Baseline().Count
	response.Components = stats.Count
	response.LargestComponentSize = stats.LargestSize
	response.Increase = stats.Count - response.BaselineComponents
	response.Severity = algorithms.Classify(response.Increase).String()
	s.respondJSON(w, http.StatusOK, response)
}

// respondAnalysisError maps analysis sentinels to status codes
func (s *Server) respondAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, algorithms.ErrUnknownElement):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, algorithms.ErrInsufficientElements):
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, algorithms.ErrInvalidSampleSize):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, algorithms.ErrEmptyGraph):
		s.respondError(w, http.StatusConflict, err.Error())
	default:
		s.respondError(w, http.StatusInternalServerError, "Analysis failed")
	}
}
