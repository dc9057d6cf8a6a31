package api

import (
	"net/http"
	"time"
)

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, GraphResponse{
		Statistics:           s.graph.Statistics(),
		Shape:                s.shape,
		LargestComponentSize: s.analyzer.Simulator().Baseline().LargestSize,
		Version:              s.version,
		Uptime:               time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleCritical(w http.ResponseWriter, r *http.Request) {
	var response CriticalResponse
	response.ArticulationPoints = s.critical.ArticulationPoints
	response.Bridges = s.critical.Bridges
	response.Counts.ArticulationPoints = len(s.critical.ArticulationPoints)
	response.Counts.Bridges = len(s.critical.Bridges)
	s.respondJSON(w, http.StatusOK, response)
}
