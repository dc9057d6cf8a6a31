package api

import (
	"net/http"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/report"
	"github.com/dd0wney/cluso-resilience/pkg/validation"
)

// handleAnalyze runs a full analysis and answers with its summary. The body
// is optional; its fields override the server's analysis defaults.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req validation.AnalyzeRequest
	decoder := s.NewRequestDecoder(w, r).
		DecodeOptionalJSON(&req).
		Validate(func() error { return validation.ValidateAnalyzeRequest(&req) })
	if decoder.RespondError() {
		return
	}

	opts, topN := s.analysisOptions(&req)
	analyzer := algorithms.NewAnalyzer(s.graph, opts,
		algorithms.WithLogger(s.logger),
		algorithms.WithMetrics(s.metricsRegistry))

	rep, err := analyzer.Analyze(r.Context())
	if err != nil {
		if r.Context().Err() != nil {
			s.logger.Warn("analysis abandoned by client", logging.Error(err))
			return
		}
		s.respondAnalysisError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, report.Summarize(rep, topN))
}

func (s *Server) analysisOptions(req *validation.AnalyzeRequest) (algorithms.Options, int) {
	opts, topN := s.opts, s.topN
	if req.Trials != nil {
		opts.Trials = *req.Trials
	}
	if req.SampleSize != nil {
		opts.SampleSize = *req.SampleSize
	}
	if req.Seed != nil {
		opts.Seed = *req.Seed
	}
	if req.Top != nil {
		topN = *req.Top
	}
	return opts, topN
}
