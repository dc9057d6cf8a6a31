package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dd0wney/cluso-resilience/pkg/logging"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	s.respondJSON(w, status, response)
}

// requestDecoder decodes and validates request bodies.
// It provides a fluent interface for common request handling patterns.
type requestDecoder struct {
	r          *http.Request
	w          http.ResponseWriter
	server     *Server
	err        error
	statusCode int
}

// NewRequestDecoder creates a new request decoder for the given request.
func (s *Server) NewRequestDecoder(w http.ResponseWriter, r *http.Request) *requestDecoder {
	return &requestDecoder{
		r:      r,
		w:      w,
		server: s,
	}
}

// DecodeJSON decodes the request body into v. Unknown fields are rejected.
func (rd *requestDecoder) DecodeJSON(v any) *requestDecoder {
	return rd.decode(v, false)
}

// DecodeOptionalJSON is DecodeJSON but leaves v untouched on an empty body
func (rd *requestDecoder) DecodeOptionalJSON(v any) *requestDecoder {
	return rd.decode(v, true)
}

func (rd *requestDecoder) decode(v any, optional bool) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	dec := json.NewDecoder(rd.r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	switch {
	case err == nil:
	case optional && errors.Is(err, io.EOF):
	default:
		rd.fail(decodeStatus(err), fmt.Errorf("invalid request body: %w", err))
	}
	return rd
}

func decodeStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// Validate runs check and records its error as a 400
func (rd *requestDecoder) Validate(check func() error) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if err := check(); err != nil {
		rd.fail(http.StatusBadRequest, err)
	}
	return rd
}

func (rd *requestDecoder) fail(status int, err error) {
	rd.err = err
	rd.statusCode = status
}

// RespondError sends the error response and returns true if there was an error.
// Returns false if no error occurred.
func (rd *requestDecoder) RespondError() bool {
	if rd.err == nil {
		return false
	}
	rd.server.respondError(rd.w, rd.statusCode, rd.err.Error())
	return true
}

// queryExtractor parses required query parameters, answering 400 on the
// first bad one
type queryExtractor struct {
	w      http.ResponseWriter
	r      *http.Request
	server *Server
	failed bool
}

// NewQueryExtractor creates a new query parameter extractor.
func (s *Server) NewQueryExtractor(w http.ResponseWriter, r *http.Request) *queryExtractor {
	return &queryExtractor{w: w, r: r, server: s}
}

// Uint64 parses the named parameter. After a failure every further call
// returns 0 without responding again.
func (qe *queryExtractor) Uint64(name string) uint64 {
	if qe.failed {
		return 0
	}
	raw := qe.r.URL.Query().Get(name)
	if raw == "" {
		qe.fail(fmt.Sprintf("Missing query parameter %q", name))
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		qe.fail(fmt.Sprintf("Invalid node ID %q for parameter %q", raw, name))
		return 0
	}
	return v
}

func (qe *queryExtractor) fail(message string) {
	qe.failed = true
	qe.server.respondError(qe.w, http.StatusBadRequest, message)
}

// OK reports whether every parameter parsed
func (qe *queryExtractor) OK() bool {
	return !qe.failed
}
