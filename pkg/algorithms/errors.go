package algorithms

import (
	"errors"
	"fmt"
)

// Sentinel errors for resilience analyses
var (
	ErrInsufficientElements = errors.New("insufficient critical elements")
	ErrInvalidSampleSize    = errors.New("invalid sample size")
	ErrEmptyGraph           = errors.New("graph has no nodes")
	ErrUnknownElement       = errors.New("element not in graph")
	ErrUnknownSeverity      = errors.New("unknown severity")
)

// AnalysisError provides structured error information for analysis operations.
type AnalysisError struct {
	Op      string // Operation that failed (e.g., "MultiNodeSweep")
	Element string // Element kind ("node", "edge", "articulation points")
	Ref     string // Element reference, if any
	Context string // Additional context
	Cause   error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Element, e.Ref, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Element, e.Context, e.Cause)
	}
	if e.Element != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Element, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building AnalysisErrors.
type ErrorBuilder struct {
	err AnalysisError
}

// NewError creates a new error builder for op.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: AnalysisError{Op: op}}
}

// Node sets the element to the given node.
func (b *ErrorBuilder) Node(id uint64) *ErrorBuilder {
	b.err.Element = "node"
	b.err.Ref = fmt.Sprintf("%d", id)
	return b
}

// Edge sets the element to the edge {u, v}.
func (b *ErrorBuilder) Edge(u, v uint64) *ErrorBuilder {
	b.err.Element = "edge"
	b.err.Ref = fmt.Sprintf("%d-%d", u, v)
	return b
}

// Element sets a free-form element kind.
func (b *ErrorBuilder) Element(kind string) *ErrorBuilder {
	b.err.Element = kind
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(format string, args ...any) *ErrorBuilder {
	b.err.Context = fmt.Sprintf(format, args...)
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the built error.
func (b *ErrorBuilder) Err() error {
	e := b.err
	return &e
}
