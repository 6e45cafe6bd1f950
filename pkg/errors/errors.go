// Package errors provides structured error types for the hypertower CLI and
// HTTP API.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// Library packages (hypergraph, transform, layout) keep exporting plain
// sentinel errors. [FromGraphError] classifies those sentinels at the
// surface so that callers can branch on a [Code] and the server can pick a
// status with [HTTPStatus].
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Classify an error returned by the graph packages
//	err = errors.FromGraphError(err)
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
	"github.com/matzehuels/hypertower/pkg/hypergraph/transform"
	"github.com/matzehuels/hypertower/pkg/render/layout"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle   Code = "INVALID_STYLE"
	ErrCodeInvalidVizType Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeInvalidLabel   Code = "INVALID_LABEL"

	// Graph construction errors
	ErrCodeInvalidGraph   Code = "INVALID_GRAPH"
	ErrCodeForeignNode    Code = "FOREIGN_NODE"
	ErrCodeEmptyEndpoints Code = "EMPTY_ENDPOINTS"
	ErrCodeOrphanedEdge   Code = "ORPHANED_EDGE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// =============================================================================
// Classification
// =============================================================================

// sentinelCodes maps library sentinels to their surface code. Order matters:
// the first match wins.
var sentinelCodes = []struct {
	err  error
	code Code
	msg  string
}{
	{hypergraph.ErrForeignNode, ErrCodeForeignNode, "edge references a node of another graph"},
	{hypergraph.ErrEmptyEndpoints, ErrCodeEmptyEndpoints, "edge has no inputs or no outputs"},
	{hypergraph.ErrNoSubgraphs, ErrCodeInvalidGraph, "hierarchical edge has no subgraphs"},
	{hypergraph.ErrNilSubgraph, ErrCodeInvalidGraph, "hierarchical edge has a missing subgraph"},
	{hypergraph.ErrSelfNesting, ErrCodeInvalidGraph, "graph is nested inside itself"},
	{hypergraph.ErrIndexMismatch, ErrCodeInternal, "graph indexes are inconsistent"},
	{graph.ErrUnknownNode, ErrCodeInvalidGraph, "edge references an undeclared node"},
	{graph.ErrDuplicateNode, ErrCodeInvalidGraph, "node id declared twice"},
	{graph.ErrAmbiguousBody, ErrCodeInvalidGraph, "edge has both a label and subgraphs"},
	{transform.ErrOrphanedEdge, ErrCodeOrphanedEdge, "edge is not reachable from any source"},
	{layout.ErrNestingTooDeep, ErrCodeInvalidGraph, "hierarchical nesting is too deep"},
	{layout.ErrRecursiveNesting, ErrCodeInvalidGraph, "graph is nested inside itself"},
	{fs.ErrNotExist, ErrCodeFileNotFound, "file not found"},
}

// FromGraphError classifies err into an *Error. Errors that already carry a
// code are returned unchanged; known sentinels from the graph packages get a
// specific code; anything else is INTERNAL_ERROR. Returns nil for nil.
func FromGraphError(err error) error {
	if err == nil {
		return nil
	}
	if GetCode(err) != "" {
		return err
	}
	for _, s := range sentinelCodes {
		if errors.Is(err, s.err) {
			return Wrap(s.code, err, "%s", s.msg)
		}
	}
	return Wrap(ErrCodeInternal, err, "unexpected error")
}

// HTTPStatus returns the HTTP status code for an error code.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidStyle,
		ErrCodeInvalidVizType, ErrCodeInvalidPath, ErrCodeInvalidLabel:
		return http.StatusBadRequest
	case ErrCodeInvalidGraph, ErrCodeForeignNode, ErrCodeEmptyEndpoints, ErrCodeOrphanedEdge:
		return http.StatusUnprocessableEntity
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
