// Package oaserrors provides structured error types for oasrouter.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish a request that matched no
// route from one whose route exists but does not declare the method.
//
// # Error Categories
//
//   - RouteError: request matching failures (404 not found, 405 method not allowed)
//   - ParseError: contract document decoding failures
//   - ConfigError: invalid router options or contract content
//
// # Usage with errors.Is
//
//	op, err := r.MatchOperation(req, true)
//	switch {
//	case errors.Is(err, oaserrors.ErrNotFound):
//	    // respond 404
//	case errors.Is(err, oaserrors.ErrMethodNotAllowed):
//	    var routeErr *oaserrors.RouteError
//	    errors.As(err, &routeErr)
//	    // respond 405 with routeErr.Allowed
//	}
package oaserrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Fixed, machine-readable messages of the two routing failures.
const (
	NotFoundMessage         = "404-notFound: no route matches request"
	MethodNotAllowedMessage = "405-methodNotAllowed: this method is not registered for the route"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrNotFound indicates no operation path matches the request path.
	ErrNotFound = errors.New(NotFoundMessage)

	// ErrMethodNotAllowed indicates a path matched but none of the matching
	// operations declares the request method.
	ErrMethodNotAllowed = errors.New(MethodNotAllowedMessage)

	// ErrParse indicates a contract document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// RouteError represents a strict-mode matching failure.
// Its Error() text is always exactly one of the fixed messages so that
// callers may compare on the machine-readable prefix.
type RouteError struct {
	// Status is http.StatusNotFound or http.StatusMethodNotAllowed
	Status int
	// Method is the normalized (lowercase) request method
	Method string
	// Path is the normalized request path, before the api root is stripped
	Path string
	// Allowed lists the methods declared by templates matching Path.
	// Only populated for 405 errors.
	Allowed []string
}

// NewNotFound creates a 404 RouteError.
func NewNotFound(method, path string) *RouteError {
	return &RouteError{Status: http.StatusNotFound, Method: method, Path: path}
}

// NewMethodNotAllowed creates a 405 RouteError carrying the methods that are
// registered for the matched templates.
func NewMethodNotAllowed(method, path string, allowed []string) *RouteError {
	return &RouteError{Status: http.StatusMethodNotAllowed, Method: method, Path: path, Allowed: allowed}
}

// Error returns the fixed message for the error's status.
func (e *RouteError) Error() string {
	if e.Status == http.StatusMethodNotAllowed {
		return MethodNotAllowedMessage
	}
	return NotFoundMessage
}

// Is reports whether target is the sentinel for this error's status.
func (e *RouteError) Is(target error) bool {
	if e.Status == http.StatusMethodNotAllowed {
		return target == ErrMethodNotAllowed
	}
	return target == ErrNotFound
}

// AllowHeader renders Allowed as the value of an HTTP Allow header.
func (e *RouteError) AllowHeader() string {
	upper := make([]string, len(e.Allowed))
	for i, m := range e.Allowed {
		upper[i] = strings.ToUpper(m)
	}
	return strings.Join(upper, ", ")
}

// ParseError represents a failure to decode a contract document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options and malformed path templates.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
