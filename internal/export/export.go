// Package export coordinates a metadata export: resolve the requested
// dialect, fetch the canonical aggregate, check the dialect's mandatory
// fields, and encode.
package export

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies every failure an export can produce. Callers switch on it;
// anything the coordinator cannot classify is reported as ErrInternal.
type Kind int

const (
	// KindNotFound means the requested work or publisher page does not exist.
	KindNotFound Kind = iota + 1
	// KindUnsupportedDialect means the requested specification is not registered.
	KindUnsupportedDialect
	// KindValidationFailed means the work is missing fields the dialect requires.
	KindValidationFailed
	// KindUpstreamUnavailable means the metadata source stayed unreachable
	// through all retry attempts.
	KindUpstreamUnavailable
	// KindMalformedUpstreamResponse means the source answered with something
	// that could not be decoded into a work aggregate.
	KindMalformedUpstreamResponse
	// KindInvalidRequest means the request parameters themselves are invalid.
	KindInvalidRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnsupportedDialect:
		return "unsupported_dialect"
	case KindValidationFailed:
		return "validation_failed"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindMalformedUpstreamResponse:
		return "malformed_upstream_response"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "internal"
	}
}

// Error is the coordinator's classified failure.
type Error struct {
	Kind Kind
	// Fields lists the missing mandatory fields when Kind is
	// KindValidationFailed.
	Fields []string
	err    error
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s: missing %s", e.Kind, e.err, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.err)
}

func (e *Error) Unwrap() error { return e.err }

// ErrInternal wraps failures outside the classified taxonomy, such as an
// encoder bug surfacing at runtime.
var ErrInternal = errors.New("internal export error")
