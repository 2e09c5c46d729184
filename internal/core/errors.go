package core

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates remote classification failures so the
// orchestrator can branch on the variant
type ErrorKind string

const (
	// TransportFailure covers unreachable endpoints and non-success statuses
	TransportFailure ErrorKind = "transport_failure"
	// MalformedResponse covers payloads of unexpected shape or type
	MalformedResponse ErrorKind = "malformed_response"
)

// ClassificationError is a remote classification failure. It is never a
// degraded verdict: the orchestrator decides what happens next.
type ClassificationError struct {
	Kind ErrorKind
	Err  error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("remote classification failed (%s): %v", e.Kind, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a transport-level failure
func NewTransportError(err error) *ClassificationError {
	return &ClassificationError{Kind: TransportFailure, Err: err}
}

// NewMalformedError wraps an unexpected-payload failure
func NewMalformedError(err error) *ClassificationError {
	return &ClassificationError{Kind: MalformedResponse, Err: err}
}

// ClassificationKind extracts the error kind, or "" for other errors
func ClassificationKind(err error) ErrorKind {
	var ce *ClassificationError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
