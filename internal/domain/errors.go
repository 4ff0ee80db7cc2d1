package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidCase = errors.New("invalid test case")
	ErrExecution   = errors.New("execution error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound    ErrorKind = "not_found"
	KindInvalidCase ErrorKind = "invalid_case"
	KindExecution   ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// RequestErrorKind classifies failures at the HTTP boundary. The engine
// matches on these exhaustively instead of a blanket catch-all.
type RequestErrorKind string

const (
	RequestErrorTransport     RequestErrorKind = "transport"
	RequestErrorTimeout       RequestErrorKind = "timeout"
	RequestErrorMalformedBody RequestErrorKind = "malformed_body"
	RequestErrorStatus        RequestErrorKind = "status"
)

// RequestError is a structured error produced by the request executor.
type RequestError struct {
	Kind RequestErrorKind
	URL  string
	Err  error
}

func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("request %s", e.Kind)
	if e.URL != "" {
		base += fmt.Sprintf(" (%s)", e.URL)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewRequestError classifies a transport-level failure by its cause.
func NewRequestError(url string, err error) *RequestError {
	kind := RequestErrorTransport

	var nerr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = RequestErrorTimeout
	case errors.As(err, &nerr) && nerr.Timeout():
		kind = RequestErrorTimeout
	}

	return &RequestError{Kind: kind, URL: url, Err: err}
}

// RequestKind extracts the request error kind, if err is one.
func RequestKind(err error) (RequestErrorKind, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return "", false
}
