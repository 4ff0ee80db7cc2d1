package domain

import "fmt"

// HTTPMethod represents an HTTP method (e.g., GET, POST).
type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodPut    HTTPMethod = "PUT"
	MethodDelete HTTPMethod = "DELETE"
	MethodPatch  HTTPMethod = "PATCH"
)

// Methods lists every supported method.
func Methods() []HTTPMethod {
	return []HTTPMethod{MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch}
}

// HasBody reports whether requests with this method carry a payload.
// The switch is exhaustive over the closed enum.
func (m HTTPMethod) HasBody() bool {
	switch m {
	case MethodPost, MethodPut, MethodPatch:
		return true
	case MethodGet, MethodDelete:
		return false
	default:
		return false
	}
}

// ParseMethod validates a raw method string against the closed enum.
func ParseMethod(raw string) (HTTPMethod, error) {
	switch HTTPMethod(raw) {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return HTTPMethod(raw), nil
	default:
		return "", fmt.Errorf("unsupported method %q", raw)
	}
}

// Headers is a map representation of HTTP headers.
type Headers map[string]string

// Clone returns a copy; a nil map stays nil.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}
	out := make(Headers, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// JSONPathExpectation is an optional per-case check evaluated against the
// first captured response body.
type JSONPathExpectation struct {
	Exists bool
	Eq     *string
}

// DefaultMaxPayloadSize is the advisory element bound applied when a case
// does not set one.
const DefaultMaxPayloadSize = 10000

// TestCase is the immutable definition of one idempotency check. The
// engine never mutates it; sanitized copies are derived via noise.SanitizeCase.
type TestCase struct {
	Name    string
	Method  HTTPMethod
	URL     string
	Headers Headers
	Body    *Value

	ExpectedStatus int
	ExpectedBody   *Value
	Expect         map[string]JSONPathExpectation

	HTMLValidation bool

	// MaxPayloadSize bounds the body tree in elements. Advisory only.
	MaxPayloadSize int
}

// Clone returns a deep copy of the case.
func (tc TestCase) Clone() TestCase {
	out := tc
	out.Headers = tc.Headers.Clone()
	if tc.Body != nil {
		b := tc.Body.Clone()
		out.Body = &b
	}
	if tc.ExpectedBody != nil {
		b := tc.ExpectedBody.Clone()
		out.ExpectedBody = &b
	}
	if tc.Expect != nil {
		out.Expect = make(map[string]JSONPathExpectation, len(tc.Expect))
		for k, v := range tc.Expect {
			out.Expect[k] = v
		}
	}
	return out
}
