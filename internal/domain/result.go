package domain

import "time"

// BodyContent is the captured response payload: either a structured value
// (when the content type declared a structured format) or raw text.
type BodyContent struct {
	Structured *Value
	Raw        string
}

// IsStructured reports whether the body was parsed as structured data.
func (b BodyContent) IsStructured() bool { return b.Structured != nil }

// IsText reports whether the body is raw text.
func (b BodyContent) IsText() bool { return b.Structured == nil }

// String renders the body for comparison purposes: canonical JSON for
// structured bodies, the raw text otherwise.
func (b BodyContent) String() string {
	if b.Structured != nil {
		return b.Structured.String()
	}
	return b.Raw
}

// ResponseSnapshot is one captured, normalized execution result.
// Header keys are canonicalized; header values are the first value sent.
type ResponseSnapshot struct {
	StatusCode int
	Headers    Headers
	Body       BodyContent
}

// NoiseFinding marks one location classified as volatile. Path uses
// dot/bracket notation for body fields ("data.created_at", "items[3].id")
// and a "header:" prefix for headers.
type NoiseFinding struct {
	Path     string
	Category string
}

// ViolationKind labels the category of an observed inconsistency.
type ViolationKind string

const (
	ViolationStatus      ViolationKind = "status"
	ViolationBody        ViolationKind = "body"
	ViolationHeaders     ViolationKind = "headers"
	ViolationHTML        ViolationKind = "html"
	ViolationExpectation ViolationKind = "expectation"
)

// Violation describes one category of inconsistency detected across
// repeated executions of the same request.
type Violation struct {
	Kind    ViolationKind
	Message string
}

// TestResult is the verdict for one TestCase. Success is true iff the run
// produced zero violations and zero noise findings and no execution error.
type TestResult struct {
	Case TestCase

	Success      bool
	ErrorMessage string
	Duration     time.Duration

	Findings   []NoiseFinding
	Violations []Violation
}

// Failed reports whether the case needs attention.
func (r TestResult) Failed() bool { return !r.Success }

// SuiteResult groups the verdicts of one batch run for persistence and
// reporting.
type SuiteResult struct {
	ID        string
	CasesPath string

	StartedAt  time.Time
	FinishedAt time.Time

	Results []TestResult
}

// Failures counts failed cases.
func (s SuiteResult) Failures() int {
	n := 0
	for _, r := range s.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}
