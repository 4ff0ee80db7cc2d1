package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
)

// scriptedExecutor returns one scripted outcome per call.
type scriptedExecutor struct {
	snaps []domain.ResponseSnapshot
	errs  []error
	calls int
}

func (s *scriptedExecutor) Execute(_ context.Context, _ domain.TestCase) (domain.ResponseSnapshot, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return domain.ResponseSnapshot{}, s.errs[i]
	}
	if i < len(s.snaps) {
		return s.snaps[i], nil
	}
	return domain.ResponseSnapshot{}, errors.New("unscripted call")
}

func textSnap(status int, body string) domain.ResponseSnapshot {
	return domain.ResponseSnapshot{
		StatusCode: status,
		Headers:    domain.Headers{},
		Body:       domain.BodyContent{Raw: body},
	}
}

func cleanCase() domain.TestCase {
	return domain.TestCase{
		Name:    "clean",
		Method:  domain.MethodGet,
		URL:     "https://example.test",
		Headers: domain.Headers{"Accept": "text/plain"},
	}
}

func noSleep(time.Duration) {}

func TestVerifier_StableEndpointPasses(t *testing.T) {
	exec := &scriptedExecutor{snaps: []domain.ResponseSnapshot{
		textSnap(200, "ok"), textSnap(200, "ok"), textSnap(200, "ok"),
	}}
	v := NewVerifier(exec, WithSleep(noSleep))

	res := v.Check(context.Background(), cleanCase())

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if exec.calls != 3 {
		t.Fatalf("expected 3 executions, got=%d", exec.calls)
	}
	if res.ErrorMessage != "" || len(res.Violations) != 0 || len(res.Findings) != 0 {
		t.Fatalf("expected a clean verdict, got %+v", res)
	}
}

func TestVerifier_DivergingBodyFails(t *testing.T) {
	exec := &scriptedExecutor{snaps: []domain.ResponseSnapshot{
		textSnap(200, "a"), textSnap(200, "a"), textSnap(200, "b"),
	}}
	v := NewVerifier(exec, WithSleep(noSleep))

	res := v.Check(context.Background(), cleanCase())

	if res.Success {
		t.Fatal("expected failure")
	}
	if len(res.Violations) != 1 || res.Violations[0].Kind != domain.ViolationBody {
		t.Fatalf("expected a body violation, got %+v", res.Violations)
	}
	if res.ErrorMessage != "" {
		t.Fatalf("violations are not execution errors, got=%q", res.ErrorMessage)
	}
}

func TestVerifier_MidSequenceFailureIsFatal(t *testing.T) {
	exec := &scriptedExecutor{
		snaps: []domain.ResponseSnapshot{textSnap(200, "ok")},
		errs: []error{nil, &domain.RequestError{
			Kind: domain.RequestErrorTransport,
			URL:  "https://example.test",
			Err:  errors.New("connection reset"),
		}},
	}
	v := NewVerifier(exec, WithSleep(noSleep))

	res := v.Check(context.Background(), cleanCase())

	if res.Success {
		t.Fatal("expected failure")
	}
	if exec.calls != 2 {
		t.Fatalf("expected the sequence to stop at the failed attempt, calls=%d", exec.calls)
	}
	if res.ErrorMessage == "" || !strings.Contains(res.ErrorMessage, "connection reset") {
		t.Fatalf("expected the transport error surfaced, got=%q", res.ErrorMessage)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("no comparison should run after a failed attempt, got %+v", res.Violations)
	}
}

func TestVerifier_NoisyCaseFailsWithoutViolations(t *testing.T) {
	exec := &scriptedExecutor{snaps: []domain.ResponseSnapshot{
		textSnap(200, "ok"), textSnap(200, "ok"), textSnap(200, "ok"),
	}}
	v := NewVerifier(exec, WithSleep(noSleep))

	tc := cleanCase()
	tc.Headers = domain.Headers{"X-Request-ID": "1"}

	res := v.Check(context.Background(), tc)

	if res.Success {
		t.Fatal("expected noise findings to fail the case")
	}
	if len(res.Findings) != 1 || res.Findings[0].Path != "header:X-Request-ID" {
		t.Fatalf("expected the header finding, got %+v", res.Findings)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("expected no violations, got %+v", res.Violations)
	}
}

func TestVerifier_SleepsBetweenAttempts(t *testing.T) {
	exec := &scriptedExecutor{snaps: []domain.ResponseSnapshot{
		textSnap(200, "ok"), textSnap(200, "ok"), textSnap(200, "ok"),
	}}

	var slept []time.Duration
	v := NewVerifier(exec,
		WithSettleDelay(42*time.Millisecond),
		WithSleep(func(d time.Duration) { slept = append(slept, d) }),
	)

	v.Check(context.Background(), cleanCase())

	if len(slept) != 2 {
		t.Fatalf("expected 2 sleeps for 3 attempts, got=%d", len(slept))
	}
	for _, d := range slept {
		if d != 42*time.Millisecond {
			t.Fatalf("unexpected delay %s", d)
		}
	}
}

func TestVerifier_HTMLValidationWiredIn(t *testing.T) {
	page := `<p>Order 123e4567-e89b-12d3-a456-426614174000</p>`
	exec := &scriptedExecutor{snaps: []domain.ResponseSnapshot{
		textSnap(200, page), textSnap(200, page), textSnap(200, page),
	}}
	v := NewVerifier(exec, WithSleep(noSleep))

	tc := cleanCase()
	tc.HTMLValidation = true

	res := v.Check(context.Background(), tc)

	if res.Success {
		t.Fatal("expected html issues to fail the case")
	}
	if len(res.Violations) != 3 {
		t.Fatalf("expected one html violation per snapshot, got %+v", res.Violations)
	}
	for i, violation := range res.Violations {
		if violation.Kind != domain.ViolationHTML {
			t.Fatalf("expected html kind, got=%s", violation.Kind)
		}
		if !strings.Contains(violation.Message, "dynamic content found") {
			t.Fatalf("unexpected message %q", violation.Message)
		}
		if !strings.Contains(violation.Message, "response") {
			t.Fatalf("expected snapshot index in message %q (snapshot %d)", violation.Message, i)
		}
	}
}

func TestVerifier_RejectsZeroAttempts(t *testing.T) {
	exec := &scriptedExecutor{}
	v := NewVerifier(exec, WithAttempts(0), WithSleep(noSleep))

	res := v.Check(context.Background(), cleanCase())

	if res.Success {
		t.Fatal("expected failure")
	}
	if exec.calls != 0 {
		t.Fatalf("expected no executions, got=%d", exec.calls)
	}
	if !strings.Contains(res.ErrorMessage, "at least one execution required") {
		t.Fatalf("unexpected message %q", res.ErrorMessage)
	}
}

func TestVerifier_SingleAttemptPasses(t *testing.T) {
	exec := &scriptedExecutor{snaps: []domain.ResponseSnapshot{textSnap(200, "ok")}}
	v := NewVerifier(exec, WithAttempts(1), WithSleep(noSleep))

	res := v.Check(context.Background(), cleanCase())

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if exec.calls != 1 {
		t.Fatalf("expected a single execution, got=%d", exec.calls)
	}
}

func TestSuiteRunner_PreservesInputOrder(t *testing.T) {
	exec := &orderedExecutor{}
	v := NewVerifier(exec, WithSleep(noSleep))
	r := NewSuiteRunner(v, 4)

	cases := []domain.TestCase{}
	for _, name := range []string{"one", "two", "three", "four", "five"} {
		tc := cleanCase()
		tc.Name = name
		cases = append(cases, tc)
	}

	suite := r.Run(context.Background(), "cases.json", cases)

	if len(suite.Results) != len(cases) {
		t.Fatalf("expected %d results, got=%d", len(cases), len(suite.Results))
	}
	for i, res := range suite.Results {
		if res.Case.Name != cases[i].Name {
			t.Fatalf("result %d out of order: got=%s want=%s", i, res.Case.Name, cases[i].Name)
		}
		if !res.Success {
			t.Fatalf("case %s unexpectedly failed: %+v", res.Case.Name, res)
		}
	}
	if suite.CasesPath != "cases.json" {
		t.Fatalf("cases path not recorded, got=%q", suite.CasesPath)
	}
	if suite.FinishedAt.Before(suite.StartedAt) {
		t.Fatal("finished before started")
	}
}

// orderedExecutor is concurrency-safe and always succeeds.
type orderedExecutor struct{}

func (orderedExecutor) Execute(_ context.Context, _ domain.TestCase) (domain.ResponseSnapshot, error) {
	return textSnap(200, "ok"), nil
}
