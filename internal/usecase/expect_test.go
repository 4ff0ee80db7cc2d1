package usecase

import (
	"strings"
	"testing"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
)

func structuredSnap(t *testing.T, status int, body string) domain.ResponseSnapshot {
	t.Helper()
	v, err := domain.ParseJSONValue([]byte(body))
	if err != nil {
		t.Fatalf("bad body fixture: %v", err)
	}
	return domain.ResponseSnapshot{
		StatusCode: status,
		Headers:    domain.Headers{},
		Body:       domain.BodyContent{Structured: &v},
	}
}

func TestCheckExpectations_StatusMismatch(t *testing.T) {
	tc := cleanCase()
	tc.ExpectedStatus = 200

	violations := checkExpectations(tc, structuredSnap(t, 404, `{}`))
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %+v", violations)
	}
	if violations[0].Kind != domain.ViolationExpectation {
		t.Fatalf("expected expectation kind, got=%s", violations[0].Kind)
	}
	if violations[0].Message != "expected status 200, got 404" {
		t.Fatalf("unexpected message %q", violations[0].Message)
	}
}

func TestCheckExpectations_ZeroStatusMeansUnchecked(t *testing.T) {
	tc := cleanCase()
	if got := checkExpectations(tc, structuredSnap(t, 500, `{}`)); len(got) != 0 {
		t.Fatalf("expected no violations, got %+v", got)
	}
}

func TestCheckExpectations_ExpectedBody(t *testing.T) {
	expected, err := domain.ParseJSONValue([]byte(`{"a":1}`))
	if err != nil {
		t.Fatal(err)
	}

	tc := cleanCase()
	tc.ExpectedBody = &expected

	if got := checkExpectations(tc, structuredSnap(t, 200, `{"a":1}`)); len(got) != 0 {
		t.Fatalf("expected body match, got %+v", got)
	}

	violations := checkExpectations(tc, structuredSnap(t, 200, `{"a":2}`))
	if len(violations) != 1 || violations[0].Message != "response body does not match expected response" {
		t.Fatalf("expected body mismatch violation, got %+v", violations)
	}

	violations = checkExpectations(tc, domain.ResponseSnapshot{
		StatusCode: 200,
		Body:       domain.BodyContent{Raw: "<p>hi</p>"},
	})
	if len(violations) != 1 || !strings.Contains(violations[0].Message, "got text") {
		t.Fatalf("expected structured-body violation, got %+v", violations)
	}
}

func TestCheckJSONPaths(t *testing.T) {
	eq := "42"
	tc := cleanCase()
	tc.Expect = map[string]domain.JSONPathExpectation{
		"$.user.id":   {Eq: &eq},
		"$.user.name": {Exists: true},
	}

	snap := structuredSnap(t, 200, `{"user":{"id":42,"name":"ada"}}`)
	if got := checkExpectations(tc, snap); len(got) != 0 {
		t.Fatalf("expected all expectations to pass, got %+v", got)
	}

	snap = structuredSnap(t, 200, `{"user":{"id":7,"name":""}}`)
	violations := checkExpectations(tc, snap)
	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %+v", violations)
	}
	// Deterministic: expressions are evaluated in sorted order.
	if !strings.Contains(violations[0].Message, `jsonpath "$.user.id"`) {
		t.Fatalf("unexpected first violation %q", violations[0].Message)
	}
	if !strings.Contains(violations[1].Message, "expected value to exist") {
		t.Fatalf("unexpected second violation %q", violations[1].Message)
	}
}

func TestCheckJSONPaths_RequiresStructuredBody(t *testing.T) {
	tc := cleanCase()
	tc.Expect = map[string]domain.JSONPathExpectation{"$.a": {Exists: true}}

	violations := checkExpectations(tc, domain.ResponseSnapshot{
		StatusCode: 200,
		Body:       domain.BodyContent{Raw: "plain"},
	})
	if len(violations) != 1 || !strings.Contains(violations[0].Message, "structured response body") {
		t.Fatalf("expected structured-body violation, got %+v", violations)
	}
}
