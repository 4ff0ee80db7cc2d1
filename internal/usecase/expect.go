package usecase

import (
	"fmt"
	"sort"

	"github.com/PaesslerAG/jsonpath"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
)

// checkExpectations validates the case's declared expectations against the
// first snapshot: expected status code, expected response body and any
// JSONPath checks. Failures are reported as expectation violations; they
// say the endpoint answered wrongly, not that it answered inconsistently.
func checkExpectations(tc domain.TestCase, first domain.ResponseSnapshot) []domain.Violation {
	var out []domain.Violation

	if tc.ExpectedStatus != 0 && first.StatusCode != tc.ExpectedStatus {
		out = append(out, expectation(fmt.Sprintf(
			"expected status %d, got %d", tc.ExpectedStatus, first.StatusCode)))
	}

	if tc.ExpectedBody != nil {
		if !first.Body.IsStructured() {
			out = append(out, expectation("expected a structured response body, got text"))
		} else if first.Body.Structured.String() != tc.ExpectedBody.String() {
			out = append(out, expectation("response body does not match expected response"))
		}
	}

	out = append(out, checkJSONPaths(tc, first)...)
	return out
}

func checkJSONPaths(tc domain.TestCase, first domain.ResponseSnapshot) []domain.Violation {
	if len(tc.Expect) == 0 {
		return nil
	}

	if !first.Body.IsStructured() {
		return []domain.Violation{expectation("jsonpath expectations require a structured response body")}
	}
	doc := first.Body.Structured.Interface()

	// Fixed evaluation order keeps violation lists deterministic.
	exprs := make([]string, 0, len(tc.Expect))
	for expr := range tc.Expect {
		exprs = append(exprs, expr)
	}
	sort.Strings(exprs)

	var out []domain.Violation
	for _, expr := range exprs {
		exp := tc.Expect[expr]

		val, err := jsonpath.Get(expr, doc)
		if err != nil {
			if exp.Exists || exp.Eq != nil {
				out = append(out, expectation(fmt.Sprintf("jsonpath %q: %v", expr, err)))
			}
			continue
		}

		if exp.Exists && isEmptyJSONPathValue(val) {
			out = append(out, expectation(fmt.Sprintf("jsonpath %q: expected value to exist, got empty", expr)))
		}

		if exp.Eq != nil {
			got := fmt.Sprintf("%v", val)
			if got != *exp.Eq {
				out = append(out, expectation(fmt.Sprintf(
					"jsonpath %q: expected %q, got %q", expr, *exp.Eq, got)))
			}
		}
	}
	return out
}

func isEmptyJSONPathValue(val any) bool {
	switch t := val.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func expectation(msg string) domain.Violation {
	return domain.Violation{Kind: domain.ViolationExpectation, Message: msg}
}
