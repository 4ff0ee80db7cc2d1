// Package compare decides whether repeated response snapshots of the same
// request are effectively equal, reporting each category of divergence
// (status codes, bodies, headers) independently.
package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
)

// dynamicHeaders are excluded from the header comparison; their values are
// expected to change between otherwise-identical responses. Names are
// matched case-insensitively.
var dynamicHeaders = map[string]struct{}{
	"date":          {},
	"last-modified": {},
	"etag":          {},
	"x-request-id":  {},
}

// Snapshots compares N captures of the same logical request and returns
// one violation per diverging category, in fixed order (status, body,
// headers). An empty snapshot list is a caller error.
//
// Bodies are compared by string representation. Structured bodies render
// in the key order the server sent, so byte-identical responses always
// compare equal, while key-order churn is surfaced as a difference; an
// order-independent structural comparison would hide the latter.
func Snapshots(snaps []domain.ResponseSnapshot) ([]domain.Violation, error) {
	if len(snaps) == 0 {
		return nil, &domain.OpError{
			Op:   "compare.snapshots",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("no snapshots to compare"),
		}
	}

	var out []domain.Violation

	if v, diverged := compareStatusCodes(snaps); diverged {
		out = append(out, v)
	}
	if v, diverged := compareBodies(snaps); diverged {
		out = append(out, v)
	}
	if v, diverged := compareHeaders(snaps); diverged {
		out = append(out, v)
	}

	return out, nil
}

// compareStatusCodes reports the full observed sequence, not just the
// distinct set, to preserve order information for diagnosis.
func compareStatusCodes(snaps []domain.ResponseSnapshot) (domain.Violation, bool) {
	distinct := map[int]struct{}{}
	codes := make([]string, 0, len(snaps))
	for _, s := range snaps {
		distinct[s.StatusCode] = struct{}{}
		codes = append(codes, fmt.Sprintf("%d", s.StatusCode))
	}
	if len(distinct) <= 1 {
		return domain.Violation{}, false
	}
	return domain.Violation{
		Kind:    domain.ViolationStatus,
		Message: fmt.Sprintf("inconsistent status codes: [%s]", strings.Join(codes, ", ")),
	}, true
}

// compareBodies emits a single violation without per-field detail; field
// level volatility is the noise analyzer's job, run separately.
func compareBodies(snaps []domain.ResponseSnapshot) (domain.Violation, bool) {
	distinct := map[string]struct{}{}
	for _, s := range snaps {
		distinct[s.Body.String()] = struct{}{}
	}
	if len(distinct) <= 1 {
		return domain.Violation{}, false
	}
	return domain.Violation{
		Kind:    domain.ViolationBody,
		Message: "inconsistent response bodies",
	}, true
}

func compareHeaders(snaps []domain.ResponseSnapshot) (domain.Violation, bool) {
	distinct := map[string]struct{}{}
	for _, s := range snaps {
		distinct[headerSignature(s.Headers)] = struct{}{}
	}
	if len(distinct) <= 1 {
		return domain.Violation{}, false
	}
	return domain.Violation{
		Kind:    domain.ViolationHeaders,
		Message: "inconsistent headers",
	}, true
}

// headerSignature renders the (name, value) pair set minus the dynamic
// exclusions in a canonical order, so two snapshots with equal sets map to
// equal signatures.
func headerSignature(h domain.Headers) string {
	pairs := make([]string, 0, len(h))
	for name, value := range h {
		if _, dynamic := dynamicHeaders[strings.ToLower(name)]; dynamic {
			continue
		}
		pairs = append(pairs, name+"\x00"+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\x01")
}
