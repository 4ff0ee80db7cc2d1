package noise

import (
	"fmt"
	"sort"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
)

// HeaderCategory labels findings produced by the noisy-header check.
const HeaderCategory = "header"

// Analyze walks a test case's headers and body and returns the locations
// classified as volatile, in traversal order. Header names are visited in
// sorted order (Go maps carry no insertion order); body mappings are
// visited in document order. The result is neither sorted nor deduplicated.
func Analyze(tc domain.TestCase) []domain.NoiseFinding {
	var out []domain.NoiseFinding

	names := make([]string, 0, len(tc.Headers))
	for name := range tc.Headers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if IsNoisyHeader(name) {
			out = append(out, domain.NoiseFinding{
				Path:     "header:" + name,
				Category: HeaderCategory,
			})
		}
	}

	if tc.Body != nil {
		switch tc.Body.Kind() {
		case domain.KindMapping:
			walkMapping(*tc.Body, "", &out)
		case domain.KindSequence:
			walkSequence(*tc.Body, "", &out)
		}
	}

	return out
}

// walkMapping records one finding per member: a key-name match takes
// precedence; value-shape checks run only when the name did not already
// flag the path. Nested structures are descended regardless.
func walkMapping(v domain.Value, path string, out *[]domain.NoiseFinding) {
	for _, m := range v.Members() {
		childPath := m.Key
		if path != "" {
			childPath = path + "." + m.Key
		}

		flagged := false
		if cat, ok := KeyCategory(m.Key); ok {
			*out = append(*out, domain.NoiseFinding{Path: childPath, Category: cat})
			flagged = true
		}

		descendOrCheck(m.Value, childPath, flagged, out)
	}
}

func walkSequence(v domain.Value, path string, out *[]domain.NoiseFinding) {
	for i, item := range v.Items() {
		childPath := fmt.Sprintf("%s[%d]", path, i)
		descendOrCheck(item, childPath, false, out)
	}
}

func descendOrCheck(v domain.Value, path string, flagged bool, out *[]domain.NoiseFinding) {
	switch v.Kind() {
	case domain.KindMapping:
		walkMapping(v, path, out)
	case domain.KindSequence:
		walkSequence(v, path, out)
	default:
		if flagged {
			return
		}
		if IsTimestamp(v) {
			*out = append(*out, domain.NoiseFinding{Path: path, Category: "timestamp"})
		} else if IsToken(v) {
			*out = append(*out, domain.NoiseFinding{Path: path, Category: "token"})
		}
	}
}
