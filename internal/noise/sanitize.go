package noise

import (
	"strings"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
)

// sanitizeHeaderMarkers are the name fragments that disqualify a header
// from a sanitized case copy.
var sanitizeHeaderMarkers = []string{"timestamp", "token", "id", "random"}

// SanitizeCase derives a copy of the case with noisy headers removed and
// the body deep-copied. The input case is left untouched.
func SanitizeCase(tc domain.TestCase) domain.TestCase {
	out := tc.Clone()

	if out.Headers != nil {
		cleaned := make(domain.Headers, len(out.Headers))
		for name, value := range out.Headers {
			if headerMarked(name) {
				continue
			}
			cleaned[name] = value
		}
		out.Headers = cleaned
	}

	return out
}

func headerMarked(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range sanitizeHeaderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
