package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
)

func TestSanitizeCase_DropsMarkedHeaders(t *testing.T) {
	tc := domain.TestCase{
		Name:   "sanitize",
		Method: domain.MethodGet,
		URL:    "https://example.test",
		Headers: domain.Headers{
			"Content-Type":  "application/json",
			"X-Timestamp":   "1700000000",
			"Session-Token": "abc",
			"X-Request-ID":  "1",
			"X-Random-Seed": "42",
		},
	}

	out := SanitizeCase(tc)

	assert.Equal(t, domain.Headers{"Content-Type": "application/json"}, out.Headers)

	// The input case is untouched.
	assert.Len(t, tc.Headers, 5)
}

func TestSanitizeCase_BodyIsCopied(t *testing.T) {
	body := mustValue(t, `{"a":1}`)
	tc := domain.TestCase{
		Name:    "copy",
		Method:  domain.MethodPost,
		URL:     "https://example.test",
		Headers: domain.Headers{},
		Body:    body,
	}

	out := SanitizeCase(tc)
	require.NotNil(t, out.Body)
	assert.NotSame(t, tc.Body, out.Body)
	assert.Equal(t, tc.Body.String(), out.Body.String())
}
