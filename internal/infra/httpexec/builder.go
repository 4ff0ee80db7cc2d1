package httpexec

import (
	"context"
	"net/http"
	"strings"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
)

const contentTypeJSON = "application/json"

// BuildRequest constructs the HTTP request for one probe attempt. The body
// is attached only for body-carrying methods; a default JSON content type
// is set for those when the case supplies none.
func BuildRequest(ctx context.Context, tc domain.TestCase) (*http.Request, error) {
	if strings.TrimSpace(tc.URL) == "" {
		return nil, &domain.OpError{
			Op:   "httpexec.build",
			Kind: domain.KindInvalidCase,
			Err:  domain.ErrInvalidCase,
		}
	}

	var body *strings.Reader
	if tc.Method.HasBody() && tc.Body != nil {
		body = strings.NewReader(tc.Body.String())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, string(tc.Method), tc.URL, body)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpexec.build",
			Kind: domain.KindInvalidCase,
			Err:  err,
		}
	}

	for k, v := range tc.Headers {
		req.Header.Set(k, v)
	}

	if tc.Method.HasBody() && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	return req, nil
}
