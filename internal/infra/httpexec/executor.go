package httpexec

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
	"github.com/Krishnan9074/IdempotentCheck/internal/ports"
)

// Executor issues single probe attempts and normalizes the responses.
type Executor struct {
	client  *http.Client
	timeout time.Duration
	strict  bool
}

type Option func(*Executor)

// WithTimeout bounds each individual attempt.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) { e.timeout = d }
}

// WithClient sets a custom HTTP client.
func WithClient(c *http.Client) Option {
	return func(e *Executor) { e.client = c }
}

// WithStrictStatus makes non-2xx responses fail the attempt.
func WithStrictStatus(strict bool) Option {
	return func(e *Executor) { e.strict = strict }
}

func New(opts ...Option) *Executor {
	cfg := DefaultConfig()
	e := &Executor{
		client:  NewClient(cfg),
		timeout: cfg.Timeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ ports.RequestExecutor = (*Executor)(nil)

// Execute performs one attempt. Transport failures, timeouts, opt-in
// status failures and malformed structured bodies all come back as
// *domain.RequestError so the engine can match on the kind.
func (e *Executor) Execute(ctx context.Context, tc domain.TestCase) (domain.ResponseSnapshot, error) {
	cancel := func() {}
	if e.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
	}
	defer cancel()

	req, err := BuildRequest(ctx, tc)
	if err != nil {
		return domain.ResponseSnapshot{}, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return domain.ResponseSnapshot{}, domain.NewRequestError(tc.URL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ResponseSnapshot{}, domain.NewRequestError(tc.URL, err)
	}

	if e.strict && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		return domain.ResponseSnapshot{}, &domain.RequestError{
			Kind: domain.RequestErrorStatus,
			URL:  tc.URL,
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	snap := domain.ResponseSnapshot{
		StatusCode: resp.StatusCode,
		Headers:    normalizeHeaders(resp.Header),
	}

	// The parse decision is content-type-driven, never content-sniffed.
	if isStructured(resp.Header.Get("Content-Type")) {
		val, perr := domain.ParseJSONValue(raw)
		if perr != nil {
			return domain.ResponseSnapshot{}, &domain.RequestError{
				Kind: domain.RequestErrorMalformedBody,
				URL:  tc.URL,
				Err:  perr,
			}
		}
		snap.Body = domain.BodyContent{Structured: &val}
		return snap, nil
	}

	snap.Body = domain.BodyContent{Raw: string(raw)}
	return snap, nil
}

// isStructured recognizes application/json and any +json media type.
func isStructured(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == contentTypeJSON || strings.HasSuffix(mt, "+json")
}

// normalizeHeaders flattens to canonical keys with first values.
func normalizeHeaders(h http.Header) domain.Headers {
	out := make(domain.Headers, len(h))
	for k, vals := range h {
		if len(vals) == 0 {
			continue
		}
		out[http.CanonicalHeaderKey(k)] = vals[0]
	}
	return out
}
