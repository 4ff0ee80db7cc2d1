// Package usecase orchestrates the idempotency verification of test cases:
// noise analysis, repeated execution, response comparison, optional HTML
// stability validation and the final verdict.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Krishnan9074/IdempotentCheck/internal/compare"
	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
	"github.com/Krishnan9074/IdempotentCheck/internal/htmlcheck"
	"github.com/Krishnan9074/IdempotentCheck/internal/infra/logger"
	"github.com/Krishnan9074/IdempotentCheck/internal/noise"
	"github.com/Krishnan9074/IdempotentCheck/internal/ports"
)

const (
	// DefaultAttempts is the number of times each request is replayed.
	// This is the idempotency probe itself, not a retry mechanism.
	DefaultAttempts = 3

	// DefaultSettleDelay sits between attempts so rate limiting and
	// server-side eventual consistency do not masquerade as violations.
	DefaultSettleDelay = 100 * time.Millisecond
)

// Verifier checks one test case per invocation. It holds no per-case
// state, so a single instance may be used for distinct cases concurrently
// as long as the executor's transport is concurrency-safe.
type Verifier struct {
	executor ports.RequestExecutor
	attempts int
	delay    time.Duration
	sleep    func(time.Duration)
}

type Option func(*Verifier)

// WithAttempts overrides the number of executions per case.
func WithAttempts(n int) Option {
	return func(v *Verifier) { v.attempts = n }
}

// WithSettleDelay overrides the inter-request delay.
func WithSettleDelay(d time.Duration) Option {
	return func(v *Verifier) { v.delay = d }
}

// WithSleep replaces the delay function. Useful for tests.
func WithSleep(fn func(time.Duration)) Option {
	return func(v *Verifier) { v.sleep = fn }
}

func NewVerifier(executor ports.RequestExecutor, opts ...Option) *Verifier {
	v := &Verifier{
		executor: executor,
		attempts: DefaultAttempts,
		delay:    DefaultSettleDelay,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Check verifies one test case and always returns a verdict; no error ever
// propagates past this boundary, so a batch can continue past one failure.
// Requests are issued sequentially on purpose: parallel issuance could
// provoke server-side races that would be misattributed to the endpoint.
func (v *Verifier) Check(ctx context.Context, tc domain.TestCase) domain.TestResult {
	start := time.Now()
	result := domain.TestResult{Case: tc}

	result.Findings = noise.Analyze(tc)

	if v.attempts < 1 {
		// With fewer than one execution no cross-execution statement can
		// be made; surface that instead of an empty violation list.
		return v.fail(result, start, fmt.Errorf("at least one execution required, configured %d", v.attempts))
	}

	snapshots := make([]domain.ResponseSnapshot, 0, v.attempts)
	for i := 0; i < v.attempts; i++ {
		if i > 0 {
			v.sleep(v.delay)
		}

		snap, err := v.executor.Execute(ctx, tc)
		if err != nil {
			// A failure mid-sequence cannot be told apart from a genuine
			// idempotency bug, so it is fatal to this case's verdict.
			if kind, ok := domain.RequestKind(err); ok {
				logger.L().Warn("verify.attempt_failed",
					"case", tc.Name, "attempt", i+1, "kind", string(kind))
			}
			return v.fail(result, start, err)
		}
		snapshots = append(snapshots, snap)
	}

	violations, err := compare.Snapshots(snapshots)
	if err != nil {
		return v.fail(result, start, err)
	}
	result.Violations = violations

	if tc.HTMLValidation {
		result.Violations = append(result.Violations, validateHTMLSnapshots(snapshots)...)
	}

	result.Violations = append(result.Violations, checkExpectations(tc, snapshots[0])...)

	result.Success = len(result.Violations) == 0 && len(result.Findings) == 0
	result.Duration = time.Since(start)

	logger.L().Info("verify.done",
		"case", tc.Name,
		"success", result.Success,
		"findings", len(result.Findings),
		"violations", len(result.Violations),
		"duration_ms", result.Duration.Milliseconds())

	return result
}

func (v *Verifier) fail(result domain.TestResult, start time.Time, err error) domain.TestResult {
	result.Success = false
	result.ErrorMessage = err.Error()
	result.Duration = time.Since(start)
	return result
}

// validateHTMLSnapshots runs the stability validator over every snapshot
// whose body is text; structured bodies have nothing to parse.
func validateHTMLSnapshots(snapshots []domain.ResponseSnapshot) []domain.Violation {
	var out []domain.Violation
	for i, snap := range snapshots {
		if !snap.Body.IsText() {
			continue
		}
		report := htmlcheck.Validate(snap.Body.Raw)
		for _, issue := range report.Issues {
			out = append(out, domain.Violation{
				Kind:    domain.ViolationHTML,
				Message: fmt.Sprintf("html validation issue in response %d: %s", i, issue),
			})
		}
	}
	return out
}
