package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
)

// SuiteRunner verifies a batch of cases. Cases are independent; with
// parallelism above one they run concurrently, each through its own
// sequential three-attempt probe.
type SuiteRunner struct {
	verifier *Verifier
	parallel int
}

func NewSuiteRunner(verifier *Verifier, parallel int) *SuiteRunner {
	if parallel < 1 {
		parallel = 1
	}
	return &SuiteRunner{verifier: verifier, parallel: parallel}
}

// Run produces one verdict per case, in input order, regardless of
// individual failures.
func (r *SuiteRunner) Run(ctx context.Context, casesPath string, cases []domain.TestCase) domain.SuiteResult {
	suite := domain.SuiteResult{
		CasesPath: casesPath,
		StartedAt: time.Now(),
		Results:   make([]domain.TestResult, len(cases)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)

	for i, tc := range cases {
		i, tc := i, tc
		g.Go(func() error {
			suite.Results[i] = r.verifier.Check(ctx, tc)
			return nil
		})
	}
	_ = g.Wait() // Check never returns an error through the group.

	suite.FinishedAt = time.Now()
	return suite
}
