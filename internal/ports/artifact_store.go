package ports

import "github.com/Krishnan9074/IdempotentCheck/internal/domain"

// ArtifactStore persists the verdicts of one batch run and returns the
// assigned run ID.
type ArtifactStore interface {
	SaveSuite(suite domain.SuiteResult) (string, error)
}
