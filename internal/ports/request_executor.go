// Package ports defines the boundaries between the verification engine and
// its collaborators, so use cases depend on interfaces rather than infra.
package ports

import (
	"context"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
)

// RequestExecutor issues one HTTP request for a test case and returns a
// normalized snapshot. Implementations must be safe for use from multiple
// goroutines; the engine issues calls for one case strictly sequentially.
type RequestExecutor interface {
	Execute(ctx context.Context, tc domain.TestCase) (domain.ResponseSnapshot, error)
}
