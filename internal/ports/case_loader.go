package ports

import "github.com/Krishnan9074/IdempotentCheck/internal/domain"

// CaseLoader reads test case definitions from a file.
type CaseLoader interface {
	LoadCases(path string) ([]domain.TestCase, error)
}

// CaseWriter persists test case definitions, e.g. sanitized copies.
type CaseWriter interface {
	SaveCases(path string, cases []domain.TestCase) error
}
