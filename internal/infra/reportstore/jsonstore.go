// Package reportstore persists suite verdicts as JSON artifacts so a
// failed run can be diagnosed without re-executing it.
package reportstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
	"github.com/Krishnan9074/IdempotentCheck/internal/ports"
)

const (
	defaultReportsDir = "reports"
	maskValue         = "********"
)

type JSONStore struct {
	dir        string
	masking    bool
	writeIndex bool
	now        func() time.Time
	newID      func() string
}

type Option func(*JSONStore)

// WithMasking toggles masking of credential-looking header values in the
// saved artifact. On by default.
func WithMasking(enabled bool) Option {
	return func(s *JSONStore) { s.masking = enabled }
}

// WithIndex enables a simple JSONL index: reports/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDGenerator is useful for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *JSONStore) { s.newID = fn }
}

func NewJSONStore(dir string, opts ...Option) *JSONStore {
	if strings.TrimSpace(dir) == "" {
		dir = defaultReportsDir
	}
	s := &JSONStore{
		dir:     dir,
		masking: true,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ArtifactStore = (*JSONStore)(nil)

func (s *JSONStore) SaveSuite(suite domain.SuiteResult) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.mkdir",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}

	toSave := suite
	if toSave.ID == "" {
		toSave.ID = s.newID()
	}

	ts := toSave.StartedAt
	if ts.IsZero() {
		ts = s.now()
		toSave.StartedAt = ts
	}
	ts = ts.UTC()

	slug := slugify(strings.TrimSuffix(filepath.Base(suite.CasesPath), filepath.Ext(suite.CasesPath)))
	if slug == "" {
		slug = "suite"
	}

	filename := fmt.Sprintf("%s_%s.json", ts.Format("20060102T150405Z"), slug)
	path := filepath.Join(s.dir, filename)

	if s.masking {
		toSave = maskSuite(toSave)
	}

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "reportstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(toSave, filename)
	}

	return toSave.ID, nil
}

func (s *JSONStore) appendIndex(suite domain.SuiteResult, filename string) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Cases     string    `json:"cases"`
		Failures  int       `json:"failures"`
		StartedAt time.Time `json:"started_at"`
	}
	line, err := json.Marshal(idx{
		ID:        suite.ID,
		File:      filename,
		Cases:     suite.CasesPath,
		Failures:  suite.Failures(),
		StartedAt: suite.StartedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(s.dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
	return nil
}

// maskSuite returns a masked copy (does NOT mutate the input). Case header
// values are the only credential-bearing data a TestResult carries.
func maskSuite(suite domain.SuiteResult) domain.SuiteResult {
	out := suite
	out.Results = make([]domain.TestResult, 0, len(suite.Results))

	for _, r := range suite.Results {
		c := r
		c.Case = r.Case.Clone()
		for name := range c.Case.Headers {
			if isSensitiveHeaderKey(name) {
				c.Case.Headers[name] = maskValue
			}
		}
		out.Results = append(out.Results, c)
	}

	return out
}

func isSensitiveHeaderKey(k string) bool {
	kk := strings.ToLower(strings.TrimSpace(k))
	switch kk {
	case "authorization", "proxy-authorization", "cookie", "set-cookie", "x-api-key", "x-auth-token":
		return true
	}

	return strings.Contains(kk, "token") ||
		strings.Contains(kk, "secret") ||
		strings.Contains(kk, "password") ||
		strings.Contains(kk, "api-key") ||
		strings.Contains(kk, "apikey")
}

func slugify(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}
	return strings.Trim(sb.String(), "-")
}
