package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
)

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := versionCmd()
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "idemcheck ") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func sampleSuite() domain.SuiteResult {
	now := time.Now()
	return domain.SuiteResult{
		ID:         "suite-1",
		CasesPath:  "cases.json",
		StartedAt:  now,
		FinishedAt: now.Add(time.Second),
		Results: []domain.TestResult{
			{
				Case:    domain.TestCase{Name: "ok-case", Method: domain.MethodGet, URL: "https://a.test"},
				Success: true,
			},
			{
				Case:         domain.TestCase{Name: "bad-case", Method: domain.MethodGet, URL: "https://b.test"},
				Success:      false,
				ErrorMessage: "request transport: boom",
			},
		},
	}
}

func TestPrintSuite_JSON(t *testing.T) {
	var out bytes.Buffer
	if err := printSuite(&out, sampleSuite(), "json"); err != nil {
		t.Fatalf("printSuite error: %v", err)
	}
	if !strings.Contains(out.String(), `"ID": "suite-1"`) {
		t.Fatalf("missing suite id in %q", out.String())
	}
}

func TestPrintSuite_Pretty(t *testing.T) {
	var out bytes.Buffer
	if err := printSuite(&out, sampleSuite(), "pretty"); err != nil {
		t.Fatalf("printSuite error: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "ok-case") || !strings.Contains(s, "bad-case") {
		t.Fatalf("missing case names in output:\n%s", s)
	}
	if !strings.Contains(s, "request transport: boom") {
		t.Fatalf("missing error detail in output:\n%s", s)
	}
}

func TestPrintSuite_UnsupportedFormat(t *testing.T) {
	var out bytes.Buffer
	if err := printSuite(&out, sampleSuite(), "xml"); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}
