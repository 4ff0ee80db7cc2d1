// Package caseloader reads and writes test case definition files. A file
// is a JSON array or a YAML list of case objects; loaded cases are
// validated into the domain model before anything executes.
package caseloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
	"github.com/Krishnan9074/IdempotentCheck/internal/ports"
)

type Loader struct{}

func New() *Loader { return &Loader{} }

var (
	_ ports.CaseLoader = (*Loader)(nil)
	_ ports.CaseWriter = (*Loader)(nil)
)

func (l *Loader) LoadCases(path string) ([]domain.TestCase, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "caseloader.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dtos []caseDTO
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &dtos)
	default:
		err = json.Unmarshal(b, &dtos)
	}
	if err != nil {
		return nil, &domain.OpError{
			Op:   "caseloader.load",
			Kind: domain.KindInvalidCase,
			Path: path,
			Err:  err,
		}
	}

	cases := make([]domain.TestCase, 0, len(dtos))
	for i, dto := range dtos {
		tc, err := mapAndValidate(path, i, dto)
		if err != nil {
			return nil, err
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

// SaveCases writes cases back in the JSON file format, e.g. sanitized
// copies produced by the analyzer.
func (l *Loader) SaveCases(path string, cases []domain.TestCase) error {
	dtos := make([]caseDTO, 0, len(cases))
	for _, tc := range cases {
		dtos = append(dtos, toDTO(tc))
	}

	b, err := json.MarshalIndent(dtos, "", "  ")
	if err != nil {
		return &domain.OpError{
			Op:   "caseloader.save",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	b = append(b, '\n')

	if err := os.WriteFile(path, b, 0o600); err != nil {
		return &domain.OpError{
			Op:   "caseloader.save",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

type caseDTO struct {
	Name           string               `json:"name" yaml:"name"`
	Method         string               `json:"method" yaml:"method"`
	URL            string               `json:"url" yaml:"url"`
	Headers        map[string]string    `json:"headers,omitempty" yaml:"headers"`
	Body           *domain.Value        `json:"body,omitempty" yaml:"body"`
	ExpectedStatus int                  `json:"expected_status_code" yaml:"expected_status_code"`
	ExpectedBody   *domain.Value        `json:"expected_response,omitempty" yaml:"expected_response"`
	Expect         map[string]expectDTO `json:"expect,omitempty" yaml:"expect"`
	HTMLValidation bool                 `json:"html_validation,omitempty" yaml:"html_validation"`
	MaxPayloadSize int                  `json:"max_payload_size,omitempty" yaml:"max_payload_size"`
}

type expectDTO struct {
	Exists bool    `json:"exists,omitempty" yaml:"exists"`
	Eq     *string `json:"eq,omitempty" yaml:"eq"`
}

func mapAndValidate(path string, index int, dto caseDTO) (domain.TestCase, error) {
	fieldPrefix := fmt.Sprintf("cases[%d]", index)

	if strings.TrimSpace(dto.Name) == "" {
		return domain.TestCase{}, invalidField(path, fieldPrefix+".name", "case name is required")
	}
	if strings.TrimSpace(dto.URL) == "" {
		return domain.TestCase{}, invalidField(path, fieldPrefix+".url", "case url is required")
	}

	method, err := domain.ParseMethod(strings.ToUpper(strings.TrimSpace(dto.Method)))
	if err != nil {
		return domain.TestCase{}, invalidField(path, fieldPrefix+".method", err.Error())
	}

	if dto.ExpectedStatus < 0 || dto.ExpectedStatus > 599 {
		return domain.TestCase{}, invalidField(path, fieldPrefix+".expected_status_code",
			fmt.Sprintf("implausible status code %d", dto.ExpectedStatus))
	}

	tc := domain.TestCase{
		Name:           dto.Name,
		Method:         method,
		URL:            dto.URL,
		Headers:        domain.Headers(dto.Headers),
		Body:           dto.Body,
		ExpectedStatus: dto.ExpectedStatus,
		ExpectedBody:   dto.ExpectedBody,
		HTMLValidation: dto.HTMLValidation,
		MaxPayloadSize: dto.MaxPayloadSize,
	}

	if tc.Headers == nil {
		tc.Headers = domain.Headers{}
	}
	if tc.MaxPayloadSize <= 0 {
		tc.MaxPayloadSize = domain.DefaultMaxPayloadSize
	}
	if len(dto.Expect) > 0 {
		tc.Expect = make(map[string]domain.JSONPathExpectation, len(dto.Expect))
		for expr, e := range dto.Expect {
			tc.Expect[expr] = domain.JSONPathExpectation{Exists: e.Exists, Eq: e.Eq}
		}
	}

	return tc, nil
}

func toDTO(tc domain.TestCase) caseDTO {
	dto := caseDTO{
		Name:           tc.Name,
		Method:         string(tc.Method),
		URL:            tc.URL,
		Headers:        tc.Headers,
		Body:           tc.Body,
		ExpectedStatus: tc.ExpectedStatus,
		ExpectedBody:   tc.ExpectedBody,
		HTMLValidation: tc.HTMLValidation,
		MaxPayloadSize: tc.MaxPayloadSize,
	}
	if len(tc.Expect) > 0 {
		dto.Expect = make(map[string]expectDTO, len(tc.Expect))
		for expr, e := range tc.Expect {
			dto.Expect[expr] = expectDTO{Exists: e.Exists, Eq: e.Eq}
		}
	}
	return dto
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "caseloader.validate",
		Kind: domain.KindInvalidCase,
		Path: path,
		Err:  fmt.Errorf("field %s: %s", field, msg),
	}
}
