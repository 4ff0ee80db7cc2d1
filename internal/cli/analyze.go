package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
	"github.com/Krishnan9074/IdempotentCheck/internal/infra/caseloader"
	"github.com/Krishnan9074/IdempotentCheck/internal/noise"
)

func analyzeCmd() *cobra.Command {
	var cases string
	var sanitizedOut string

	c := &cobra.Command{
		Use:   "analyze",
		Short: "Report noisy parameters in a case file without sending requests",
		RunE: func(_ *cobra.Command, _ []string) error {
			loader := caseloader.New()
			loaded, err := loader.LoadCases(cases)
			if err != nil {
				return err
			}

			noisy := 0
			for _, tc := range loaded {
				findings := noise.Analyze(tc)
				if len(findings) == 0 {
					fmt.Fprintf(os.Stdout, "%s: clean\n", tc.Name)
					continue
				}
				noisy++
				fmt.Fprintf(os.Stdout, "%s: %d noisy parameter(s)\n", tc.Name, len(findings))
				for _, f := range findings {
					fmt.Fprintf(os.Stdout, "  - %s (%s)\n", f.Path, f.Category)
				}
			}

			if sanitizedOut != "" {
				sanitized := make([]domain.TestCase, 0, len(loaded))
				for _, tc := range loaded {
					sanitized = append(sanitized, noise.SanitizeCase(tc))
				}
				if err := loader.SaveCases(sanitizedOut, sanitized); err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "sanitized cases written to %s\n", sanitizedOut)
			}

			if noisy > 0 {
				return fmt.Errorf("analysis found noise in %d case(s)", noisy)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&cases, casesFlagName, "c", "", "Case file to analyze (required)")
	c.Flags().StringVar(&sanitizedOut, "sanitized-out", "", "Write a copy of the cases with noisy headers removed")

	_ = c.MarkFlagRequired(casesFlagName)
	return c
}
