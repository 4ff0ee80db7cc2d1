package cli

import (
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/Krishnan9074/IdempotentCheck/internal/htmlcheck"
)

func sanitizeCmd() *cobra.Command {
	var diffWith string

	c := &cobra.Command{
		Use:   "sanitize <file.html>",
		Short: "Normalize dynamic HTML content so snapshots can be compared",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			sanitized, err := sanitizeFile(args[0])
			if err != nil {
				return err
			}

			if diffWith == "" {
				fmt.Fprintln(os.Stdout, sanitized)
				return nil
			}

			other, err := sanitizeFile(diffWith)
			if err != nil {
				return err
			}

			text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(sanitized),
				B:        difflib.SplitLines(other),
				FromFile: args[0],
				ToFile:   diffWith,
				Context:  3,
			})
			if err != nil {
				return err
			}

			if text == "" {
				fmt.Fprintln(os.Stdout, "sanitized documents are identical")
				return nil
			}
			fmt.Fprint(os.Stdout, text)
			return fmt.Errorf("sanitized documents differ")
		},
	}

	c.Flags().StringVar(&diffWith, "diff", "", "Second HTML file; print a unified diff of the sanitized outputs")
	return c
}

func sanitizeFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return htmlcheck.Sanitize(string(raw))
}
