// Package report renders suite verdicts for the console. It is plumbing on
// top of the verification engine: the engine produces TestResults, this
// package only formats them.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Summary renders the per-case overview table.
func Summary(w io.Writer, suite domain.SuiteResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Test Case", "Status", "Time", "Noisy Params", "Violations"})
	table.SetAutoWrapText(false)

	for _, r := range suite.Results {
		status := passStyle.Render("✓")
		if r.Failed() {
			status = failStyle.Render("✗")
		}
		table.Append([]string{
			r.Case.Name,
			status,
			formatDuration(r.Duration),
			fmt.Sprintf("%d", len(r.Findings)),
			fmt.Sprintf("%d", len(r.Violations)),
		})
	}

	table.Render()

	total := len(suite.Results)
	failures := suite.Failures()
	line := fmt.Sprintf("%d case(s), %d failed, took %s",
		total, failures, formatDuration(suite.FinishedAt.Sub(suite.StartedAt)))
	if failures == 0 {
		fmt.Fprintln(w, passStyle.Render(line))
	} else {
		fmt.Fprintln(w, failStyle.Render(line))
	}
}

// Details prints the findings and violations of every failed case.
func Details(w io.Writer, suite domain.SuiteResult) {
	for _, r := range suite.Results {
		if !r.Failed() {
			continue
		}

		fmt.Fprintf(w, "\n%s %s (%s %s)\n",
			failStyle.Render("✗"), r.Case.Name, r.Case.Method, r.Case.URL)

		if r.ErrorMessage != "" {
			fmt.Fprintf(w, "  error: %s\n", r.ErrorMessage)
		}

		if len(r.Findings) > 0 {
			fmt.Fprintln(w, "  noisy parameters:")
			for _, f := range r.Findings {
				fmt.Fprintf(w, "    - %s %s\n", f.Path, dimStyle.Render("("+f.Category+")"))
			}
		}

		if len(r.Violations) > 0 {
			fmt.Fprintln(w, "  violations:")
			for _, v := range r.Violations {
				fmt.Fprintf(w, "    - [%s] %s\n", v.Kind, v.Message)
			}
		}
	}
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
