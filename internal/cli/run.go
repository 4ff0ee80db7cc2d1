package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
	"github.com/Krishnan9074/IdempotentCheck/internal/infra/caseloader"
	"github.com/Krishnan9074/IdempotentCheck/internal/infra/httpexec"
	"github.com/Krishnan9074/IdempotentCheck/internal/infra/logger"
	"github.com/Krishnan9074/IdempotentCheck/internal/infra/reportstore"
	"github.com/Krishnan9074/IdempotentCheck/internal/report"
	"github.com/Krishnan9074/IdempotentCheck/internal/usecase"
)

func runCmd() *cobra.Command {
	var cases string
	var output string
	var noSave bool
	var parallel int
	var strict bool
	var attempts int
	var delay time.Duration
	var timeout time.Duration
	var format string

	c := &cobra.Command{
		Use:   "run",
		Short: "Run a case file and verify every request is idempotent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := caseloader.New().LoadCases(cases)
			if err != nil {
				return err
			}

			executor := httpexec.New(
				httpexec.WithTimeout(timeout),
				httpexec.WithStrictStatus(strict),
			)

			var opts []usecase.Option
			if attempts > 0 {
				opts = append(opts, usecase.WithAttempts(attempts))
			}
			if delay > 0 {
				opts = append(opts, usecase.WithSettleDelay(delay))
			}
			verifier := usecase.NewVerifier(executor, opts...)
			runner := usecase.NewSuiteRunner(verifier, parallel)

			suite := runner.Run(cmd.Context(), cases, loaded)

			if !noSave {
				store := reportstore.NewJSONStore(output)
				id, serr := store.SaveSuite(suite)
				if serr != nil {
					logger.L().Error("report save failed", "err", serr)
					fmt.Fprintf(os.Stderr, "warning: could not save report: %v\n", serr)
				} else {
					fmt.Fprintf(os.Stdout, "report %s saved under %s\n", id, output)
				}
			}

			if err := printSuite(os.Stdout, suite, format); err != nil {
				return err
			}

			if fails := suite.Failures(); fails > 0 {
				return fmt.Errorf("run failed (%d failed case(s))", fails)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&cases, casesFlagName, "c", "", "Case file to run (.json, .yaml or .yml) (required)")
	c.Flags().StringVarP(&output, outputFlagName, "o", viper.GetString(outputFlagName), "Directory for report artifacts")
	bindFlagToConfig(c.Flags().Lookup(outputFlagName), outputFlagName)
	c.Flags().BoolVar(&noSave, noSaveFlagName, false, "Do not save a report artifact")
	c.Flags().IntVarP(&parallel, parallelFlagName, "p", viper.GetInt(parallelFlagName), "Number of cases verified concurrently")
	bindFlagToConfig(c.Flags().Lookup(parallelFlagName), parallelFlagName)
	c.Flags().BoolVar(&strict, strictFlagName, false, "Treat non-2xx status codes as execution failures")
	c.Flags().IntVar(&attempts, attemptsFlagName, usecase.DefaultAttempts, "Executions per case")
	c.Flags().DurationVar(&delay, delayFlagName, usecase.DefaultSettleDelay, "Delay between executions")
	c.Flags().DurationVar(&timeout, timeoutFlagName, viper.GetDuration(timeoutFlagName), "Per-request timeout")
	bindFlagToConfig(c.Flags().Lookup(timeoutFlagName), timeoutFlagName)
	c.Flags().StringVar(&format, formatFlagName, viper.GetString(formatFlagName), "Output format: pretty|json")
	bindFlagToConfig(c.Flags().Lookup(formatFlagName), formatFlagName)

	_ = c.MarkFlagRequired(casesFlagName)
	return c
}

func printSuite(w io.Writer, suite domain.SuiteResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(suite)
	case "pretty", "":
		report.Summary(w, suite)
		report.Details(w, suite)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
