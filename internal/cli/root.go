// Package cli wires the idemcheck commands: case loading, verification,
// noise analysis, HTML sanitization and report persistence.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Krishnan9074/IdempotentCheck/internal/infra/logger"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var cleanup func() error

	cmd := &cobra.Command{
		Use:          "idemcheck",
		Short:        "Verify that HTTP endpoints respond identically to repeated requests",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}
			cleanup, _ = logger.Setup(logger.Config{
				Root:  wd,
				Debug: debug,
			})
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if cleanup != nil {
				_ = cleanup()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, debugFlagName, false, "enable verbose logging to .idemcheck/logs/idemcheck.log")

	cmd.AddCommand(runCmd())
	cmd.AddCommand(analyzeCmd())
	cmd.AddCommand(sanitizeCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}
