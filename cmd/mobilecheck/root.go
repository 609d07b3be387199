package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// NewRootCmd creates the root command for mobilecheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mobilecheck",
		Short: "Mobile-friendliness audit for web pages",
		Long: `mobilecheck audits a URL for mobile friendliness and prints a scored
report with remediation recommendations.

By default the deterministic simulated engine is used, which needs no
browser or network access. Pass --engine lighthouse to run a real audit
through the Lighthouse CLI (requires lighthouse and Chromium).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewAnalyzeCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
