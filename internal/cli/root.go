// Package cli implements glint's command-line surface: serve, traces, logs,
// clean, info and a tui stub, grounded on glint-cli's clap command tree and
// written in gaxx's cobra factory-function idiom.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the "glint" root command and attaches every subcommand.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "glint",
		Short:         "Local-first observability for developers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newTracesCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newCleanCmd())
	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newTUICmd())

	return cmd
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
