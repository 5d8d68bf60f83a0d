package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("TUI not implemented yet")
			return nil
		},
	}
}
