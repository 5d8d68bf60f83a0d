package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"glint/internal/storage"
)

const cliListLimit = 100
const slowTraceThresholdMs = 100.0

func newTracesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "traces",
		Short: "Query traces",
		RunE: func(cmd *cobra.Command, args []string) error {
			slow, _ := cmd.Flags().GetBool("slow")
			dbPath, _ := cmd.Flags().GetString("db-path")

			store, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := context.Background()
			traces, err := store.ListTraces(ctx, "", false, cliListLimit)
			if err != nil {
				return err
			}

			for _, t := range traces {
				if slow && t.DurationMillis() <= slowTraceThresholdMs {
					continue
				}
				service := t.ServiceName()
				if service == "" {
					service = "unknown"
				}
				errSuffix := ""
				if t.HasErrors() {
					errSuffix = " [ERROR]"
				}
				fmt.Printf("[%s] %s - %.2fms - %d spans%s\n",
					t.TraceID, service, t.DurationMillis(), t.SpanCount(), errSuffix)
			}
			return nil
		},
	}

	cmd.Flags().Bool("slow", false, fmt.Sprintf("only show traces slower than %.0fms", slowTraceThresholdMs))
	cmd.Flags().String("db-path", "", "custom database file path (auto-detected by default)")

	return cmd
}

// openStore resolves the effective database path (override, when non-empty,
// wins) and opens it.
func openStore(override string) (*storage.Store, error) {
	path, err := storage.ResolveDBPath(override)
	if err != nil {
		return nil, err
	}
	return storage.Open(context.Background(), path)
}
