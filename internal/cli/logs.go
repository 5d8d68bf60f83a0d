package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"glint/internal/model"
)

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Query logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _ := cmd.Flags().GetString("service")
			dbPath, _ := cmd.Flags().GetString("db-path")

			store, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := context.Background()
			logs, err := store.ListLogs(ctx, service, service != "", model.SeverityUnspecified, false, cliListLimit)
			if err != nil {
				return err
			}

			for _, l := range logs {
				svc := l.ServiceName
				if svc == "" {
					svc = "unknown"
				}
				fmt.Printf("[%s] %s - %s\n", l.Severity.String(), svc, l.Body)
			}
			return nil
		},
	}

	cmd.Flags().String("service", "", "filter by service name")
	cmd.Flags().String("db-path", "", "custom database file path (auto-detected by default)")

	return cmd
}
