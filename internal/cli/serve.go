package cli

import (
	"github.com/spf13/cobra"

	"glint/internal/bootstrap"
	"glint/internal/config"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the collector and query API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("port") {
				port, _ := cmd.Flags().GetInt("port")
				cfg.QueryAPIPort = port
			}
			if cmd.Flags().Changed("grpc-port") {
				grpcPort, _ := cmd.Flags().GetInt("grpc-port")
				cfg.OTLPGRPCPort = grpcPort
			}
			if cmd.Flags().Changed("db-path") {
				dbPath, _ := cmd.Flags().GetString("db-path")
				cfg.DBPath = dbPath
			}

			app, err := bootstrap.New(cfg)
			if err != nil {
				return err
			}
			return app.Run()
		},
	}

	cmd.Flags().IntP("port", "p", 7070, "REST/JSON query API port")
	cmd.Flags().Int("grpc-port", 4317, "OTLP gRPC collector port")
	cmd.Flags().String("db-path", "", "custom database file path (auto-detected by default)")

	return cmd
}
