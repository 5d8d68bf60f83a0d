package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"glint/internal/storage"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show database information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
}

func runInfo() error {
	configDir := storage.ConfigDir()
	dataDir := storage.DataDir()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	projectRoot := storage.DetectProjectRoot(cwd)

	dbPath, err := storage.ResolveDBPath("")
	if err != nil {
		return err
	}

	fmt.Println("Glint Database Information")
	fmt.Println()
	fmt.Printf("Project root:     %s\n", projectRoot)
	fmt.Printf("Database file:    %s\n", dbPath)
	fmt.Printf("Config directory: %s\n", configDir)
	fmt.Printf("Data directory:   %s\n", dataDir)

	if info, err := os.Stat(dbPath); err == nil {
		sizeMB := float64(info.Size()) / 1_024_000.0
		fmt.Printf("Database size:    %.2f MB\n", sizeMB)

		if store, err := storage.Open(context.Background(), dbPath); err == nil {
			defer store.Close()
			if spanCount, err := store.CountSpans(context.Background()); err == nil {
				fmt.Printf("Total spans:      %d\n", spanCount)
			}
			if logCount, err := store.CountLogs(context.Background()); err == nil {
				fmt.Printf("Total logs:       %d\n", logCount)
			}
		}
	} else {
		fmt.Println("Database not yet created")
	}

	fmt.Println()
	fmt.Println("All databases:")
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return fmt.Errorf("read data directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".db" {
			continue
		}
		path := filepath.Join(dataDir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		sizeMB := float64(info.Size()) / 1_024_000.0
		fmt.Printf("  - %s (%.2f MB)\n", entry.Name(), sizeMB)
	}

	return nil
}
