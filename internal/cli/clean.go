package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"glint/internal/storage"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete the database (current project, or all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			dbPath, _ := cmd.Flags().GetString("db-path")

			if all {
				return cleanAll()
			}
			return cleanOne(dbPath)
		},
	}

	cmd.Flags().String("db-path", "", "custom database file path (auto-detected by default)")
	cmd.Flags().Bool("all", false, "clean all databases in the data directory")

	return cmd
}

func cleanAll() error {
	dataDir := storage.DataDir()
	fmt.Printf("Cleaning all databases in: %s\n", dataDir)

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return fmt.Errorf("read data directory: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".db" {
			continue
		}
		path := filepath.Join(dataDir, entry.Name())
		if err := os.Remove(path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete %s: %v\n", path, err)
			continue
		}
		fmt.Printf("Deleted: %s\n", entry.Name())
		count++
	}

	fmt.Printf("Cleaned %d database(s)\n", count)
	return nil
}

func cleanOne(override string) error {
	path, err := storage.ResolveDBPath(override)
	if err != nil {
		return err
	}

	fmt.Printf("Deleting database: %s\n", path)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("Database not found (already deleted or never created)")
			return nil
		}
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Println("Database deleted successfully")
	return nil
}
