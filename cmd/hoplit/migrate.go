// ABOUTME: CLI command for copying logs between storage backends.
// ABOUTME: Moves data from the configured backend to sqlite or badger.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/hoplit/internal/config"
	"github.com/harperreed/hoplit/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
	migrateSwitch bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy logs to another storage backend",
	Long: `Copy every exercise log from the configured backend to another one.

BACKENDS:

  sqlite   ~/.local/share/hoplit/hoplit.db (default)
  badger   ~/.local/share/hoplit/kv/

IMPORTANT:

  - The source is left untouched
  - Refuses to write into a destination that already holds data unless --force
  - Run with --dry-run first to see what would be copied
  - Add --switch to make the destination the configured backend afterwards

USAGE:

  hoplit migrate --to badger --dry-run
  hoplit migrate --to badger --switch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		from := cfg.GetBackend()
		if migrateTo == from {
			return fmt.Errorf("already using the %s backend", from)
		}

		dstPath, err := cfg.StoragePath(migrateTo)
		if err != nil {
			return err
		}

		if migrateDryRun {
			data, err := repo.GetAllData()
			if err != nil {
				return fmt.Errorf("failed to read logs: %w", err)
			}
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			fmt.Fprintf(out, "Would copy %d logs from %s (%s) to %s (%s)\n", len(data.Logs), from, repo.Path(), migrateTo, dstPath)
			return nil
		}

		hasData, err := destinationHasData(migrateTo, dstPath)
		if err != nil {
			return err
		}
		if hasData && !migrateForce {
			return fmt.Errorf("destination %s already has data; use --force to merge into it", dstPath)
		}

		dst, err := cfg.OpenBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("migrated logs", "from", from, "to", migrateTo, "logs", summary.Logs)

		fmt.Fprintln(out, color.GreenString("✓ Copied %d logs for %d users from %s to %s", summary.Logs, summary.Users, from, migrateTo))
		fmt.Fprintf(out, "  %s\n", color.New(color.Faint).Sprint(dst.Path()))

		if migrateSwitch {
			saved, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			saved.Backend = migrateTo
			if err := saved.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(out, "  Backend set to %s in %s\n", migrateTo, config.GetConfigPath())
		}
		return nil
	},
}

func destinationHasData(backend, path string) (bool, error) {
	if backend == config.BackendBadger {
		return storage.IsDirNonEmpty(path)
	}
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Size() > 0, nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend (sqlite or badger)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "merge into a destination that already has data")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "use the destination backend from now on")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
