// ABOUTME: CLI commands for exporting and importing exercise logs.
// ABOUTME: Supports JSON (restorable) and YAML (grouped by date) export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/hoplit/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export exercise logs",
	Long: `Export every stored exercise log.

FORMATS:

  json   Full JSON export (suitable for backup/restore)
  yaml   YAML grouped by user and date (human-readable)

EXAMPLES:

  hoplit export json                  # Export all data as JSON
  hoplit export json -o backup.json   # Save to file
  hoplit export yaml`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error

		switch args[0] {
		case "json":
			data, err = storage.ExportJSON(repo)
		case "yaml":
			data, err = storage.ExportYAML(repo)
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintln(out, color.GreenString("✓ Exported to %s", exportOutput))
			return nil
		}
		fmt.Fprintln(out, string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import exercise logs from JSON",
	Long: `Import exercise logs from a JSON file written by 'hoplit export json'.

A log for the same user, exercise and date replaces the stored one, so
importing the same backup twice is harmless.

EXAMPLES:

  hoplit import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		n, err := storage.ImportJSON(repo, data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Imported %d logs from %s", n, args[0]))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
