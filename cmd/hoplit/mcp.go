// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"os/signal"
	"syscall"

	"github.com/harperreed/hoplit/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Diagnostics go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "hoplit": {
        "command": "hoplit",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_program           Weekly program or one training day
  toggle_exercise       Toggle today's checkbox for an exercise
  log_weight            Record today's weight for an exercise
  list_logs             List logs, newest first
  delete_log            Delete a log by ID or prefix
  get_progress          Gym days, streak and weight series
  get_calendar          Month grid with gym days
  get_exercise_history  Weight history of an exercise
  get_chart             SVG chart of an exercise's weights

AVAILABLE RESOURCES:

  hoplit://progress   Gym days, streak and series
  hoplit://today      Today's routine with checkboxes and last weights`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, userID(), logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
