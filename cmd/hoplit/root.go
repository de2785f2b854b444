// ABOUTME: Root Cobra command for the hoplit CLI.
// ABOUTME: Handles config, logger and storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/hoplit/internal/config"
	"github.com/harperreed/hoplit/internal/logging"
	"github.com/harperreed/hoplit/internal/program"
	"github.com/harperreed/hoplit/internal/progress"
	"github.com/harperreed/hoplit/internal/storage"
	"github.com/harperreed/hoplit/internal/tracker"
	"github.com/spf13/cobra"
)

// noStorage marks commands that only read the embedded program.
const noStorage = "no-storage"

var (
	cfg    *config.Config
	repo   storage.Repository
	prog   *program.Program
	logger *log.Logger

	userFlag string
	verbose  bool

	// now is the clock every command reads "today" from.
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "hoplit",
	Short: "Three-day strength program tracker",
	Long: `Hoplit tracks a three-day-a-week strength program: tick off exercises,
log working weights, and watch your streak and progression.

THE PROGRAM:

  $ hoplit program              # Whole week: Push, Pull, Hybrid
  $ hoplit program monday       # One training day
  $ hoplit diet training        # Meal plan for training days
  $ hoplit glossary             # RIR, double progression, tempo

DAILY TRACKING:

  $ hoplit status               # Today's exercises with last weights
  $ hoplit check mon-1          # Toggle today's checkbox for Back Squat
  $ hoplit weight squat 102.5   # Log today's working weight in kg

PROGRESS:

  $ hoplit streak               # Gym days in the last 30 days
  $ hoplit calendar             # This month, gym days marked
  $ hoplit history squat        # Weight history, newest first
  $ hoplit chart squat -o squat.svg

MCP INTEGRATION:

  Run 'hoplit mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  Logs are stored in SQLite at ~/.local/share/hoplit/hoplit.db by default.
  Set "backend": "badger" in ~/.config/hoplit/config.json to use the
  Badger key-value store instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if userFlag != "" {
			cfg.UserID = userFlag
		}

		level := cfg.GetLogLevel()
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(os.Stderr, level)
		if err != nil {
			return err
		}

		prog, err = program.Default()
		if err != nil {
			return fmt.Errorf("failed to load program: %w", err)
		}

		if _, ok := cmd.Annotations[noStorage]; ok {
			return nil
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		logger.Debug("storage opened", "backend", cfg.GetBackend(), "path", repo.Path(), "user", cfg.GetUserID())
		return nil
	},
}

func init() {
	cobra.OnFinalize(closeStorage)
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "user whose logs to use (default from config, else \"local\")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	defer closeStorage()
	return rootCmd.Execute()
}

// closeStorage releases the repository after every command, including
// ones whose RunE failed.
func closeStorage() {
	if repo == nil {
		return
	}
	if err := repo.Close(); err != nil && logger != nil {
		logger.Warn("failed to close storage", "err", err)
	}
	repo = nil
}

func userID() string {
	return cfg.GetUserID()
}

// summarize aggregates the user's logs as of today, warning about any
// record that had to be skipped.
func summarize() (*progress.Summary, error) {
	sum, err := tracker.Summarize(repo, userID(), now())
	if err != nil {
		return nil, err
	}
	for _, e := range sum.Excluded {
		logger.Warn("skipping log", "err", e)
	}
	return sum, nil
}
