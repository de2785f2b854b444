// ABOUTME: CLI commands for daily tracking.
// ABOUTME: Toggles today's checkbox and records today's working weight.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/hoplit/internal/render"
	"github.com/harperreed/hoplit/internal/tracker"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:     "check <exercise>",
	Aliases: []string{"done", "toggle"},
	Short:   "Toggle today's checkbox for an exercise",
	Long: `Toggle today's completion checkbox for an exercise.

The exercise can be its ID (mon-1) or any unique part of its name.
Running the command again on the same day clears the checkbox.

EXAMPLES:

  hoplit check mon-1
  hoplit check deadlift`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := prog.FindExercise(args[0])
		if err != nil {
			return err
		}

		l, err := tracker.ToggleCompleted(repo, userID(), *ex, now())
		if err != nil {
			return err
		}
		logger.Debug("toggled", "exercise", ex.ID, "date", l.Date, "completed", l.Completed)

		out := cmd.OutOrStdout()
		if l.Completed {
			fmt.Fprintln(out, color.GreenString("✓ %s done", ex.Name))
		} else {
			fmt.Fprintln(out, color.YellowString("○ %s not done", ex.Name))
		}
		fmt.Fprintf(out, "  %s %s\n", color.New(color.Faint).Sprint(l.ShortID()), l.Date)
		return nil
	},
}

var weightCmd = &cobra.Command{
	Use:     "weight <exercise> <kg>",
	Aliases: []string{"w"},
	Short:   "Record today's weight for an exercise",
	Long: `Record today's working weight in kg for an exercise.

Logging a weight does not tick the exercise off; use 'hoplit check' for that.
Logging again on the same day replaces the weight.

EXAMPLES:

  hoplit weight mon-1 100
  hoplit weight "bench" 62.5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := prog.FindExercise(args[0])
		if err != nil {
			return err
		}

		kg, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q: %w", args[1], tracker.ErrInvalidWeight)
		}

		l, err := tracker.RecordWeight(repo, userID(), *ex, now(), kg)
		if err != nil {
			return err
		}
		logger.Debug("weight recorded", "exercise", ex.ID, "date", l.Date, "kg", kg)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ %s: %s", ex.Name, render.FormatWeight(kg)))
		fmt.Fprintf(out, "  %s %s\n", color.New(color.Faint).Sprint(l.ShortID()), l.Date)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(weightCmd)
}
