// ABOUTME: CLI commands for progress views.
// ABOUTME: Status cards, streak, month calendar, weight history and SVG charts.
package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/hoplit/internal/progress"
	"github.com/harperreed/hoplit/internal/render"
	"github.com/harperreed/hoplit/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	calendarNext bool
	calendarPrev bool

	chartOutput  string
	chartWidth   float64
	chartHeight  float64
	chartPadding float64
)

var statusCmd = &cobra.Command{
	Use:   "status [day]",
	Short: "Show today's exercises with checkbox and last weights",
	Long: `Show a card per exercise: today's checkbox, the last logged weight and
the three most recent weights.

Without an argument the routine for today's weekday is shown.

EXAMPLES:

  hoplit status
  hoplit status friday`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		today := now()

		day := strings.ToLower(today.Weekday().String())
		if len(args) == 1 {
			day = args[0]
		}
		r, ok := prog.Routine(day)
		if !ok {
			if len(args) == 1 {
				return fmt.Errorf("unknown training day %q (have %s)", day, strings.Join(prog.DayOrder(), ", "))
			}
			fmt.Fprintf(out, "Rest day. Training days: %s\n", strings.Join(prog.DayOrder(), ", "))
			return nil
		}

		logs, err := tracker.Snapshot(repo, userID())
		if err != nil {
			return fmt.Errorf("failed to list logs: %w", err)
		}

		fmt.Fprintf(out, "%s %s  %s\n", color.New(color.Bold, color.FgCyan).Sprint(r.Label), r.Type,
			color.New(color.Faint).Sprint(today.Format("2006-01-02")))
		for _, e := range prog.Exercises() {
			if e.DayKey != r.Key {
				continue
			}
			if err := render.Status(out, tracker.ExerciseStatus(logs, e, today)); err != nil {
				return err
			}
		}
		return nil
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show gym days in the last 30 days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sum, err := summarize()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s gym days in the last %d days\n",
			color.New(color.Bold, color.FgGreen).Sprint(sum.Streak), progress.StreakWindowDays)
		fmt.Fprintf(out, "%s\n", color.New(color.Faint).Sprintf("%d gym days in total", len(sum.GymDays)))
		if n := len(sum.GymDays); n > 0 {
			last := sum.GymDays[n-1]
			fmt.Fprintf(out, "%s\n", color.New(color.Faint).Sprintf("last: %s %s", progress.FormatDate(last.Date), last.DayType))
		}
		return nil
	},
}

var calendarCmd = &cobra.Command{
	Use:     "calendar [YYYY-MM]",
	Aliases: []string{"cal"},
	Short:   "Show a month with gym days marked",
	Long: `Show a Monday-first month grid. Gym days are marked with *.

EXAMPLES:

  hoplit calendar            # This month
  hoplit calendar 2024-03    # March 2024
  hoplit calendar --prev     # Last month`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		today := now()
		year, month := today.Year(), today.Month()
		if len(args) == 1 {
			var err error
			year, month, err = progress.ParseMonth(args[0])
			if err != nil {
				return fmt.Errorf("%w (use YYYY-MM)", err)
			}
		}
		if calendarNext {
			year, month = progress.NextMonth(year, month)
		}
		if calendarPrev {
			year, month = progress.PrevMonth(year, month)
		}

		sum, err := summarize()
		if err != nil {
			return err
		}
		cells, err := progress.BuildMonth(year, month, sum.GymDays, today)
		if err != nil {
			return err
		}
		return render.Calendar(cmd.OutOrStdout(), year, month, cells)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [exercise]",
	Short: "Show weight history, newest first",
	Long: `Show the logged weights of one exercise, or of every exercise with
any weight, newest first.

EXAMPLES:

  hoplit history
  hoplit history squat`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		sum, err := summarize()
		if err != nil {
			return err
		}

		names := sum.Exercises()
		if len(args) == 1 {
			ex, err := prog.FindExercise(args[0])
			if err != nil {
				return err
			}
			names = []string{ex.Name}
		}

		shown := 0
		for _, name := range names {
			series := sum.Series[name]
			if len(series) == 0 {
				continue
			}
			if err := render.History(out, name, series); err != nil {
				return err
			}
			shown++
		}
		if shown == 0 {
			fmt.Fprintln(out, "No weights logged.")
		}
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart <exercise>",
	Short: "Render an exercise's weight progression as SVG",
	Long: `Render the weight progression of an exercise as an SVG line chart.

The vertical axis spans 90% of the lowest to 110% of the highest weight.

EXAMPLES:

  hoplit chart squat                 # SVG to stdout
  hoplit chart mon-1 -o squat.svg    # Save to file
  hoplit chart bench --width 600 --height 400`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := prog.FindExercise(args[0])
		if err != nil {
			return err
		}
		sum, err := summarize()
		if err != nil {
			return err
		}

		series := sum.Series[ex.Name]
		if len(series) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No weights logged for %s.\n", ex.Name)
			return nil
		}

		canvas := progress.Canvas{Width: chartWidth, Height: chartHeight, Padding: chartPadding}
		plot, err := progress.Scale(series, canvas)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := render.ChartSVG(&buf, ex.Name, plot, canvas); err != nil {
			return err
		}

		if chartOutput == "" {
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}
		if err := os.WriteFile(chartOutput, buf.Bytes(), 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Chart written to %s", chartOutput))
		return nil
	},
}

func init() {
	calendarCmd.Flags().BoolVar(&calendarNext, "next", false, "show the following month")
	calendarCmd.Flags().BoolVar(&calendarPrev, "prev", false, "show the previous month")
	calendarCmd.MarkFlagsMutuallyExclusive("next", "prev")

	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "output file (default: stdout)")
	chartCmd.Flags().Float64Var(&chartWidth, "width", progress.DefaultCanvas.Width, "canvas width")
	chartCmd.Flags().Float64Var(&chartHeight, "height", progress.DefaultCanvas.Height, "canvas height")
	chartCmd.Flags().Float64Var(&chartPadding, "padding", progress.DefaultCanvas.Padding, "canvas padding")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(chartCmd)
}
