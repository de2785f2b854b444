// ABOUTME: CLI commands for the static program content.
// ABOUTME: Shows the weekly routine, the diet plan and the glossary.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/hoplit/internal/models"
	"github.com/spf13/cobra"
)

var programCmd = &cobra.Command{
	Use:     "program [day]",
	Aliases: []string{"routine"},
	Short:   "Show the weekly training program",
	Long: `Show the weekly training program, or a single training day.

Each exercise line shows: ID  NAME  SETS  REST  RIR
Use the ID (for example mon-1) with 'hoplit check' and 'hoplit weight'.

EXAMPLES:

  hoplit program            # All three training days
  hoplit program wednesday  # Just the Pull day`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{noStorage: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			r, ok := prog.Routine(args[0])
			if !ok {
				return fmt.Errorf("unknown training day %q (have %s)", args[0], strings.Join(prog.DayOrder(), ", "))
			}
			printRoutine(out, r)
			return nil
		}

		fmt.Fprintf(out, "%s  %s\n\n", color.New(color.Bold).Sprint(prog.Name), color.New(color.Faint).Sprint(prog.Summary))
		for i := range prog.Training {
			printRoutine(out, &prog.Training[i])
			fmt.Fprintln(out)
		}
		return nil
	},
}

func printRoutine(w io.Writer, r *models.Routine) {
	faint := color.New(color.Faint)
	fmt.Fprintf(w, "%s %s\n", color.New(color.Bold, color.FgCyan).Sprint(r.Label), r.Type)
	for _, ex := range r.Exercises {
		fmt.Fprintf(w, "  %s %s %s %s %s\n",
			faint.Sprint(padRight(ex.ID, 6)),
			padRight(ex.Name, 30),
			padRight(ex.Sets, 10),
			padRight(ex.Rest, 10),
			ex.RIR)
		if ex.Notes != "" {
			fmt.Fprintf(w, "         %s\n", faint.Sprint(ex.Notes))
		}
	}
}

var dietCmd = &cobra.Command{
	Use:   "diet [training|rest]",
	Short: "Show the meal plan",
	Long: `Show the meal plan for training days, rest days, or both.

EXAMPLES:

  hoplit diet            # Both plans
  hoplit diet rest       # Rest-day plan only`,
	Args:        cobra.MaximumNArgs(1),
	ValidArgs:   []string{"training", "rest"},
	Annotations: map[string]string{noStorage: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		days := prog.Diet
		if len(args) == 1 {
			d, ok := prog.DietDay(args[0])
			if !ok {
				return fmt.Errorf("unknown diet day %q (use training or rest)", args[0])
			}
			days = []models.DietDay{*d}
		}

		faint := color.New(color.Faint)
		for _, d := range days {
			fmt.Fprintln(out, color.New(color.Bold, color.FgCyan).Sprint(d.Title))
			for _, m := range d.Meals {
				fmt.Fprintf(out, "  %s %s %s %s\n",
					faint.Sprint(m.Time),
					padRight(m.Name, 16),
					padRight(m.Foods, 50),
					m.Quantity)
				if m.Notes != "" {
					fmt.Fprintf(out, "        %s\n", faint.Sprint(m.Notes))
				}
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var glossaryCmd = &cobra.Command{
	Use:         "glossary",
	Short:       "Explain RIR, double progression and tempo",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noStorage: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		g := prog.Glossary

		for _, section := range []models.GlossarySection{g.RIR, g.Progression, g.Tempo} {
			fmt.Fprintln(out, color.New(color.Bold).Sprint(section.Title))
			for _, item := range section.Items {
				fmt.Fprintf(out, "  - %s\n", item)
			}
			fmt.Fprintln(out)
		}
		if g.ProTip != "" {
			fmt.Fprintf(out, "%s %s\n", color.YellowString("Pro tip:"), g.ProTip)
		}
		return nil
	},
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	rootCmd.AddCommand(programCmd)
	rootCmd.AddCommand(dietCmd)
	rootCmd.AddCommand(glossaryCmd)
}
