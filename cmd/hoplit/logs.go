// ABOUTME: CLI commands for raw log management.
// ABOUTME: Lists logs with short IDs, deletes one log, or purges a user's history.
package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/hoplit/internal/render"
	"github.com/spf13/cobra"
)

var (
	logsLimit int
	purgeYes  bool
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"ls", "list"},
	Short:   "List exercise logs",
	Long: `List exercise logs, newest first.

OUTPUT FORMAT:

  Each line shows: ID  DATE  DONE  EXERCISE  WEIGHT

  The ID is an 8-character prefix you can use with 'hoplit delete'.

EXAMPLES:

  hoplit logs             # Last 20 logs
  hoplit logs -n 100      # Last 100 logs
  hoplit logs -n 0        # Everything`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logs, err := repo.ListLogs(userID())
		if err != nil {
			return fmt.Errorf("failed to list logs: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(logs) == 0 {
			fmt.Fprintln(out, "No logs found.")
			return nil
		}

		faint := color.New(color.Faint)
		shown := 0
		for i := len(logs) - 1; i >= 0; i-- {
			if logsLimit > 0 && shown >= logsLimit {
				break
			}
			l := logs[i]
			done := "[ ]"
			if l.Completed {
				done = color.GreenString("[x]")
			}
			weight := ""
			if l.Weight != nil {
				weight = render.FormatWeight(*l.Weight)
			}
			fmt.Fprintf(out, "%s %s %s %s %s\n",
				faint.Sprint(l.ShortID()),
				faint.Sprint(l.Date),
				done,
				padRight(l.ExerciseName, 30),
				weight)
			shown++
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete an exercise log",
	Long: `Delete an exercise log by its ID or ID prefix.

The ID prefix is shown in the first column of 'hoplit logs' output.
If the prefix matches several logs, nothing is deleted and an error is returned.

EXAMPLES:

  hoplit delete abc12345
  hoplit rm abc1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteLog(userID(), args[0]); err != nil {
			return fmt.Errorf("failed to delete log: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("✗ Deleted %s", args[0]))
		return nil
	},
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every log of the current user",
	Long: `Delete all exercise logs of the current user. There is no undo.

Without --yes you are asked to type 'purge' to confirm.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !purgeYes {
			fmt.Fprintf(out, "This will PERMANENTLY DELETE all logs of %q.\n", userID())
			fmt.Fprint(out, "Type 'purge' to confirm: ")
			confirm, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if strings.TrimSpace(confirm) != "purge" {
				fmt.Fprintln(out, "Canceled.")
				return nil
			}
		}

		n, err := repo.PurgeLogs(userID())
		if err != nil {
			return fmt.Errorf("failed to purge logs: %w", err)
		}
		logger.Info("purged logs", "user", userID(), "count", n)
		fmt.Fprintln(out, color.GreenString("✓ Deleted %d logs", n))
		return nil
	},
}

func init() {
	logsCmd.Flags().IntVarP(&logsLimit, "limit", "n", 20, "max number of results (0 for all)")
	purgeCmd.Flags().BoolVarP(&purgeYes, "yes", "y", false, "skip confirmation")

	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(purgeCmd)
}
