// ABOUTME: Install Claude Code skill for hoplit
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the hoplit skill for Claude Code.

This copies the skill definition to ~/.claude/skills/hoplit/
so Claude Code can log lifts and read progress contextually.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noStorage: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(cmd.OutOrStdout(), cmd.InOrStdin(), home)
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func installSkill(out io.Writer, in io.Reader, home string) error {
	skillDir := filepath.Join(home, ".claude", "skills", "hoplit")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	fmt.Fprintln(out, "This will install the hoplit skill, enabling Claude Code to:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  • Tick off exercises and log working weights")
	fmt.Fprintln(out, "  • Show today's routine and your 30-day streak")
	fmt.Fprintln(out, "  • Chart how each lift progresses")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Destination:")
	fmt.Fprintf(out, "  %s\n\n", skillPath)

	if _, err := os.Stat(skillPath); err == nil {
		fmt.Fprintln(out, "Note: A skill file already exists and will be overwritten.")
		fmt.Fprintln(out)
	}

	if !skillSkipConfirm {
		fmt.Fprint(out, "Install the hoplit skill? [y/N] ")
		response, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Installation canceled.")
			return nil
		}
		fmt.Fprintln(out)
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(skillDir, 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(skillPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	fmt.Fprintln(out, color.GreenString("✓ Installed hoplit skill successfully!"))
	fmt.Fprintln(out, `Try asking Claude: "Log 100 kg on squats" or "How is my bench going?"`)
	return nil
}
