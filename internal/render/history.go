// ABOUTME: Terminal tables for weight history and exercise status cards.
// ABOUTME: Uses lipgloss/table for bordered output.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/harperreed/hoplit/internal/progress"
	"github.com/harperreed/hoplit/internal/tracker"
)

// FormatWeight renders a weight in kg without trailing zeros.
func FormatWeight(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64) + " kg"
}

// History writes a newest-first weight table for one exercise.
func History(w io.Writer, exercise string, samples []progress.Sample) error {
	r := lipgloss.NewRenderer(w)
	headerStyle := r.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Faint(true)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Date", exercise)

	for _, s := range progress.Newest(samples, 0) {
		t.Row(progress.FormatDate(s.Date), FormatWeight(s.Weight))
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Status writes one exercise card: today's check, the last weight and
// the recent history.
func Status(w io.Writer, st tracker.Status) error {
	r := lipgloss.NewRenderer(w)
	box := r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	name := r.NewStyle().Bold(true)

	check := "[ ]"
	if st.Completed {
		check = "[x]"
	}
	last := "-"
	if st.LastWeight != nil {
		last = FormatWeight(*st.LastWeight)
	}

	body := fmt.Sprintf("%s %s  (%s)\nlast: %s", check, name.Render(st.Name), st.ExerciseID, last)
	for _, s := range st.History {
		body += fmt.Sprintf("\n  %s  %s", progress.FormatDate(s.Date), FormatWeight(s.Weight))
	}

	_, err := fmt.Fprintln(w, box.Render(body))
	return err
}
