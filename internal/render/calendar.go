// ABOUTME: Terminal rendering of the monthly gym-day calendar.
// ABOUTME: Lays out Monday-first cells with lipgloss styles bound to the output writer.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/hoplit/internal/progress"
)

// GymMark follows the day number of a gym day.
const GymMark = "*"

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// DayTypes lists the routine day types in legend order.
var DayTypes = []string{"Push", "Pull", "Hybrid"}

var dayTypeColors = map[string]lipgloss.Color{
	"Push":   lipgloss.Color("1"),
	"Pull":   lipgloss.Color("4"),
	"Hybrid": lipgloss.Color("5"),
}

// gymColor is used for gym days without a known day type.
const gymColor = lipgloss.Color("2")

// DayTypeColor returns the calendar color of a gym day of dayType.
func DayTypeColor(dayType string) lipgloss.Color {
	if c, ok := dayTypeColors[dayType]; ok {
		return c
	}
	return gymColor
}

// Calendar writes the month grid for cells as built by progress.BuildMonth.
func Calendar(w io.Writer, year int, month time.Month, cells []progress.Cell) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Width(7 * 4).Align(lipgloss.Center)
	header := r.NewStyle().Faint(true)
	today := r.NewStyle().Reverse(true)

	var b strings.Builder
	b.WriteString(title.Render(fmt.Sprintf("%s %d", month, year)))
	b.WriteString("\n")
	for _, h := range weekdayHeader {
		b.WriteString(header.Render(fmt.Sprintf("%3s ", h)))
	}
	b.WriteString("\n")

	gymDays := 0
	for i, c := range cells {
		if i > 0 && i%7 == 0 {
			b.WriteString("\n")
		}
		if c.Blank {
			b.WriteString("    ")
			continue
		}

		text := fmt.Sprintf("%3d", c.Day())
		mark := " "
		style := r.NewStyle()
		if c.GymDay {
			gymDays++
			mark = GymMark
			style = r.NewStyle().Foreground(DayTypeColor(c.DayType)).Bold(true)
		}
		if c.Today {
			style = style.Inherit(today)
		}
		b.WriteString(style.Render(text))
		b.WriteString(mark)
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s gym day  (%d this month)\n", GymMark, gymDays))
	legend := make([]string, len(DayTypes))
	for i, dt := range DayTypes {
		legend[i] = r.NewStyle().Foreground(DayTypeColor(dt)).Render(GymMark + " " + dt)
	}
	b.WriteString(strings.Join(legend, "  "))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
