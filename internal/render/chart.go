// ABOUTME: SVG line chart of an exercise's weight progression.
// ABOUTME: Draws the scaled polyline, the last point and its weight label.
package render

import (
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/harperreed/hoplit/internal/progress"
)

// ChartSVG writes a standalone SVG document for plot on canvas.
func ChartSVG(w io.Writer, title string, plot *progress.Plot, canvas progress.Canvas) error {
	last := plot.LastPoint()
	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">
  <title>%s</title>
  <rect width="100%%" height="100%%" fill="#ffffff"/>
  <polyline fill="none" stroke="#e11d48" stroke-width="2" points="%s"/>
  <circle cx="%s" cy="%s" r="4" fill="#e11d48"/>
  <text x="%s" y="%s" font-family="sans-serif" font-size="12" text-anchor="end">%s</text>
</svg>
`,
		num(canvas.Width), num(canvas.Height), num(canvas.Width), num(canvas.Height),
		html.EscapeString(title),
		plot.Polyline(),
		num(last.X), num(last.Y),
		num(last.X), num(last.Y-8), FormatWeight(plot.Last),
	)
	_, err := io.WriteString(w, svg)
	return err
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
