// ABOUTME: Scales a weight series onto a fixed chart canvas.
// ABOUTME: Output points feed straight into an SVG polyline.
package progress

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Canvas is the logical drawing area of a chart.
type Canvas struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
}

// DefaultCanvas is 300x200 with 20 units of padding on every side.
var DefaultCanvas = Canvas{Width: 300, Height: 200, Padding: 20}

// Point is a plot coordinate; y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Plot is a scaled series.
type Plot struct {
	Points []Point `json:"points"`
	// Last is the raw weight of the final sample, for the end-of-line label.
	Last float64 `json:"last"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Scale maps samples onto canvas. The vertical range is min*0.9 .. max*1.1;
// when that range is empty every point sits on the vertical center.
func Scale(samples []Sample, canvas Canvas) (*Plot, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("scale: no samples: %w", ErrInvalidInput)
	}
	if canvas.Width <= 2*canvas.Padding || canvas.Height <= 2*canvas.Padding {
		return nil, fmt.Errorf("scale: canvas %vx%v too small for padding %v: %w",
			canvas.Width, canvas.Height, canvas.Padding, ErrInvalidInput)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i, s := range samples {
		if math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0) {
			return nil, fmt.Errorf("scale: sample %d is not finite: %w", i, ErrInvalidInput)
		}
		lo = math.Min(lo, s.Weight)
		hi = math.Max(hi, s.Weight)
	}
	lo *= 0.9
	hi *= 1.1
	span := hi - lo

	p := canvas.Padding
	plotW := canvas.Width - 2*p
	plotH := canvas.Height - 2*p
	n := len(samples)

	points := make([]Point, n)
	for i, s := range samples {
		x := p
		if n > 1 {
			x = p + float64(i)/float64(n-1)*plotW
		}
		y := canvas.Height / 2
		if span != 0 {
			y = (canvas.Height - p) - (s.Weight-lo)/span*plotH
		}
		points[i] = Point{X: x, Y: y}
	}

	return &Plot{
		Points: points,
		Last:   samples[n-1].Weight,
		Min:    lo,
		Max:    hi,
	}, nil
}

// Polyline renders the points as an SVG points attribute.
func (p *Plot) Polyline() string {
	parts := make([]string, len(p.Points))
	for i, pt := range p.Points {
		parts[i] = formatCoord(pt.X) + "," + formatCoord(pt.Y)
	}
	return strings.Join(parts, " ")
}

// LastPoint returns the final point, where the value label goes.
func (p *Plot) LastPoint() Point {
	return p.Points[len(p.Points)-1]
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
