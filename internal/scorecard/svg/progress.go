package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Progress renders a horizontal bar filled to pct percent. The value is
// clamped to [0,100].
func Progress(width, height int, pct float64, opts ProgressOpts) (template.HTML, error) {
	if math.IsNaN(pct) {
		return "", fmt.Errorf("svg: progress value is NaN")
	}
	if width <= 0 {
		width = DefaultProgressWidth
	}
	if height <= 0 {
		height = DefaultProgressHeight
	}
	pct = math.Max(0, math.Min(pct, 100))
	radius := opts.Radius
	if radius <= 0 {
		radius = float64(height) / 2
	}
	fill := fallback(opts.FillColor, "#6366f1")
	track := fallback(opts.TrackColor, "#e2e8f0")
	title := fallback(opts.Title, "Progress")
	fillWidth := float64(width) * pct / 100

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" preserveAspectRatio=\"none\" role=\"progressbar\" aria-valuemin=\"0\" aria-valuemax=\"100\" aria-valuenow=\"%.1f\">", width, height, pct))
	b.WriteString(fmt.Sprintf("<title>%s</title>", template.HTMLEscapeString(title)))
	b.WriteString(fmt.Sprintf("<rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" rx=\"%.2f\" fill=\"%s\"></rect>", width, height, radius, track))
	if fillWidth > 0 {
		b.WriteString(fmt.Sprintf("<rect x=\"0\" y=\"0\" width=\"%.2f\" height=\"%d\" rx=\"%.2f\" fill=\"%s\"></rect>", fillWidth, height, radius, fill))
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
