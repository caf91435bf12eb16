package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Completion renders a bar chart of completion percentages with a dashed
// line at the 100% target. Bars above the target use OverColor.
func Completion(width, height int, values []float64, labels []string, opts CompletionOpts) (template.HTML, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("svg: at least one value required")
	}
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: values length must match labels")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}

	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5f5")
	barColor := fallback(opts.BarColor, "#0ea5e9")
	overColor := fallback(opts.OverColor, "#10b981")
	targetColor := fallback(opts.TargetColor, "#f97316")

	chartWidth := float64(width) - 2*padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	maxVal := 100.0
	for _, v := range values {
		if v > maxVal && !math.IsInf(v, 1) {
			maxVal = v
		}
	}
	scale := chartHeight / maxVal
	bottom := padding + chartHeight

	slotWidth := chartWidth / float64(len(values))
	barWidth := slotWidth * 0.6

	titleID := makeID(opts.Title, "completion-title")
	descID := makeID(opts.Title, "completion-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Completion"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Completion per metric"))))

	for i := 0; i <= tickCount; i++ {
		ratio := float64(i) / float64(tickCount)
		value := maxVal * ratio
		y := bottom - ratio*chartHeight
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", padding, y, padding+chartWidth, y, gridColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", padding-6, y+4, axisColor, formatTick(value)))
	}

	b.WriteString(fmt.Sprintf("<g stroke=\"%s\">", axisColor))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, padding, padding, bottom))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, bottom, padding+chartWidth, bottom))
	b.WriteString("</g>")

	for i, label := range labels {
		v := values[i]
		if math.IsNaN(v) || v < 0 {
			v = 0
		}
		if math.IsInf(v, 1) {
			v = maxVal
		}
		h := v * scale
		x := padding + float64(i)*slotWidth + (slotWidth-barWidth)/2
		color := barColor
		if v > 100 {
			color = overColor
		}
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %.1f%%\"></rect>", x, bottom-h, barWidth, h, color, template.HTMLEscapeString(label), values[i]))
		center := padding + float64(i)*slotWidth + slotWidth/2
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", center, bottom+14, axisColor, template.HTMLEscapeString(label)))
	}

	targetY := bottom - 100*scale
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1.5\" stroke-dasharray=\"6,3\" aria-label=\"100%%\"></line>", padding, targetY, padding+chartWidth, targetY, targetColor))

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
