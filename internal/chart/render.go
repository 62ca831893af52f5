package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/netpulse-dev/netpulse/internal/history"
)

const (
	axisGutter = 8 // width of the Y axis label column, separator included
	yTickCount = 4
)

// Renderer draws the scrolling dual-series waveform into a block of styled
// terminal rows. A panic while drawing is recovered and logged; the previous
// frame stays on screen.
type Renderer struct {
	DownloadStyle lipgloss.Style
	UploadStyle   lipgloss.Style
	AxisStyle     lipgloss.Style

	logf func(format string, args ...any)
	last string
}

// NewRenderer creates a renderer. logf receives a line when a frame is
// dropped; nil disables logging.
func NewRenderer(logf func(format string, args ...any)) *Renderer {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Renderer{
		DownloadStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		UploadStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		AxisStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		logf:          logf,
	}
}

// Frame renders the sample window into a width x height cell block. width and
// height are total budget, axis gutter and time ruler included.
func (r *Renderer) Frame(samples []history.Sample, max float64, width, height int) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logf("chart frame dropped: %v", rec)
			out = r.last
		}
	}()

	plotW := width - axisGutter
	plotH := height - 1 // bottom row is the time ruler
	if plotW < 4 || plotH < 2 {
		return r.last
	}

	canvas := NewCanvas(plotW, plotH, 2)
	region := canvas.Region()

	// Upload first so download wins overlapping cells, matching its place on
	// top in the readout panel.
	canvas.Polyline(1, Smooth(PlotPoints(samples, SeriesUpload, max, region)))
	canvas.Polyline(0, Smooth(PlotPoints(samples, SeriesDownload, max, region)))

	rows := canvas.Render([]lipgloss.Style{r.DownloadStyle, r.UploadStyle})
	gutter := r.yAxisGutter(max, plotH)

	var sb strings.Builder
	for i, row := range rows {
		sb.WriteString(gutter[i])
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	sb.WriteString(r.timeRuler(samples, width))

	r.last = sb.String()
	return r.last
}

// yAxisGutter builds one gutter string per plot row, placing nice tick labels
// at their projected rows.
func (r *Renderer) yAxisGutter(max float64, plotH int) []string {
	labels := make([]string, plotH)
	for _, tick := range NiceTicks(0, max, yTickCount) {
		if tick.Value < 0 || tick.Value > max {
			continue
		}
		row := int(math.Round(ProjectY(tick.Value, max, float64(plotH-1))))
		if row >= 0 && row < plotH {
			labels[row] = tick.Label
		}
	}

	out := make([]string, plotH)
	for i, label := range labels {
		sep := "│"
		if label != "" {
			sep = "┤"
		}
		out[i] = r.AxisStyle.Render(fmt.Sprintf("%*s%s", axisGutter-1, label, sep))
	}
	return out
}

// timeRuler renders the bottom row: first timestamp on the left edge of the
// plot, last on the right.
func (r *Renderer) timeRuler(samples []history.Sample, width int) string {
	if len(samples) == 0 {
		return r.AxisStyle.Render(strings.Repeat(" ", width))
	}
	first := samples[0].Timestamp.Format("15:04:05")
	last := samples[len(samples)-1].Timestamp.Format("15:04:05")

	pad := width - axisGutter - len(first) - len(last)
	if pad < 1 {
		return r.AxisStyle.Render(strings.Repeat(" ", axisGutter) + first)
	}
	return r.AxisStyle.Render(strings.Repeat(" ", axisGutter) + first + strings.Repeat(" ", pad) + last)
}
