package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/netpulse-dev/netpulse/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("17")).
			Padding(0, 2)

	downloadStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	uploadStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	captionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	statusOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// View renders the whole screen.
func (m RootModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("NETPULSE — internet speed monitor"))
	b.WriteString("\n\n")
	b.WriteString(m.readoutPanel())
	b.WriteString("\n")
	b.WriteString(m.chartPanel())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s start/stop • e export csv • y copy readout • q quit"))
	return b.String()
}

func (m RootModel) readoutPanel() string {
	dl := lipgloss.JoinVertical(lipgloss.Center,
		downloadStyle.Render(utils.FormatMbps(m.download)),
		captionStyle.Render("DOWNLOAD (Mbps)"),
	)
	ul := lipgloss.JoinVertical(lipgloss.Center,
		uploadStyle.Render(utils.FormatMbps(m.upload)),
		captionStyle.Render("UPLOAD (Mbps)"),
	)
	ping := lipgloss.JoinVertical(lipgloss.Center,
		captionStyle.Render(utils.FormatLatency(m.latencyMs)),
		captionStyle.Render("PING"),
	)
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(dl), " ", panelStyle.Render(ul), " ", panelStyle.Render(ping))
	return row
}

func (m RootModel) chartPanel() string {
	width := m.width
	if width < MinChartWidth {
		width = MinChartWidth
	}
	return m.renderer.Frame(m.ring.Samples(), m.scale.Max(), width, ChartHeight)
}

func (m RootModel) statusLine() string {
	style := statusOKStyle
	if m.statusErr {
		style = statusErrStyle
	}

	line := style.Render(m.status)
	if m.state == InitializingState {
		line = m.spinner.View() + " " + line
	}
	if !m.lastTest.IsZero() && m.state == MonitoringState {
		line += captionStyle.Render("  (" + humanize.Time(m.lastTest) + ")")
	}
	return line
}
