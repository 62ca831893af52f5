package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/google/uuid"

	"github.com/netpulse-dev/netpulse/internal/history"
	"github.com/netpulse-dev/netpulse/internal/messages"
	"github.com/netpulse-dev/netpulse/internal/utils"
)

// Update handles messages and updates the model.
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case clientReadyMsg:
		m.serverName = msg.name
		m.state = IdleState
		m.setStatus(fmt.Sprintf("Ready — server %s (%s). Press s to start.", msg.name, msg.host), false)
		return m, nil

	case clientErrorMsg:
		m.setStatus("Connection error: "+msg.err.Error(), true)
		cmds = append(cmds, m.notify("Connection error", msg.err.Error()))
		return m, tea.Batch(cmds...)

	case messages.MeasurementMsg:
		m.applyMeasurement(msg)
		cmds = append(cmds, listenForActivity(m.events))
		return m, tea.Batch(cmds...)

	case messages.MonitorStoppedMsg:
		m.state = IdleState
		if msg.Err != nil {
			m.setStatus("Error: "+msg.Err.Error(), true)
			cmds = append(cmds, m.notify("Monitoring stopped", msg.Err.Error()))
		} else {
			m.setStatus("Status: Inactive", false)
		}
		cmds = append(cmds, listenForActivity(m.events))
		return m, tea.Batch(cmds...)

	case messages.ExportDoneMsg:
		m.setStatus(fmt.Sprintf("Data exported: %s (%d rows)", msg.Path, msg.Rows), false)
		cmds = append(cmds, m.notify("Export complete", msg.Path))
		return m, tea.Batch(cmds...)

	case messages.ExportErrorMsg:
		m.setStatus("Export error: "+msg.Err.Error(), true)
		return m, nil

	case spinner.TickMsg:
		if m.state != InitializingState {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *RootModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.mon.Stop()
		return *m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if m.state == InitializingState {
			return *m, nil
		}
		if m.state == MonitoringState {
			m.mon.Stop()
			m.setStatus("Stopping after current test...", false)
			return *m, nil
		}
		return *m, m.startMonitoring()

	case key.Matches(msg, m.keys.Export):
		if m.state == InitializingState {
			return *m, nil
		}
		return *m, m.exportHistory()

	case key.Matches(msg, m.keys.Copy):
		line := m.readoutLine()
		if err := clipboard.WriteAll(line); err != nil {
			m.setStatus("Clipboard error: "+err.Error(), true)
		} else {
			m.setStatus("Copied: "+line, false)
		}
		return *m, nil
	}
	return *m, nil
}

// startMonitoring resets the session window and launches the loop. The scale
// restarts with the session, so the axis re-fits fresh traffic.
func (m *RootModel) startMonitoring() tea.Cmd {
	m.ring.Reset()
	m.scale.Reset()
	m.sessionID = uuid.New().String()
	m.download = 0
	m.upload = 0
	m.latencyMs = 0

	if m.store != nil {
		if err := m.store.BeginSession(m.sessionID, time.Now()); err != nil {
			utils.Warn("session not persisted: %v", err)
		}
	}
	if !m.mon.Start(context.Background()) {
		m.setStatus("Monitor already running", true)
		return nil
	}
	m.state = MonitoringState
	m.setStatus("Status: Monitoring active", false)
	return nil
}

func (m *RootModel) applyMeasurement(msg messages.MeasurementMsg) {
	if !m.ring.Push(msg.Sample) {
		utils.Warn("dropped malformed sample: %+v", msg.Sample)
		return
	}
	m.scale.Observe(msg.Sample)
	m.download = msg.Sample.DownloadMbps
	m.upload = msg.Sample.UploadMbps
	m.latencyMs = msg.LatencyMs
	m.lastTest = msg.Sample.Timestamp
	m.setStatus("Last test: "+msg.Sample.Timestamp.Format("15:04:05"), false)

	if m.store != nil {
		if err := m.store.AppendSample(m.sessionID, msg.Sample); err != nil {
			utils.Warn("sample not persisted: %v", err)
		}
	}
}

// exportHistory writes the retained window off the event loop.
func (m *RootModel) exportHistory() tea.Cmd {
	samples := m.ring.Samples()
	dir := m.cfg.ExportDir
	return func() tea.Msg {
		path, err := history.ExportFile(dir, samples)
		if err != nil {
			return messages.ExportErrorMsg{Err: err}
		}
		return messages.ExportDoneMsg{Path: path, Rows: len(samples)}
	}
}

func (m *RootModel) readoutLine() string {
	return fmt.Sprintf("download %s Mbps, upload %s Mbps, latency %s",
		utils.FormatMbps(m.download), utils.FormatMbps(m.upload), utils.FormatLatency(m.latencyMs))
}

func (m *RootModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// notify fires a desktop notification when enabled in config.
func (m *RootModel) notify(title, body string) tea.Cmd {
	if !m.cfg.Notifications.Enabled {
		return nil
	}
	return func() tea.Msg {
		if err := beeep.Notify("netpulse: "+title, body, ""); err != nil {
			utils.Debug("notification failed: %v", err)
		}
		return nil
	}
}
