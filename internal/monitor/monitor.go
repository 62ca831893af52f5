// Package monitor runs the periodic measurement loop feeding the TUI.
package monitor

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/netpulse-dev/netpulse/internal/history"
	"github.com/netpulse-dev/netpulse/internal/messages"
	"github.com/netpulse-dev/netpulse/internal/speedtest"
	"github.com/netpulse-dev/netpulse/internal/utils"
)

// Monitor owns one background measurement goroutine per session. Results and
// termination are reported as tea.Msg values on the shared event channel.
//
// There is no retry: the first failed measurement ends the session with the
// error attached.
type Monitor struct {
	tester   speedtest.Tester
	interval time.Duration
	events   chan<- tea.Msg

	running atomic.Bool
	cancel  context.CancelFunc
}

// New creates a monitor. events must be buffered; the loop blocks on it only
// when the UI has fallen far behind.
func New(tester speedtest.Tester, interval time.Duration, events chan<- tea.Msg) *Monitor {
	return &Monitor{
		tester:   tester,
		interval: interval,
		events:   events,
	}
}

// Running reports whether a session is active.
func (m *Monitor) Running() bool { return m.running.Load() }

// Start launches a monitoring session. It reports false when one is already
// running.
func (m *Monitor) Start(ctx context.Context) bool {
	if !m.running.CompareAndSwap(false, true) {
		return false
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	go m.loop(ctx)
	return true
}

// Stop requests the current session to end. The loop acknowledges with a
// MonitorStoppedMsg; Stop does not wait for it.
func (m *Monitor) Stop() {
	if m.running.CompareAndSwap(true, false) && m.cancel != nil {
		m.cancel()
	}
}

func (m *Monitor) loop(ctx context.Context) {
	defer m.running.Store(false)

	for m.running.Load() {
		started := time.Now()
		res, err := m.tester.Measure(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || !m.running.Load() {
				// Requested stop, not a failure.
				m.events <- messages.MonitorStoppedMsg{}
				return
			}
			utils.Error("measurement failed: %v", err)
			m.running.Store(false)
			m.events <- messages.MonitorStoppedMsg{Err: err}
			return
		}

		m.events <- messages.MeasurementMsg{
			Sample: history.Sample{
				Timestamp:    res.Timestamp,
				DownloadMbps: res.DownloadMbps,
				UploadMbps:   res.UploadMbps,
			},
			LatencyMs: res.LatencyMs,
			Elapsed:   time.Since(started),
		}

		select {
		case <-ctx.Done():
			m.events <- messages.MonitorStoppedMsg{}
			return
		case <-time.After(m.interval):
		}
	}
	m.events <- messages.MonitorStoppedMsg{}
}
