// Package messages defines the tea.Msg types crossing from background
// goroutines into the TUI event loop.
package messages

import (
	"time"

	"github.com/netpulse-dev/netpulse/internal/history"
)

// MeasurementMsg carries one completed measurement cycle.
type MeasurementMsg struct {
	Sample    history.Sample
	LatencyMs float64
	Elapsed   time.Duration
}

// MonitorStoppedMsg is sent when the measurement loop exits. Err is nil on a
// requested stop and non-nil when the loop terminated on a failure.
type MonitorStoppedMsg struct {
	Err error
}

// ExportDoneMsg reports a finished history export.
type ExportDoneMsg struct {
	Path string
	Rows int
}

// ExportErrorMsg reports a failed history export.
type ExportErrorMsg struct {
	Err error
}
