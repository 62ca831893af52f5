package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/netpulse-dev/netpulse/internal/chart"
	"github.com/netpulse-dev/netpulse/internal/config"
	"github.com/netpulse-dev/netpulse/internal/history"
	"github.com/netpulse-dev/netpulse/internal/monitor"
	"github.com/netpulse-dev/netpulse/internal/speedtest"
	"github.com/netpulse-dev/netpulse/internal/store"
	"github.com/netpulse-dev/netpulse/internal/utils"
)

type sessionState int

const (
	// InitializingState: the speed test client is still fetching its server
	// list; start/export keys are disabled.
	InitializingState sessionState = iota
	IdleState
	MonitoringState
)

type keyMap struct {
	Toggle key.Binding
	Export key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/stop")),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy readout")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// RootModel is the top-level Bubble Tea model.
type RootModel struct {
	cfg    *config.Config
	client *speedtest.Client
	mon    *monitor.Monitor
	store  *store.Store // nil when persistence is unavailable

	events   chan tea.Msg
	ring     *history.Ring
	scale    *history.Scale
	renderer *chart.Renderer

	spinner spinner.Model
	keys    keyMap

	state      sessionState
	sessionID  string
	serverName string

	download  float64
	upload    float64
	latencyMs float64
	lastTest  time.Time

	status    string
	statusErr bool

	width  int
	height int
}

// NewRootModel wires the TUI together. st may be nil; the session then runs
// without persistence.
func NewRootModel(cfg *config.Config, client *speedtest.Client, st *store.Store) RootModel {
	events := make(chan tea.Msg, EventChannelBuffer)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return RootModel{
		cfg:      cfg,
		client:   client,
		mon:      monitor.New(client, cfg.Interval(), events),
		store:    st,
		events:   events,
		ring:     history.NewRing(cfg.HistoryPoints),
		scale:    &history.Scale{},
		renderer: chart.NewRenderer(utils.Debug),
		spinner:  sp,
		keys:     defaultKeyMap(),
		state:    InitializingState,
		status:   "Connecting to speedtest.net...",
	}
}

// Init starts the spinner, the client initialization and the event relay.
func (m RootModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.initClient(),
		listenForActivity(m.events),
	)
}

// listenForActivity relays one message from the monitor channel into the
// event loop; Update re-arms it after each delivery.
func listenForActivity(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// initClient fetches the server list off the event loop.
func (m RootModel) initClient() tea.Cmd {
	client := m.client
	serverID := m.cfg.Speedtest.ServerID
	return func() tea.Msg {
		if err := client.Init(context.Background(), serverID); err != nil {
			return clientErrorMsg{err}
		}
		name, host := client.Server()
		return clientReadyMsg{name: name, host: host}
	}
}

type clientReadyMsg struct {
	name string
	host string
}

type clientErrorMsg struct {
	err error
}
