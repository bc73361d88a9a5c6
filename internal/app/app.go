package app

import (
	"math/rand"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sdr-radar.klederson.com/internal/config"
	"sdr-radar.klederson.com/internal/radar"
	"sdr-radar.klederson.com/internal/scan"
	"sdr-radar.klederson.com/internal/ui"
)

// Options describes the running scan for display purposes.
type Options struct {
	Source     string  // label of the sample source
	SampleRate float64 // Hz
	CenterFreq float64 // Hz
	BlockSize  int
	Trees      int // classifier ensemble size

	// Stop is called once when the user closes the window. It must make
	// the scan goroutine return.
	Stop func()
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	latest   *scan.Latest
	sweep    *radar.Sweep
	history  *SignalHistory
	rng      *rand.Rand
	stopOnce sync.Once
}

// AppModel is the root Bubble Tea model for SDR Radar. It is the only
// place rendering happens; the scan goroutine reaches it solely through
// the Latest cell.
type AppModel struct {
	width  int
	height int

	opts    Options
	shared  *shared
	stopped bool

	// Cached snapshot of the newest scan state
	state    scan.RenderState
	hasState bool
	seq      uint64
	backdrop radar.Backdrop
}

// New creates a new AppModel reading from latest.
func New(latest *scan.Latest, opts Options) AppModel {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return AppModel{
		opts: opts,
		shared: &shared{
			latest:  latest,
			sweep:   radar.NewSweep(),
			history: NewSignalHistory(config.HistoryLen),
			rng:     rng,
		},
		state:    scan.ScanningState(),
		backdrop: radar.NewBackdrop(rng),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "ctrl+c", "esc":
			return m, m.close()
		}
		return m, nil

	case tea.MouseMsg:
		if m.onCloseButton(msg) {
			return m, m.close()
		}
		return m, nil

	case TickMsg:
		m.shared.sweep.Update(time.Time(msg))
		m = m.poll()
		return m, tickCmd()

	case ScanStoppedMsg:
		m.stopped = true
		m = m.poll()
		return m, nil
	}

	return m, nil
}

// poll picks up a newer scan state, if any.
func (m AppModel) poll() AppModel {
	state, seq, ok := m.shared.latest.Load()
	if !ok || seq == m.seq {
		return m
	}
	m.state = state
	m.hasState = true
	m.seq = seq
	if state.Err == nil {
		m.shared.history.Add(state.RSSI)
	}
	// decorative ring is redrawn with every scan update
	m.backdrop = radar.NewBackdrop(m.shared.rng)
	return m
}

func (m AppModel) onCloseButton(msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	if msg.Y != m.height-1 {
		return false
	}
	start, end := ui.CloseButtonBounds(m.width)
	return msg.X >= start && msg.X < end
}

func (m AppModel) close() tea.Cmd {
	m.shared.stopOnce.Do(func() {
		if m.opts.Stop != nil {
			m.opts.Stop()
		}
	})
	return tea.Quit
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing SDR Radar..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 7 {
		bodyH = 7
	}

	radarW := m.width * 3 / 4
	if radarW < 30 {
		radarW = 30
	}
	panelW := m.width - radarW
	if panelW < 20 {
		panelW = 20
		radarW = m.width - panelW
	}

	source := m.opts.Source
	if m.stopped {
		source += " (stopped)"
	}
	status := m.state.Status
	menuBar := ui.RenderMenuBar(m.width, source, status)

	// border + status text + legend
	innerW := radarW - 4
	innerH := bodyH - 5
	if innerW < 5 {
		innerW = 5
	}
	if innerH < 3 {
		innerH = 3
	}
	frame := radar.Frame{State: m.state, Backdrop: m.backdrop}
	radarContent := radar.Render(innerW, innerH, frame, m.shared.sweep)
	statusText := radar.RenderStatusText(innerW, m.state)
	legend := radar.RenderLegend(innerW)
	radarPanel := ui.RenderRadarPanel(radarW, bodyH, radarContent, statusText, legend, m.state.Detected)

	signalPanel := ui.RenderSignalPanel(m.state, m.hasState, panelW, bodyH, m.opts.Trees, m.shared.history.Samples())

	statusBar := ui.RenderStatusBar(m.width, ui.StatusInfo{
		Status:     status,
		SampleRate: m.opts.SampleRate,
		CenterFreq: m.opts.CenterFreq,
		BlockSize:  m.opts.BlockSize,
		SweepDeg:   m.shared.sweep.Degrees(),
		MaxRange:   config.MaxRange,
	})

	return ui.ComposeLayout(menuBar, radarPanel, signalPanel, statusBar)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
