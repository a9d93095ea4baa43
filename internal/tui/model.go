package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/collatz/internal/bignum"
	"github.com/agbru/collatz/internal/collatz"
	"github.com/agbru/collatz/internal/metrics"
	"github.com/agbru/collatz/internal/orchestration"
	"github.com/agbru/collatz/internal/sysmon"
)

// ErrQuit is returned by Run when the user leaves the dashboard before the
// runs have finished.
var ErrQuit = errors.New("dashboard closed before the run finished")

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	ctx      context.Context
	cancel   context.CancelFunc
	runners  []orchestration.Runner
	n        *bignum.Nat
	done     bool
	stats    collatz.Stats
	duration time.Duration
	err      error
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

// logsWidth returns the width allocated to the logs panel.
func (l LayoutManager) logsWidth() int {
	return l.width * LogsPanelWidthPercent / 100
}

// rightWidth returns the width allocated to the right column (metrics + chart).
func (l LayoutManager) rightWidth() int {
	return l.width - l.logsWidth()
}

// metricsHeight returns the height allocated to the metrics panel.
func (l LayoutManager) metricsHeight() int {
	return min(MetricsPanelHeight, l.bodyHeight()/2)
}

// chartHeight returns the height allocated to the chart panel.
func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header  HeaderModel
	logs    LogsModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	ref     *programRef
	memory  *metrics.MemoryCollector
	sampler *sysmon.Sampler
	paused  bool
}

// NewModel creates a new TUI model that runs runners on n.
func NewModel(parentCtx context.Context, runners []orchestration.Runner, n *bignum.Nat, info RunInfo, version string) Model {
	names := make([]string, len(runners))
	for i, r := range runners {
		names[i] = r.Name()
	}

	ctx, cancel := context.WithCancel(parentCtx)

	logs := NewLogsModel(names)
	logs.AddRunInfo(info)

	return Model{
		header:  NewHeaderModel(version, info.InputBits),
		logs:    logs,
		metrics: NewMetricsModel(len(runners)),
		chart:   NewChartModel(),
		footer:  NewFooterModel(),
		keymap:  DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:     ctx,
			cancel:  cancel,
			runners: runners,
			n:       n,
		},
		ref:     &programRef{},
		memory:  metrics.NewMemoryCollector(),
		sampler: sysmon.NewSampler(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startRunCmd(m.ctx, m.ref, m.runners, m.n),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		m.metrics.UpdateProgress(msg)
		if !m.paused {
			m.logs.AddProgressEntry(msg)
			m.chart.AddDataPoint(msg)
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		m.logs.AddResults(msg.Results)
		return m, nil

	case FinalResultMsg:
		m.logs.AddFinalResult(msg)
		return m, nil

	case ErrorMsg:
		m.logs.AddError(msg)
		m.footer.SetError(true)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(m.memory), sampleSysStatsCmd(m.sampler), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		m.metrics.UpdateRSS(msg.RSS)
		return m, nil

	case RunCompleteMsg:
		m.done = true
		m.stats = msg.Stats
		m.duration = msg.Duration
		m.err = msg.Err
		if msg.Err != nil {
			m.logs.AddError(ErrorMsg{Err: msg.Err})
			m.footer.SetError(true)
		}
		m.header.SetDone()
		m.chart.SetDone(m.header.Elapsed())
		m.footer.SetDone(true)
		return m, nil

	case ContextCancelledMsg:
		if !m.done {
			m.err = msg.Err
		}
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.err = ErrQuit
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.logs.Update(msg)
		return m, nil
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	logs := m.logs.renderToHeight(lipgloss.Height(rightCol))
	body := lipgloss.JoinHorizontal(lipgloss.Top, logs, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

// Layout constants for the TUI dashboard.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 4
	LogsPanelWidthPercent = 60
	MetricsPanelHeight    = 7
)

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.logs.SetSize(m.logsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run shows the dashboard while runners process n, and returns the
// reported counters and the primary run's duration once the user leaves it.
func Run(ctx context.Context, runners []orchestration.Runner, n *bignum.Nat, info RunInfo, version string) (collatz.Stats, time.Duration, error) {
	initTUIStyles()

	model := NewModel(ctx, runners, n, info, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return collatz.Stats{}, 0, err
	}
	fm, ok := finalModel.(Model)
	if !ok {
		return collatz.Stats{}, 0, ErrQuit
	}
	return fm.stats, fm.duration, fm.err
}

// startRunCmd returns a tea.Cmd that launches the runs.
func startRunCmd(ctx context.Context, ref *programRef, runners []orchestration.Runner, n *bignum.Nat) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		results := orchestration.ExecuteRuns(ctx, runners, n, reporter, io.Discard)
		st, err := orchestration.AnalyzeResults(results, presenter, io.Discard)
		var d time.Duration
		if len(results) > 0 {
			d = results[0].Duration
		}
		return RunCompleteMsg{Stats: st, Duration: d, Err: err}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		s := mc.Snapshot()
		return MemStatsMsg{
			Alloc:        s.HeapAlloc,
			HeapSys:      s.HeapSys,
			NumGC:        s.NumGC,
			PauseTotalNs: s.PauseTotalNs,
			NumGoroutine: s.Goroutines,
		}
	}
}

// sampleSysStatsCmd reads system and process stats and returns a SysStatsMsg.
func sampleSysStatsCmd(s *sysmon.Sampler) tea.Cmd {
	return func() tea.Msg {
		st := s.Sample()
		return SysStatsMsg{
			CPUPercent: st.CPUPercent,
			MemPercent: st.MemPercent,
			RSS:        st.RSS,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
