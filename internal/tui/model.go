package tui

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/einteger/internal/calc"
	"github.com/agbru/einteger/internal/config"
	apperrors "github.com/agbru/einteger/internal/errors"
	"github.com/agbru/einteger/internal/orchestration"
	"github.com/agbru/einteger/internal/sysmon"
)

// ExecutionState holds the sweep-related fields of a dashboard session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	sweep      SweepConfig
	sizes      []int
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and derives panel sizes.
type LayoutManager struct {
	width  int
	height int
}

// Layout constants for the dashboard.
const (
	headerHeight           = 1
	footerHeight           = 1
	minBodyHeight          = 8
	TablePanelWidthPercent = 58
	MetricsPanelHeight     = 7
)

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) tableWidth() int {
	return l.width * TablePanelWidthPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.tableWidth()
}

func (l LayoutManager) metricsHeight() int {
	return min(MetricsPanelHeight, l.bodyHeight()/2)
}

func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Model is the root bubbletea model of the benchmark dashboard.
type Model struct {
	header  HeaderModel
	table   TableModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap
	algos  []string

	ExecutionState
	LayoutManager

	parentCtx context.Context
	ref       *programRef
	gate      *pauseGate
	paused    bool
	selected  int
	lastErr   error
}

// NewModel creates a dashboard sweeping sc.
func NewModel(parentCtx context.Context, sc SweepConfig, version string) Model {
	algos := orchestration.VariantNames(sc.Op, calc.DefaultRegistry())
	ctx, cancel := context.WithCancel(parentCtx)
	keys := DefaultKeyMap()

	return Model{
		header:  NewHeaderModel(version, sc.Op),
		table:   NewTableModel(algos),
		metrics: NewMetricsModel(),
		chart:   NewChartModel(algos),
		footer:  NewFooterModel(keys),
		keymap:  keys,
		algos:   algos,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			sweep:    sc,
			sizes:    sc.Sizes(),
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		ref:       &programRef{},
		gate:      &pauseGate{},
	}
}

// Init starts the sweep and the samplers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startSweepCmd(m.ref, m.gate, m.ctx, m.sweep, m.generation),
		watchContextCmd(m.ctx, m.generation),
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

	case SizeStartedMsg:
		if msg.Generation == m.generation {
			m.table.SetCurrent(msg.Words)
			m.header.SetWords(msg.Words)
		}
		return m, nil

	case ProgressMsg:
		m.updateProgress(msg.AverageProgress, msg.ETA)
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case SizeResultsMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		row := m.table.AddResults(msg.Words, msg.Results)
		m.chart.AddRow(row)
		if row.Winner >= 0 {
			m.metrics.UpdateWinner(m.algos[row.Winner], row.Words, row.Durations[row.Winner])
		}
		m.updateProgress(0, 0)
		return m, nil

	case ErrorMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.table.MarkFailed(msg.Words)
		m.lastErr = msg.Err
		m.footer.SetError(true)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.footer.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		m.metrics.UpdateRSS(msg.ProcessRSS)
		return m, nil

	case SweepCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a restarted sweep
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.chart.SetDone(m.header.Elapsed())
		m.footer.SetDone(true)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		if errors.Is(msg.Err, context.Canceled) && m.parentCtx.Err() == nil {
			// Canceled by a restart or quit key, not by a signal.
			return m, nil
		}
		m.exitCode = apperrors.ExitCodeFor(msg.Err)
		return m, tea.Quit
	}

	return m, nil
}

// updateProgress refreshes the overall progress from the number of
// completed sizes plus the fraction of the current one.
func (m *Model) updateProgress(within float64, eta time.Duration) {
	if len(m.sizes) == 0 {
		return
	}
	overall := (float64(m.table.Rows()) + within) / float64(len(m.sizes))
	m.chart.SetProgress(overall, eta)
	m.metrics.UpdateProgress(overall)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.gate.Resume()
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		if m.paused {
			m.gate.Pause()
		} else {
			m.gate.Resume()
		}
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		return m.restart()

	case key.Matches(msg, m.keymap.Up):
		m.selectAlgorithm(m.selected - 1)
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		m.selectAlgorithm(m.selected + 1)
		return m, nil

	case key.Matches(msg, m.keymap.PageUp):
		m.table.Scroll(-m.table.visibleRows())
		return m, nil

	case key.Matches(msg, m.keymap.PageDown):
		m.table.Scroll(m.table.visibleRows())
		return m, nil
	}

	return m, nil
}

// restart cancels the running sweep and starts a new generation.
func (m Model) restart() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	m.gate.Resume()

	m.generation++
	m.ctx, m.cancel = context.WithCancel(m.parentCtx)

	m.header.Reset()
	m.table.Reset()
	m.chart.Reset()
	m.metrics = NewMetricsModel()
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.footer.Reset()
	m.done = false
	m.paused = false
	m.lastErr = nil
	m.exitCode = apperrors.ExitSuccess

	return m, tea.Batch(
		tickCmd(),
		startSweepCmd(m.ref, m.gate, m.ctx, m.sweep, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

func (m *Model) selectAlgorithm(i int) {
	if len(m.algos) == 0 {
		return
	}
	m.selected = min(max(i, 0), len(m.algos)-1)
	m.table.Select(m.selected)
	m.chart.Select(m.selected)
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	right := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.table.View(), right)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.table.SetSize(m.tableWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run starts the dashboard and returns the exit code of the sweep.
func Run(ctx context.Context, cfg config.AppConfig, version string) int {
	// Rebuild styles now that InitTheme has honored --no-color.
	initTUIStyles()

	model := NewModel(ctx, SweepConfigFor(cfg), version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program before running so the sweep goroutine can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	if ctx.Err() != nil {
		return apperrors.ExitCodeFor(ctx.Err())
	}
	return apperrors.ExitSuccess
}

// tickCmd sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapInuse:    ms.HeapInuse,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory usage.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent, ProcessRSS: s.ProcessRSS}
	}
}

// watchContextCmd waits for cancellation of one generation.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
