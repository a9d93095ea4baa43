package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/collatz/internal/format"
	"github.com/agbru/collatz/internal/orchestration"
)

// maxLogEntries bounds the log; the oldest entries are dropped first.
const maxLogEntries = 1000

// RunInfo describes the configuration shown at the top of the log.
type RunInfo struct {
	Input         string
	InputBits     int
	Window        int
	Kernel        string
	Extend        bool
	TableDuration time.Duration
}

// LogsModel is the scrollable event log on the left of the dashboard.
type LogsModel struct {
	names      []string
	entries    []string
	viewport   viewport.Model
	autoScroll bool
	width      int
	height     int
}

// NewLogsModel creates a log for the named runs.
func NewLogsModel(names []string) LogsModel {
	return LogsModel{
		names:      names,
		viewport:   viewport.New(0, 0),
		autoScroll: true,
	}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.refresh()
}

// Update forwards scroll keys to the viewport. Scrolling back to the
// bottom resumes following new entries.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	l.viewport, _ = l.viewport.Update(msg)
	l.autoScroll = l.viewport.AtBottom()
}

func (l *LogsModel) add(line string) {
	stamp := logTimeStyle.Render(time.Now().Format(time.TimeOnly))
	l.entries = append(l.entries, stamp+" "+line)
	if over := len(l.entries) - maxLogEntries; over > 0 {
		l.entries = l.entries[over:]
	}
	l.refresh()
}

func (l *LogsModel) refresh() {
	l.viewport.Width = max(l.width-4, 0)
	l.viewport.Height = max(l.height-2, 0)
	l.viewport.SetContent(strings.Join(l.entries, "\n"))
	if l.autoScroll {
		l.viewport.GotoBottom()
	}
}

// AddRunInfo logs the input and engine configuration.
func (l *LogsModel) AddRunInfo(info RunInfo) {
	ext := "on"
	if !info.Extend {
		ext = "off"
	}
	l.add(fmt.Sprintf("input %s (%d bits)", info.Input, info.InputBits))
	l.add(fmt.Sprintf("kernel %s, table width %d, extension %s", info.Kernel, info.Window, ext))
	l.add("table built in " + format.FormatSeconds(info.TableDuration))
	l.add("runs: " + strings.Join(l.names, ", "))
}

// AddProgressEntry logs a progress notification.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	name := logRunStyle.Render("[" + msg.Name + "]")
	if msg.Progress.Done {
		l.add(fmt.Sprintf("%s %s", name,
			logSuccessStyle.Render(fmt.Sprintf("finished after %d iterations", msg.Progress.Iterations))))
		return
	}
	l.add(fmt.Sprintf("%s %s  %s", name,
		logProgressStyle.Render("bytes: "+fmt.Sprint(msg.Progress.Bytes)),
		format.FormatRate(msg.Rate, "it")))
}

// AddResults logs one line per run of a verification.
func (l *LogsModel) AddResults(results []orchestration.RunResult) {
	for _, r := range results {
		name := logRunStyle.Render("[" + r.Name + "]")
		if r.Err != nil {
			l.add(fmt.Sprintf("%s %s", name, logErrorStyle.Render("failure: "+r.Err.Error())))
			continue
		}
		l.add(fmt.Sprintf("%s %s in %s", name, r.Stats, format.FormatExecutionDuration(r.Duration)))
	}
}

// AddFinalResult logs the reported result.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	l.add(resultStyle.Render(msg.Result.Stats.String()))
}

// AddError logs a failure.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add(logErrorStyle.Render("!!! " + msg.Err.Error()))
}

// Len returns the number of entries.
func (l LogsModel) Len() int { return len(l.entries) }

// renderToHeight renders the panel with the given outer height, so that it
// lines up with the right column.
func (l LogsModel) renderToHeight(h int) string {
	vp := l.viewport
	vp.Height = max(h-2, 0)
	if l.autoScroll {
		vp.GotoBottom()
	}
	return panelStyle.
		Width(max(l.width-2, 0)).
		Height(max(h-2, 0)).
		Render(" " + strings.ReplaceAll(vp.View(), "\n", "\n "))
}

// View renders the panel at its own height.
func (l LogsModel) View() string {
	return l.renderToHeight(l.height)
}
