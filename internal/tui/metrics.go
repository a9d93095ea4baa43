package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/collatz/internal/format"
)

// MetricsModel displays the step counters of the primary run and runtime
// memory statistics.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	rss          uint64

	mul3       uint64
	div2       uint64
	iterations uint64
	rate       float64 // iterations per second, smoothed
	runs       int
	finished   int

	width  int
	height int
}

// NewMetricsModel creates a new metrics panel tracking runs runs.
func NewMetricsModel(runs int) MetricsModel {
	return MetricsModel{runs: runs}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateRSS records the resident size of the process.
func (m *MetricsModel) UpdateRSS(rss uint64) {
	m.rss = rss
}

// UpdateProgress records a notification. Counters and rate follow the
// primary run; the others only count towards completion.
func (m *MetricsModel) UpdateProgress(msg ProgressMsg) {
	if msg.Progress.Done {
		m.finished++
	}
	if msg.Index != 0 {
		return
	}
	m.mul3 = msg.Progress.Mul3
	m.div2 = msg.Progress.Div2
	m.iterations = msg.Progress.Iterations
	m.rate = msg.Rate
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	heapStr := metricValueStyle.Render(format.FormatBytes(m.alloc) + " / " + format.FormatBytes(m.heapSys))
	gcPauseStr := metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6))
	pipe := metricLabelStyle.Render(" | ")
	fmt.Fprintf(&rows, "  %s %s%s%s %s",
		metricLabelStyle.Render("Heap:"), heapStr,
		pipe,
		metricLabelStyle.Render("GC:"), gcPauseStr)

	colWidth := (m.width - 6) / 2

	leftCol := []string{
		formatMetricCol("Rate:", format.FormatRate(m.rate, "it"), colWidth),
		formatMetricCol("Mul3:", fmt.Sprintf("%d", m.mul3), colWidth),
		formatMetricCol("Iterations:", fmt.Sprintf("%d", m.iterations), colWidth),
	}
	rightCol := []string{
		formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth),
		formatMetricCol("Div2:", fmt.Sprintf("%d", m.div2), colWidth),
		formatMetricCol("Runs:", fmt.Sprintf("%d/%d", m.finished, m.runs), colWidth),
	}
	if m.rss > 0 {
		leftCol = append(leftCol, formatMetricCol("RSS:", format.FormatBytes(m.rss), colWidth))
		rightCol = append(rightCol, "")
	}

	for i := range leftCol {
		rows.WriteString("\n")
		rows.WriteString(leftCol[i])
		rows.WriteString(rightCol[i])
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
