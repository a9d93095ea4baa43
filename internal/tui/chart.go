package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/collatz/internal/format"
)

const (
	// sparklineWidth is the room taken by a sparkline's label, value and
	// panel borders.
	sparklineWidth = 17
	// rateLabelWidth is the extra room taken by the rate row's value.
	rateLabelWidth = 4
	// minSparklineHeight is the chart height below which the rate, CPU and
	// MEM rows are hidden.
	minSparklineHeight = 10
	sparklineRows      = 3
	bufferHistorySize  = 512
)

// ChartModel plots the working buffer size of the first run over time, with
// its iteration rate and the CPU and memory load as sparklines underneath.
type ChartModel struct {
	history      *RunHistory
	cpu          *Series
	mem          *Series
	currentBytes int
	peakBytes    int
	iterations   uint64
	elapsed      time.Duration
	done         bool
	width        int
	height       int
}

// NewChartModel creates a new chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		history: NewRunHistory(bufferHistorySize),
		cpu:     NewSeries(60),
		mem:     NewSeries(60),
	}
}

// SetSize updates dimensions and resizes the sparkline series to the
// available width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	if sw := w - sparklineWidth; sw > 0 {
		c.cpu.SetSize(sw)
		c.mem.SetSize(sw)
		c.history.SetRateSize(max(sw-rateLabelWidth, 1))
	}
}

// AddDataPoint records a progress notification. Only the first run feeds
// the plotted history; the peak covers every run.
func (c *ChartModel) AddDataPoint(msg ProgressMsg) {
	if msg.Index == 0 {
		c.history.Record(msg.Progress, msg.Elapsed)
	}
	c.currentBytes = msg.Progress.Bytes
	c.peakBytes = max(c.peakBytes, msg.MaxBytes)
	c.iterations = max(c.iterations, msg.Progress.Iterations)
	c.elapsed = msg.Elapsed
}

// UpdateSysStats records a CPU and memory sample.
func (c *ChartModel) UpdateSysStats(cpuPct, memPct float64) {
	c.cpu.Add(cpuPct)
	c.mem.Add(memPct)
}

// SetDone freezes the chart with the final elapsed time.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.elapsed = elapsed
}

// Reset clears all samples.
func (c *ChartModel) Reset() {
	c.history.Reset()
	c.cpu.Clear()
	c.mem.Clear()
	c.currentBytes = 0
	c.peakBytes = 0
	c.iterations = 0
	c.elapsed = 0
	c.done = false
}

// View renders the chart panel.
func (c ChartModel) View() string {
	innerWidth := max(c.width-4, 1)
	var b strings.Builder

	b.WriteString(titleStyle.Render(" Buffer Size"))
	b.WriteString("\n")

	chartRows := c.height - 5
	if c.height >= minSparklineHeight {
		chartRows -= sparklineRows
	}
	if chartRows > 0 && c.history.Len() > 0 {
		for _, line := range BrailleChart(c.history.Bytes(), innerWidth, chartRows) {
			b.WriteString(" ")
			b.WriteString(chartLineStyle.Render(line))
			b.WriteString("\n")
		}
	}

	status := "Elapsed: " + format.FormatExecutionDuration(c.elapsed)
	if c.done {
		status = "Done in " + format.FormatExecutionDuration(c.elapsed)
	}
	fmt.Fprintf(&b, " %s %s  %s %s  %s",
		metricLabelStyle.Render("Now:"), metricValueStyle.Render(format.FormatBytes(uint64(c.currentBytes))),
		metricLabelStyle.Render("Peak:"), metricValueStyle.Render(format.FormatBytes(uint64(c.peakBytes))),
		chartEmptyStyle.Render(status))

	if c.height >= minSparklineHeight {
		fmt.Fprintf(&b, "\n %s %s %s", metricLabelStyle.Render("IT/S"),
			chartLineStyle.Render(Sparkline(c.history.Rates(), 0, c.history.PeakRate())),
			metricValueStyle.Render(format.FormatRate(c.history.Rate(), "it")))
		fmt.Fprintf(&b, "\n %s %s %5.1f%%", metricLabelStyle.Render("CPU"),
			cpuSparklineStyle.Render(Sparkline(c.cpu.Values(), 0, 100)), c.cpu.Latest())
		fmt.Fprintf(&b, "\n %s %s %5.1f%%", metricLabelStyle.Render("MEM"),
			memSparklineStyle.Render(Sparkline(c.mem.Values(), 0, 100)), c.mem.Latest())
	}

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}
