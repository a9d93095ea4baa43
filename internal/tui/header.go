package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/collatz/internal/format"
)

// HeaderModel renders the top bar: title, version, input size, elapsed
// time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	inputBits int
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string, inputBits int) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		inputBits: inputBits,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	if h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since the header was created, frozen by SetDone.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Collatz Monitor"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)

	pipe := versionStyle.Render(" | ")
	input := versionStyle.Render(fmt.Sprintf("%d-bit input", h.inputBits))
	elapsed := elapsedStyle.Render("Elapsed: " + format.FormatExecutionDuration(h.Elapsed()))

	row := title + pipe + input + pipe + elapsed
	gap := max(h.width-2-lipgloss.Width(row), 0)

	return headerStyle.Width(h.width).Render(row + strings.Repeat(" ", gap))
}
