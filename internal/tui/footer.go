package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the key hints and the run status.
type FooterModel struct {
	paused bool
	done   bool
	failed bool
	width  int
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone marks the runs as finished.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError marks the runs as failed.
func (f *FooterModel) SetError(e bool) { f.failed = e }

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

func (f FooterModel) status() string {
	switch {
	case f.failed:
		return statusErrorStyle.Render("Error")
	case f.done:
		return statusDoneStyle.Render("Done")
	case f.paused:
		return statusPausedStyle.Render("Paused")
	}
	return statusRunningStyle.Render("Running")
}

// View renders the footer.
func (f FooterModel) View() string {
	hints := []string{
		footerKeyStyle.Render("q") + footerDescStyle.Render(" quit"),
		footerKeyStyle.Render("space") + footerDescStyle.Render(" pause"),
		footerKeyStyle.Render("↑↓") + footerDescStyle.Render(" scroll"),
	}
	left := " " + strings.Join(hints, "  ")
	right := f.status() + " "
	gap := max(f.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
