// Package ui holds the color themes shared by the command-line output and
// the dashboard: ANSI codes for plain text and lipgloss colors for the TUI.
package ui
