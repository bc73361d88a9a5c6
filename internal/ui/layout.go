package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the radar panel and signal panel horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, radarPanel, signalPanel, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, radarPanel, signalPanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
