package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"sdr-radar.klederson.com/internal/scan"
)

// CloseLabel is the one clickable control on screen.
const CloseLabel = "[ Close ]"

// StatusInfo is what the status bar reports about the running scan.
type StatusInfo struct {
	Status     scan.Status
	SampleRate float64 // Hz
	CenterFreq float64 // Hz
	BlockSize  int
	SweepDeg   float64
	MaxRange   float64
}

// RenderStatusBar renders the bottom status bar with the Close button
// right-aligned.
func RenderStatusBar(width int, info StatusInfo) string {
	status := "[" + StatusBadge(info.Status) + "]"

	text := fmt.Sprintf(" Rate: %.3fMS/s  Freq: %.1fMHz  Block: %d  Sweep: %ddeg  Range: 0-%.0fm",
		info.SampleRate/1e6, info.CenterFreq/1e6, info.BlockSize, int(info.SweepDeg), info.MaxRange)

	button := StyleCloseButton.Render(CloseLabel)

	// the bar pads one cell on each side
	inner := width - 2
	room := inner - lipgloss.Width(status) - lipgloss.Width(button) - 1
	if room < 0 {
		room = 0
	}
	text = ansi.Truncate(text, room, "")
	left := status + StyleStatusBar.Padding(0).Render(text)

	gap := inner - lipgloss.Width(left) - lipgloss.Width(button)
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + button)
}

// CloseButtonBounds returns the [start, end) columns of the Close button in
// a status bar of the given width.
func CloseButtonBounds(width int) (start, end int) {
	end = width - 1
	start = end - len(CloseLabel)
	return start, end
}
