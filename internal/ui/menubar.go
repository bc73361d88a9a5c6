package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"sdr-radar.klederson.com/internal/config"
	"sdr-radar.klederson.com/internal/scan"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, source string, status scan.Status) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	menu := "  " + StyleMenuKey.Render("[Q]") + StyleMenuLabel.Render("uit")

	right := StatusBadge(status) + "  " + StyleMenuLabel.Render("Source: "+source) + " "
	left := StyleMenuKey.Render(title) + menu

	// the bar pads one cell on each side
	inner := width - 2
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	content := ansi.Truncate(left+strings.Repeat(" ", gap)+right, inner, "")

	return StyleMenuBar.Width(width).Render(content)
}

// StatusBadge renders the scan status in its colour.
func StatusBadge(status scan.Status) string {
	label := status.String()
	switch status {
	case scan.StatusDetected:
		return StyleStatusHuman.Render(label)
	case scan.StatusWarning:
		return StyleStatusWarning.Render(label)
	case scan.StatusDeviceError:
		return StyleStatusError.Render(label)
	default:
		return StyleStatusScanning.Render(label)
	}
}
