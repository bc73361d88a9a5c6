package ui

// RenderRadarPanel wraps radar content, status text and legend with a styled
// border that turns red while a human is detected.
// The actual radar rendering is done externally to avoid import cycles.
func RenderRadarPanel(width, height int, radarContent, statusText, legend string, detected bool) string {
	content := radarContent + "\n" + statusText + "\n" + legend
	style := StylePanelBorder
	if detected {
		style = StylePanelAlert
	}
	return style.Width(width - 2).Height(height - 2).Render(content)
}
