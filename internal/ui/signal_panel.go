package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"sdr-radar.klederson.com/internal/scan"
)

// fullScaleRSSI is the mean magnitude that fills the signal bar. Decoded
// samples lie in the unit square, so |x| never exceeds sqrt(2).
const fullScaleRSSI = math.Sqrt2

// RenderSignalPanel renders the per-iteration diagnostics: features, signal
// strength proxy, distance and the recent RSSI sparkline.
func RenderSignalPanel(state scan.RenderState, ok bool, width, height int, trees int, rssiHistory []float64) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}
	innerH := height - 2
	if innerH < 1 {
		innerH = 1
	}

	lines := []string{
		StylePanelTitle.Render("SIGNAL"),
		StyleSeparator.Render(strings.Repeat("-", innerW)),
	}

	if !ok {
		lines = append(lines, "", StyleHelp.Render(" Waiting for"), StyleHelp.Render(" first block..."))
	} else {
		dist := "-"
		if state.Detected {
			dist = fmt.Sprintf("%.2fm", state.Distance)
		}
		fields := []struct{ label, value string }{
			{"Iter", fmt.Sprintf("#%d", state.Iteration)},
			{"State", state.Status.String()},
			{"Peak f", formatHz(state.Features.PeakFreq())},
			{"Peak |X|", fmt.Sprintf("%.0f", state.Features.PeakMag())},
			{"Std |X|", fmt.Sprintf("%.1f", state.Features.StdDev())},
			{"RSSI", fmt.Sprintf("%.3f", state.RSSI)},
			{"Distance", dist},
			{"Trees", fmt.Sprintf("%d", trees)},
		}
		for _, f := range fields {
			lines = append(lines, truncRaw(StyleLabel.Render(fmt.Sprintf(" %-9s", f.label))+StyleValue.Render(f.value), innerW))
		}

		lines = append(lines, "")
		barWidth := innerW - 3
		lines = append(lines, " "+renderSignalBar(state.RSSI/fullScaleRSSI, barWidth, state.Color))

		if len(rssiHistory) > 0 {
			lines = append(lines, "", StyleLabel.Render(" RSSI History:"))
			spark := renderSparkline(rssiHistory, innerW-2)
			lines = append(lines, " "+lipgloss.NewStyle().Foreground(ColorGreen).Render(spark))
		}

		if state.Err != nil {
			lines = append(lines, "", StyleStatusError.Render(" Last error:"))
			for _, l := range wrap(state.Err.Error(), innerW-1) {
				lines = append(lines, " "+StyleStatusWarning.Render(l))
			}
		}
	}

	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for len(lines) < innerH {
		lines = append(lines, "")
	}

	return StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))
}

func formatHz(hz float64) string {
	switch a := math.Abs(hz); {
	case a >= 1e6:
		return fmt.Sprintf("%+.3fMHz", hz/1e6)
	case a >= 1e3:
		return fmt.Sprintf("%+.1fkHz", hz/1e3)
	default:
		return fmt.Sprintf("%+.0fHz", hz)
	}
}

func renderSignalBar(ratio float64, width int, color scan.Color) string {
	if width < 1 {
		width = 1
	}
	if ratio < 0 || math.IsNaN(ratio) {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(math.Round(ratio * float64(width)))

	if color == "" {
		color = scan.ColorScanning
	}
	filledPart := lipgloss.NewStyle().Foreground(lipgloss.Color(string(color))).Render(strings.Repeat("|", filled))
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(strings.Repeat("-", width-filled))
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	// Take last `width` values
	if len(values) > width {
		values = values[len(values)-width:]
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	rng := maxV - minV
	if rng == 0 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}

// truncRaw cuts a styled string to w visible cells.
func truncRaw(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(w).Render(s)
}

// wrap hard-wraps s into lines of at most w cells.
func wrap(s string, w int) []string {
	if w < 1 {
		w = 1
	}
	return strings.Split(ansi.Hardwrap(s, w, true), "\n")
}
