package radar

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"sdr-radar.klederson.com/internal/config"
	"sdr-radar.klederson.com/internal/scan"
)

var (
	colorBright = lipgloss.Color("#00FF41")
	colorMid    = lipgloss.Color("#008F11")
	colorDim    = lipgloss.Color("#004A0A")
	colorHuman  = lipgloss.Color(string(scan.ColorDetected))

	styleCenter   = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleHuman    = lipgloss.NewStyle().Foreground(colorHuman).Bold(true).Blink(true)
	styleRing     = lipgloss.NewStyle().Foreground(colorMid)
	styleDot      = lipgloss.NewStyle().Foreground(colorDim)
	styleLegend   = lipgloss.NewStyle().Foreground(colorMid)
	styleLegHuman = lipgloss.NewStyle().Foreground(colorHuman)
)

// Center markers.
const (
	MarkCenter = '+'
	MarkHuman  = '@'
)

// Frame is what one radar draw needs: the latest scan state and the
// decorative ring to draw behind it.
type Frame struct {
	State    scan.RenderState
	Backdrop Backdrop
}

// Geometry returns the center cell and radius for a width x height canvas.
func Geometry(width, height int) (centerX, centerY int, radius float64) {
	centerX = width / 2
	centerY = height / 2
	radius = float64(min(centerX-1, int(float64(centerY-1)/config.AspectRatio)))
	if radius < 3 {
		radius = 3
	}
	return
}

// Render produces the complete radar display as a styled string.
func Render(width, height int, f Frame, sweep *Sweep) string {
	if width < 10 || height < 5 {
		return ""
	}

	centerX, centerY, radius := Geometry(width, height)

	ringRadii := make([]float64, config.RingCount)
	for i := range ringRadii {
		meters := config.MaxRange * float64(i+1) / float64(config.RingCount)
		ringRadii[i] = MetersToRadius(meters, config.MaxRange, radius)
	}

	color := f.State.Color
	if color == "" {
		color = scan.ColorScanning
	}
	ringStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(string(color)))

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			sb.WriteString(renderCell(col, row, centerX, centerY, radius, ringRadii, f, ringStyle, sweep))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func renderCell(col, row, centerX, centerY int, radius float64, ringRadii []float64, f Frame, ringStyle lipgloss.Style, sweep *Sweep) string {
	dist := CellDistance(col, row, centerX, centerY)
	angle := CellAngle(col, row, centerX, centerY)

	if dist > radius+0.5 {
		return " "
	}

	if col == centerX && row == centerY {
		if f.State.Detected {
			return styleHuman.Render(string(MarkHuman))
		}
		return styleCenter.Render(string(MarkCenter))
	}

	if col == centerX {
		return renderSweepChar('|', sweep, angle)
	}
	if row == centerY {
		return renderSweepChar('-', sweep, angle)
	}

	for _, ringR := range ringRadii {
		if math.Abs(dist-ringR) < 0.8 {
			return renderSweepChar(RingChar(angle), sweep, angle)
		}
	}

	if len(f.Backdrop) > 0 {
		edge := f.Backdrop.At(angle) * radius
		if math.Abs(dist-edge) < 0.6 {
			return ringStyle.Render("*")
		}
		if dist < edge {
			return ringStyle.Faint(true).Render(":")
		}
	}

	return renderInteriorCell(sweep, angle)
}

func renderSweepChar(ch rune, sweep *Sweep, angle float64) string {
	color := sweepColor(sweep.Intensity(angle))
	if color == "" {
		return styleRing.Render(string(ch))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(ch))
}

func renderInteriorCell(sweep *Sweep, angle float64) string {
	color := sweepColor(sweep.Intensity(angle))
	if color == "" {
		return styleDot.Render(".")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(".")
}

func sweepColor(intensity float64) string {
	if intensity <= 0 {
		return ""
	}
	if intensity > 0.8 {
		return "#00FF41"
	}
	if intensity > 0.5 {
		return "#00CC33"
	}
	if intensity > 0.3 {
		return "#00AA22"
	}
	return "#005511"
}

// RenderStatusText centres the state's status text in its own colour.
func RenderStatusText(width int, state scan.RenderState) string {
	text := state.Text
	if text == "" {
		text = "Waiting for first block..."
	}
	text = ansi.Truncate(text, width, "")
	color := state.Color
	if color == "" {
		color = scan.ColorScanning
	}
	styled := lipgloss.NewStyle().Foreground(lipgloss.Color(string(color))).Bold(true).Render(text)
	return center(styled, width)
}

// RenderLegend produces the radar legend line.
func RenderLegend(width int) string {
	legend := styleLegend.Render("rings 5m/10m  * noise ring (decorative)  ") +
		styleLegHuman.Render(string(MarkHuman)+" human")
	return center(legend, width)
}

func center(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
