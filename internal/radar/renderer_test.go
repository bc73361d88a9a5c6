package radar

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdr-radar.klederson.com/internal/scan"
)

func TestRender_Dimensions(t *testing.T) {
	f := Frame{State: scan.ScanningState(), Backdrop: NewBackdrop(rand.New(rand.NewSource(1)))}
	out := Render(41, 15, f, NewSweep())

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 15)
	for i, l := range lines {
		assert.Equal(t, 41, lipgloss.Width(l), "row %d", i)
	}
}

func TestRender_CenterMarker(t *testing.T) {
	const w, h = 41, 15
	cx, cy, _ := Geometry(w, h)

	cell := func(out string) rune {
		row := strings.Split(out, "\n")[cy]
		return []rune(stripANSI(row))[cx]
	}

	scanning := Render(w, h, Frame{State: scan.ScanningState()}, NewSweep())
	assert.Equal(t, MarkCenter, cell(scanning))

	detected := Render(w, h, Frame{State: scan.DetectedState(2.5)}, NewSweep())
	assert.Equal(t, MarkHuman, cell(detected))

	failed := Render(w, h, Frame{State: scan.DeviceErrorState(errors.New("x"))}, NewSweep())
	assert.Equal(t, MarkCenter, cell(failed))
}

func TestRender_TooSmall(t *testing.T) {
	assert.Empty(t, Render(5, 3, Frame{}, NewSweep()))
}

func TestRenderStatusText(t *testing.T) {
	out := stripANSI(RenderStatusText(40, scan.DetectedState(1.234)))
	assert.Contains(t, out, "Closest Human: 1.23m")

	out = stripANSI(RenderStatusText(40, scan.RenderState{}))
	assert.Contains(t, out, "Waiting")

	assert.LessOrEqual(t, lipgloss.Width(RenderStatusText(8, scan.ScanningState())), 8)
}

func TestRenderStatusText_TruncatesMultiByte(t *testing.T) {
	state := scan.WarningState(errors.New("überlauf µs"))
	out := RenderStatusText(16, state)
	assert.True(t, utf8.ValidString(out))
	assert.LessOrEqual(t, lipgloss.Width(out), 16)
	assert.Contains(t, stripANSI(out), "Scan Error: übe")
}

func TestRenderLegend(t *testing.T) {
	assert.Contains(t, stripANSI(RenderLegend(80)), "decorative")
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var sb strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
