package radar

import (
	"math"

	"sdr-radar.klederson.com/internal/config"
)

// CellDistance computes the distance from a cell to the radar center,
// accounting for terminal aspect ratio.
func CellDistance(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	return math.Sqrt(dx*dx + dy*dy)
}

// CellAngle computes the angle from center to a cell.
// Returns radians in [0, 2π), where 0=north, increasing clockwise.
func CellAngle(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	return NormalizeAngle(math.Atan2(dx, -dy)) // 0=north, clockwise
}

// RingChar returns the appropriate character for a ring at the given angle.
func RingChar(angle float64) rune {
	// 8 sectors for character selection
	sector := int(math.Round(NormalizeAngle(angle)/(math.Pi/4))) % 8

	switch sector {
	case 0, 4: // N, S
		return '-'
	case 1, 5: // NE, SW
		return '/'
	case 2, 6: // E, W
		return '|'
	default: // SE, NW
		return '\\'
	}
}

// NormalizeAngle wraps an angle to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleIndex maps an angle to one of n equal sectors, sector 0 centred on north.
func AngleIndex(angle float64, n int) int {
	return int(math.Round(NormalizeAngle(angle)/(2*math.Pi)*float64(n))) % n
}

// MetersToRadius converts distance in meters to radar units (cells).
func MetersToRadius(meters, maxRange, radarRadius float64) float64 {
	if meters > maxRange {
		return radarRadius
	}
	return (meters / maxRange) * radarRadius
}
