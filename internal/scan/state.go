package scan

import (
	"fmt"

	"sdr-radar.klederson.com/internal/detect"
)

// Color is a hex RGB string understood by the renderer.
type Color string

const (
	ColorScanning Color = "#00FF41" // green
	ColorDetected Color = "#FF0000" // red
	ColorWarning  Color = "#FFAA00" // amber, recoverable iteration error
	ColorError    Color = "#FF3300" // device lost, loop stopped
)

// Status is the display state derived for one iteration.
type Status int

const (
	StatusScanning Status = iota
	StatusDetected
	StatusWarning
	StatusDeviceError
)

func (s Status) String() string {
	switch s {
	case StatusDetected:
		return "HUMAN"
	case StatusWarning:
		return "WARN"
	case StatusDeviceError:
		return "ERROR"
	default:
		return "SCANNING"
	}
}

// RenderState is everything one iteration hands to the display. Text, Color
// and Detected are what the radar draws; the rest feeds the signal panel.
type RenderState struct {
	Text     string
	Color    Color
	Detected bool
	Status   Status
	Err      error

	Iteration uint64
	Features  detect.Features
	RSSI      float64
	Distance  float64 // meters, zero unless Detected
}

// ScanningState is the state of an iteration with no detection.
func ScanningState() RenderState {
	return RenderState{Text: "Scanning...", Color: ColorScanning, Status: StatusScanning}
}

// DetectedState is the state of an iteration that found a human at distance meters.
func DetectedState(distance float64) RenderState {
	return RenderState{
		Text:     fmt.Sprintf("Closest Human: %.2fm", distance),
		Color:    ColorDetected,
		Detected: true,
		Status:   StatusDetected,
		Distance: distance,
	}
}

// WarningState reports a failed iteration the loop recovered from.
func WarningState(err error) RenderState {
	return RenderState{Text: "Scan Error: " + err.Error(), Color: ColorWarning, Status: StatusWarning, Err: err}
}

// DeviceErrorState reports a lost sample source; the loop has stopped.
func DeviceErrorState(err error) RenderState {
	return RenderState{Text: "Device Error: " + err.Error(), Color: ColorError, Status: StatusDeviceError, Err: err}
}
