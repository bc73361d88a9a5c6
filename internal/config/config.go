package config

import "time"

const (
	// Sample source
	SampleRate = 2.048e6          // Hz
	CenterFreq = 88.0e6           // Hz, lower edge of the FM band
	BlockSize  = 256 * 1024       // complex samples per scan iteration
	Gain       = "auto"           // "auto" or tenths of a dB
	TCPAddr    = "127.0.0.1:1234" // rtl_tcp server

	// RSSI to distance estimation
	MeasuredPower = -30.0 // RSSI at 1 meter
	PathLossExp   = 2.5   // Path loss exponent (N)

	// Classifier artifacts
	ModelPath  = "models/human_detection_model.json"
	ScalerPath = "models/scaler.json"

	// Scan loop
	ScanInterval = 100 * time.Millisecond // pause between iterations

	// Radar display
	MaxRange      = 10.0 // Maximum range in meters
	AspectRatio   = 0.5  // Terminal char aspect correction (chars are ~2:1 tall)
	RingCount     = 2    // Number of concentric rings (5m, 10m)
	BackdropPts   = 360  // Decorative ring resolution, one point per degree
	BackdropFFT   = 1024 // Noise samples behind the decorative ring
	SweepSpeedRPM = 30   // Sweep rotations per minute (1 rotation per 2 seconds)
	SweepTrailDeg = 60.0 // Sweep trail angle in degrees
	TargetFPS     = 30   // Target frames per second
	HistoryLen    = 120  // RSSI sparkline length (iterations)

	// App
	AppName    = "SDR-RADAR"
	AppVersion = "1.0"
)
