package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScanIterations counts completed scan loop iterations by outcome
	// ("scanning", "detected", "error").
	ScanIterations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sdr_radar_scan_iterations_total",
			Help: "Total number of scan loop iterations",
		},
		[]string{"outcome"},
	)

	// IterationDuration measures read + FFT + classify time per iteration.
	IterationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sdr_radar_iteration_duration_seconds",
			Help:    "Scan iteration processing time in seconds, sleep excluded",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// LastDistance is the most recent distance estimate in meters.
	LastDistance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sdr_radar_last_distance_meters",
			Help: "Most recent human distance estimate in meters",
		},
	)

	// LastRSSI is the most recent mean-magnitude signal strength proxy.
	LastRSSI = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sdr_radar_last_rssi",
			Help: "Mean sample magnitude of the most recent block",
		},
	)

	// DeviceErrors counts fatal sample source failures.
	DeviceErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sdr_radar_device_errors_total",
			Help: "Total number of sample source failures",
		},
	)
)

// Outcome labels for ScanIterations.
const (
	OutcomeScanning = "scanning"
	OutcomeDetected = "detected"
	OutcomeError    = "error"
)
