package detect

import (
	"math"
	"math/cmplx"

	"sdr-radar.klederson.com/internal/config"
)

// RSSIToDistance estimates distance from RSSI using the log-distance path loss model.
// Formula: d = 10^((measuredPower - rssi) / (10 * n))
func RSSIToDistance(rssi, measuredPower, pathLossExp float64) float64 {
	return math.Pow(10, (measuredPower-rssi)/(10*pathLossExp))
}

// EstimateDistance applies RSSIToDistance with the default reference power
// and exponent.
func EstimateDistance(rssi float64) float64 {
	return RSSIToDistance(rssi, config.MeasuredPower, config.PathLossExp)
}

// BlockRSSI is the mean magnitude of the raw samples. It is an uncalibrated
// strength proxy, not dBm.
func BlockRSSI(block []complex128) float64 {
	if len(block) == 0 {
		return 0
	}
	var sum float64
	for _, c := range block {
		sum += cmplx.Abs(c)
	}
	return sum / float64(len(block))
}
