package app

// SignalHistory keeps the RSSI proxy of the most recent scan iterations for
// the sparkline. It is display state only and never feeds detection.
type SignalHistory struct {
	samples []float64
	limit   int
}

// NewSignalHistory keeps at most limit samples.
func NewSignalHistory(limit int) *SignalHistory {
	if limit < 1 {
		limit = 1
	}
	return &SignalHistory{samples: make([]float64, 0, limit), limit: limit}
}

// Add records the RSSI of one iteration, dropping the oldest when full.
func (h *SignalHistory) Add(rssi float64) {
	if len(h.samples) == h.limit {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.limit-1]
	}
	h.samples = append(h.samples, rssi)
}

// Samples returns a copy of the recorded values, oldest first.
func (h *SignalHistory) Samples() []float64 {
	if len(h.samples) == 0 {
		return nil
	}
	return append([]float64(nil), h.samples...)
}

// Len is the number of recorded iterations.
func (h *SignalHistory) Len() int { return len(h.samples) }
