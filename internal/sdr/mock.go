package sdr

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
)

const (
	mockToneHz     = 250e3 // offset of the synthetic carrier from center
	mockNoiseSigma = 0.1   // per-component gaussian noise
	mockQuietAmp   = 0.05  // carrier amplitude with nobody around
	mockPresentAmp = 0.3   // carrier amplitude while a "human" is present
	mockPhaseLen   = 20    // blocks per quiet/present phase (2s at 100ms)
)

// MockSource synthesises IQ blocks for demo mode: a carrier plus noise whose
// amplitude alternates between a quiet and a present phase.
type MockSource struct {
	sampleRate float64

	mu     sync.Mutex
	rng    *rand.Rand
	block  int
	phase  float64
	closed atomic.Bool
}

// NewMockSource creates a demo source. The same seed yields the same stream.
func NewMockSource(sampleRate float64, seed int64) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// ReadBlock returns n synthetic samples. It never blocks.
func (s *MockSource) ReadBlock(ctx context.Context, n int) ([]complex128, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	amp := mockQuietAmp
	if s.Present(s.block) {
		amp = mockPresentAmp
	}
	s.block++

	step := 2 * math.Pi * mockToneHz / s.sampleRate
	out := make([]complex128, n)
	for i := range out {
		sin, cos := math.Sincos(s.phase)
		re := amp*cos + s.rng.NormFloat64()*mockNoiseSigma
		im := amp*sin + s.rng.NormFloat64()*mockNoiseSigma
		out[i] = complex(re, im)
		s.phase += step
	}
	s.phase = math.Mod(s.phase, 2*math.Pi)
	return out, nil
}

// Present reports whether block i falls in a present phase.
func (s *MockSource) Present(i int) bool {
	return (i/mockPhaseLen)%2 == 1
}

func (s *MockSource) SampleRate() float64 { return s.sampleRate }

func (s *MockSource) Label() string { return "demo" }

func (s *MockSource) Close() error {
	s.closed.Store(true)
	return nil
}
