package sdr

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrDevice marks failures of the radio itself: connect, configure, read.
	ErrDevice = errors.New("sdr: device error")
	// ErrClosed is returned by ReadBlock after Close.
	ErrClosed = errors.New("sdr: source closed")
)

// Source yields fixed-size blocks of complex baseband samples.
type Source interface {
	// ReadBlock blocks until n samples are available or ctx is done.
	ReadBlock(ctx context.Context, n int) ([]complex128, error)
	// SampleRate is the configured rate in Hz.
	SampleRate() float64
	// Label is a short description for the status line.
	Label() string
	// Close releases the device. Calling it more than once is safe.
	Close() error
}

// Gain is a tuner gain setting: automatic, or manual in tenths of a dB
// (the rtl_tcp convention).
type Gain struct {
	Auto   bool
	Tenths uint32
}

func (g Gain) String() string {
	if g.Auto {
		return "auto"
	}
	return fmt.Sprintf("%.1fdB", float64(g.Tenths)/10)
}

// ParseGain accepts "auto" or a non-negative integer number of tenths of a dB.
func ParseGain(s string) (Gain, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "auto" {
		return Gain{Auto: true}, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return Gain{}, fmt.Errorf("invalid gain %q: want \"auto\" or tenths of a dB", s)
	}
	return Gain{Tenths: uint32(v)}, nil
}
