package sdr

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bemasher/rtltcp"
)

// RTLTCPOptions configures a connection to an rtl_tcp server.
type RTLTCPOptions struct {
	Addr       string  // host:port of rtl_tcp
	SampleRate float64 // Hz
	CenterFreq float64 // Hz
	Gain       Gain
}

// RTLTCPSource reads samples from an RTL-SDR dongle exported by rtl_tcp.
type RTLTCPSource struct {
	dev        rtltcp.SDR
	addr       string
	sampleRate float64

	mu  sync.Mutex // one reader at a time; guards buf
	buf []byte

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// DialRTLTCP connects to rtl_tcp and applies sample rate, frequency and gain.
func DialRTLTCP(opts RTLTCPOptions) (*RTLTCPSource, error) {
	addr, err := net.ResolveTCPAddr("tcp", opts.Addr)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %w", ErrDevice, opts.Addr, err)
	}

	s := &RTLTCPSource{
		addr:       opts.Addr,
		sampleRate: opts.SampleRate,
	}
	if err := s.dev.Connect(addr); err != nil {
		return nil, fmt.Errorf("%w: connect %s: %w", ErrDevice, opts.Addr, err)
	}
	if err := s.configure(opts); err != nil {
		_ = s.dev.TCPConn.Close()
		return nil, err
	}
	return s, nil
}

func (s *RTLTCPSource) configure(opts RTLTCPOptions) error {
	if err := s.dev.SetSampleRate(uint32(opts.SampleRate)); err != nil {
		return fmt.Errorf("%w: set sample rate %.0f: %w", ErrDevice, opts.SampleRate, err)
	}
	if err := s.dev.SetCenterFreq(uint32(opts.CenterFreq)); err != nil {
		return fmt.Errorf("%w: set center frequency %.0f: %w", ErrDevice, opts.CenterFreq, err)
	}
	// SetGainMode(true) enables tuner AGC; false selects manual gain
	if err := s.dev.SetGainMode(opts.Gain.Auto); err != nil {
		return fmt.Errorf("%w: set gain mode: %w", ErrDevice, err)
	}
	if !opts.Gain.Auto {
		if err := s.dev.SetGain(opts.Gain.Tenths); err != nil {
			return fmt.Errorf("%w: set gain %s: %w", ErrDevice, opts.Gain, err)
		}
	}
	return nil
}

// ReadBlock reads n complex samples. Cancelling ctx interrupts a pending read.
func (s *RTLTCPSource) ReadBlock(ctx context.Context, n int) ([]complex128, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if n <= 0 {
		return nil, fmt.Errorf("sdr: block size must be positive, got %d", n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	need := 2 * n
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	raw := s.buf[:need]

	conn := s.dev.TCPConn
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	if _, err := io.ReadFull(conn, raw); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if s.closed.Load() {
			return nil, ErrClosed
		}
		return nil, fmt.Errorf("%w: read %d samples: %w", ErrDevice, n, err)
	}
	return DecodeIQ(raw, nil), nil
}

func (s *RTLTCPSource) SampleRate() float64 { return s.sampleRate }

func (s *RTLTCPSource) Label() string { return "rtl_tcp " + s.addr }

// Close shuts the connection to rtl_tcp exactly once.
func (s *RTLTCPSource) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.closeErr = s.dev.TCPConn.Close()
	})
	return s.closeErr
}
