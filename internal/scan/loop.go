package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sdr-radar.klederson.com/internal/config"
	"sdr-radar.klederson.com/internal/detect"
	"sdr-radar.klederson.com/internal/logging"
	"sdr-radar.klederson.com/internal/metrics"
	"sdr-radar.klederson.com/internal/sdr"
)

// Classifier decides whether a feature vector means a human is present.
type Classifier interface {
	Classify(detect.Features) (bool, error)
}

// Loop runs the read -> FFT -> features -> classify -> render cycle.
type Loop struct {
	Source     sdr.Source
	Classifier Classifier
	Sink       Sink

	BlockSize     int
	Interval      time.Duration
	MeasuredPower float64
	PathLossExp   float64

	iteration uint64
	fft       detect.Transformer
}

// NewLoop creates a loop with the default block size, cadence and path-loss
// parameters.
func NewLoop(src sdr.Source, cls Classifier, sink Sink) *Loop {
	return &Loop{
		Source:        src,
		Classifier:    cls,
		Sink:          sink,
		BlockSize:     config.BlockSize,
		Interval:      config.ScanInterval,
		MeasuredPower: config.MeasuredPower,
		PathLossExp:   config.PathLossExp,
	}
}

// Run iterates until ctx is cancelled or the source fails. Every iteration
// pushes exactly one state. A device failure pushes a device-error state and
// returns the error; other iteration failures are pushed as warnings and the
// loop carries on. Cancellation returns nil.
func (l *Loop) Run(ctx context.Context) error {
	for {
		state, err := l.Step(ctx)
		if err != nil && ctx.Err() != nil {
			return nil
		}

		switch {
		case err == nil:
		case errors.Is(err, sdr.ErrDevice) || errors.Is(err, sdr.ErrClosed):
			logging.Logf("scan: iteration %d: source failed, stopping: %v", l.iteration, err)
			metrics.DeviceErrors.Inc()
			metrics.ScanIterations.WithLabelValues(metrics.OutcomeError).Inc()
			state = DeviceErrorState(err)
			state.Iteration = l.iteration
			l.Sink.Push(state)
			return err
		default:
			logging.Logf("scan: iteration %d: %v", l.iteration, err)
			metrics.ScanIterations.WithLabelValues(metrics.OutcomeError).Inc()
			state = WarningState(err)
			state.Iteration = l.iteration
		}
		l.Sink.Push(state)

		if !sleep(ctx, l.Interval) {
			return nil
		}
	}
}

// Step performs one iteration without pushing or sleeping. Detection is
// memoryless: nothing from earlier iterations affects the result.
func (l *Loop) Step(ctx context.Context) (RenderState, error) {
	l.iteration++
	start := time.Now()

	block, err := l.Source.ReadBlock(ctx, l.BlockSize)
	if err != nil {
		return RenderState{}, err
	}
	spectrum, err := l.fft.Spectrum(block)
	if err != nil {
		return RenderState{}, err
	}
	features, err := detect.ExtractFeatures(spectrum, l.Source.SampleRate())
	if err != nil {
		return RenderState{}, err
	}
	human, err := l.Classifier.Classify(features)
	if err != nil {
		return RenderState{}, fmt.Errorf("classify: %w", err)
	}

	rssi := detect.BlockRSSI(block)
	metrics.LastRSSI.Set(rssi)

	var state RenderState
	if human {
		distance := detect.RSSIToDistance(rssi, l.MeasuredPower, l.PathLossExp)
		metrics.LastDistance.Set(distance)
		metrics.ScanIterations.WithLabelValues(metrics.OutcomeDetected).Inc()
		state = DetectedState(distance)
	} else {
		metrics.ScanIterations.WithLabelValues(metrics.OutcomeScanning).Inc()
		state = ScanningState()
	}
	state.Iteration = l.iteration
	state.Features = features
	state.RSSI = rssi

	metrics.IterationDuration.Observe(time.Since(start).Seconds())
	return state, nil
}

// sleep waits d or until ctx is done; it reports whether to keep going.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
