package sdr

import (
	"context"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meanMag(block []complex128) float64 {
	var sum float64
	for _, c := range block {
		sum += cmplx.Abs(c)
	}
	return sum / float64(len(block))
}

func TestMockSource_ReadBlock(t *testing.T) {
	src := NewMockSource(2.048e6, 1)
	assert.Equal(t, 2.048e6, src.SampleRate())
	assert.Equal(t, "demo", src.Label())

	block, err := src.ReadBlock(context.Background(), 4096)
	require.NoError(t, err)
	assert.Len(t, block, 4096)
}

func TestMockSource_PhasesAlternate(t *testing.T) {
	src := NewMockSource(2.048e6, 1)
	ctx := context.Background()

	var quiet, present float64
	for i := 0; i < 2*mockPhaseLen; i++ {
		block, err := src.ReadBlock(ctx, 2048)
		require.NoError(t, err)
		if src.Present(i) {
			present = meanMag(block)
		} else {
			quiet = meanMag(block)
		}
	}
	assert.Greater(t, present, quiet)
}

func TestMockSource_Deterministic(t *testing.T) {
	a, _ := NewMockSource(1e6, 42).ReadBlock(context.Background(), 64)
	b, _ := NewMockSource(1e6, 42).ReadBlock(context.Background(), 64)
	assert.Equal(t, a, b)
}

func TestMockSource_Close(t *testing.T) {
	src := NewMockSource(1e6, 1)
	require.NoError(t, src.Close())
	require.NoError(t, src.Close())

	_, err := src.ReadBlock(context.Background(), 16)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMockSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMockSource(1e6, 1).ReadBlock(ctx, 16)
	assert.ErrorIs(t, err, context.Canceled)
}
