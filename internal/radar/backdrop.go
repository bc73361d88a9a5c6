package radar

import (
	"math/cmplx"
	"math/rand"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"sdr-radar.klederson.com/internal/config"
)

// Backdrop is the decorative ring drawn behind the radar: the spectrum of
// white noise resampled to one radius per degree. It carries no information
// about the received signal.
type Backdrop []float64

// NewBackdrop draws a fresh decorative ring, radii normalised to [0, 1].
func NewBackdrop(rng *rand.Rand) Backdrop {
	noise := make([]complex128, config.BackdropFFT)
	for i := range noise {
		noise[i] = complex(rng.NormFloat64(), 0)
	}
	coeffs := fourier.NewCmplxFFT(len(noise)).Coefficients(nil, noise)

	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}

	ring := Backdrop(resample(mags, config.BackdropPts))
	if peak := floats.Max(ring); peak > 0 {
		floats.Scale(1/peak, ring)
	}
	return ring
}

// resample linearly interpolates src at n evenly spaced positions spanning
// [0, len(src)]; positions past the last sample take its value.
func resample(src []float64, n int) []float64 {
	out := make([]float64, n)
	if len(src) == 0 || n == 0 {
		return out
	}
	last := len(src) - 1
	for i := range out {
		x := 0.0
		if n > 1 {
			x = float64(i) * float64(len(src)) / float64(n-1)
		}
		j := int(x)
		if j >= last {
			out[i] = src[last]
			continue
		}
		frac := x - float64(j)
		out[i] = src[j]*(1-frac) + src[j+1]*frac
	}
	return out
}

// At returns the ring radius fraction for a radar angle.
func (b Backdrop) At(angle float64) float64 {
	if len(b) == 0 {
		return 0
	}
	return b[AngleIndex(angle, len(b))]
}
