package detect

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrInvalidInput is returned for empty or degenerate input.
var ErrInvalidInput = errors.New("detect: invalid input")

// NumFeatures is the width of a feature vector.
const NumFeatures = 3

// Features is the vector the classifier was trained on. The order
// [peak frequency, peak magnitude, magnitude std-dev] is part of the model
// contract.
type Features [NumFeatures]float64

func (f Features) PeakFreq() float64 { return f[0] }
func (f Features) PeakMag() float64  { return f[1] }
func (f Features) StdDev() float64   { return f[2] }

// Spectrum returns the unnormalised forward DFT of block.
func Spectrum(block []complex128) ([]complex128, error) {
	var t Transformer
	return t.Spectrum(block)
}

// Transformer computes spectra of equally sized blocks, keeping the FFT
// plan and output buffer between calls. It is not safe for concurrent use.
type Transformer struct {
	fft *fourier.CmplxFFT
	out []complex128
}

// Spectrum returns the unnormalised forward DFT of block. The result is
// overwritten by the next call.
func (t *Transformer) Spectrum(block []complex128) ([]complex128, error) {
	if len(block) == 0 {
		return nil, fmt.Errorf("%w: empty sample block", ErrInvalidInput)
	}
	if t.fft == nil || t.fft.Len() != len(block) {
		t.fft = fourier.NewCmplxFFT(len(block))
		t.out = make([]complex128, len(block))
	}
	t.out = t.fft.Coefficients(t.out, block)
	return t.out, nil
}

// BinFreq returns the frequency in Hz of bin k of an n-point DFT: positive
// for k < n/2 and the negative mirror above.
func BinFreq(k, n int, sampleRate float64) float64 {
	if 2*k < n {
		return float64(k) * sampleRate / float64(n)
	}
	return float64(k-n) * sampleRate / float64(n)
}

// ExtractFeatures reduces a spectrum to its feature vector.
func ExtractFeatures(spectrum []complex128, sampleRate float64) (Features, error) {
	if len(spectrum) == 0 {
		return Features{}, fmt.Errorf("%w: empty spectrum", ErrInvalidInput)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Features{}, fmt.Errorf("%w: sample rate %v", ErrInvalidInput, sampleRate)
	}

	mags := make([]float64, len(spectrum))
	for i, c := range spectrum {
		mags[i] = cmplx.Abs(c)
	}

	peak := floats.MaxIdx(mags)
	_, std := stat.PopMeanStdDev(mags, nil)

	return Features{
		BinFreq(peak, len(spectrum), sampleRate),
		mags[peak],
		std,
	}, nil
}
