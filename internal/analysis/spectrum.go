package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// PowerSpectrum returns the magnitude of the first half of the FFT of data
// after removing its mean. The input is zero padded to a power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	padded := make([]float64, nextPow2(len(data)))
	for i, v := range data {
		padded[i] = v - mean
	}

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC
// spectral bin, or 0 when the series is flat.
func DominantFrequency(data []float64, sampleRate float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || sampleRate <= 0 {
		return 0
	}

	best, peak := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > peak {
			best, peak = i, ps[i]
		}
	}
	if peak < 1e-12 {
		return 0
	}
	return float64(best) * sampleRate / float64(2*len(ps))
}

// SettleTime returns the time after which data never leaves
// [final-tol, final+tol], where final is the last sample. It returns -1 for
// an empty series.
func SettleTime(data []float64, dt, tol float64) float64 {
	if len(data) == 0 {
		return -1
	}
	final := data[len(data)-1]
	for i := len(data) - 1; i >= 0; i-- {
		if math.Abs(data[i]-final) > tol {
			return float64(i+1) * dt
		}
	}
	return 0
}
