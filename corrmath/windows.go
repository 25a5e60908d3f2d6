package corrmath

import (
	"math"

	"github.com/cwbudde/corrtrigger/dsp/window"
)

// Hann returns an N-sample Hann window (symmetric form, matching
// scipy.signal.windows.hann).
func Hann(n int) []float64 {
	return window.Generate(window.TypeHann, n)
}

// Gaussian returns an N-sample Gaussian window with standard deviation std,
// matching scipy.signal.windows.gaussian(N, std):
//
//	w[n] = exp(-0.5 * ((n - (N-1)/2) / std)^2)
//
// This differs from the teacher window package's alpha-parameterized
// TypeGauss, which only exposes an ENBW-oriented alpha convention; the
// std-parameterized form is computed directly here.
func Gaussian(n int, std float64) []float64 {
	out := make([]float64, n)
	if n <= 0 {
		return out
	}

	if std <= 0 {
		// Degenerate: collapse to an impulse at the center, matching the
		// limiting behavior of the Gaussian as std -> 0.
		out[(n-1)/2] = 1
		return out
	}

	center := float64(n-1) / 2
	for i := range out {
		v := (float64(i) - center) / std
		out[i] = math.Exp(-0.5 * v * v)
	}

	return out
}

// CosineFlat builds a window of length n: a half-Hann rising edge, a flat
// plateau of `diameter` ones, and a half-Hann falling edge, each half-Hann
// edge `falloff` samples wide, then center-padded or center-cropped to n.
func CosineFlat(n, diameter, falloff int) []float64 {
	cosine := Hann(falloff * 2)
	left := cosine[:falloff]
	right := cosine[falloff:]

	combined := make([]float64, 0, falloff+diameter+falloff)
	combined = append(combined, left...)
	for i := 0; i < diameter; i++ {
		combined = append(combined, 1)
	}
	combined = append(combined, right...)

	return Midpad(combined, n)
}

// CalcStep returns an antisymmetric step function of length nsamp, rising
// from -peak/2 to +peak/2 at the midpoint, shaped by a Gaussian envelope
// of standard deviation halfN*stdevFrac.
func CalcStep(nsamp int, peak, stdevFrac float64) []float64 {
	halfN := nsamp / 2

	step := make([]float64, nsamp)
	for i := 0; i < halfN; i++ {
		step[i] = -peak / 2
	}
	for i := halfN; i < nsamp; i++ {
		step[i] = peak / 2
	}

	envelope := Gaussian(nsamp, float64(halfN)*stdevFrac)
	for i := range step {
		step[i] *= envelope[i]
	}

	return step
}

// Leftpad returns a length-n slice with a right-aligned copy of arr
// (zero-filled on the left). If len(arr) >= n, the last n samples are kept.
func Leftpad(arr []float64, n int) []float64 {
	out := make([]float64, n)
	if len(arr) >= n {
		copy(out, arr[len(arr)-n:])
		return out
	}

	copy(out[n-len(arr):], arr)
	return out
}

// Midpad center-pads (with zeros) or center-crops arr to length n.
func Midpad(arr []float64, n int) []float64 {
	if n == len(arr) {
		out := make([]float64, n)
		copy(out, arr)
		return out
	}

	out := make([]float64, n)

	if n > len(arr) {
		pad := n - len(arr)
		left := pad / 2
		copy(out[left:left+len(arr)], arr)
		return out
	}

	// n < len(arr): crop the middle n samples.
	extra := len(arr) - n
	left := extra / 2
	copy(out, arr[left:left+n])

	return out
}

// MinAmplitude is the floor used by NormalizeBuffer to avoid dividing by a
// near-silent peak.
const MinAmplitude = 0.01

// NormalizeBuffer rescales data in-place so its peak absolute value is 1,
// floored at MinAmplitude to avoid amplifying noise in near-silent data.
func NormalizeBuffer(data []float64) {
	peak := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	if peak < MinAmplitude {
		peak = MinAmplitude
	}

	for i := range data {
		data[i] /= peak
	}
}

// Lerp linearly interpolates between x and y by fraction a: x*(1-a) + y*a.
func Lerp(x, y []float64, a float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i]*(1-a) + y[i]*a
	}

	return out
}

// Geomspace returns n values spaced evenly on a logarithmic scale from
// start to stop (inclusive), matching numpy.geomspace.
func Geomspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	if n == 1 {
		out[0] = start
		return out
	}

	logStart := math.Log(start)
	logStop := math.Log(stop)
	step := (logStop - logStart) / float64(n-1)

	for i := range out {
		out[i] = math.Exp(logStart + step*float64(i))
	}
	out[n-1] = stop

	return out
}

// NextFastLen returns the smallest 5-smooth integer (only prime factors
// 2, 3, and 5) that is >= n. FFT implementations are typically fastest at
// such lengths.
func NextFastLen(n int) int {
	if n <= 1 {
		return 1
	}

	for candidate := n; ; candidate++ {
		if isFiveSmooth(candidate) {
			return candidate
		}
	}
}

func isFiveSmooth(n int) bool {
	for _, p := range [...]int{2, 3, 5} {
		for n%p == 0 {
			n /= p
		}
	}

	return n == 1
}
