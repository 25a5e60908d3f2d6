package corrmath

import "github.com/cwbudde/corrtrigger/dsp/interp"

// ResampleLinear resamples data (currently len(data) samples spanning [0,1])
// to newLen samples, using linear interpolation. Matches
// numpy.interp(linspace(0,1,newLen), linspace(0,1,len(data)), data).
func ResampleLinear(data []float64, newLen int) []float64 {
	n := len(data)
	out := make([]float64, newLen)

	if n == 0 {
		return out
	}

	if n == 1 || newLen == 1 {
		for i := range out {
			out[i] = data[0]
		}

		return out
	}

	lerp := interp.NewLagrangeInterpolator(1)

	for i := range out {
		// Position in [0, n-1] within the source buffer.
		pos := float64(i) / float64(newLen-1) * float64(n-1)

		lo := int(pos)
		if lo >= n-1 {
			out[i] = data[n-1]
			continue
		}

		frac := pos - float64(lo)
		out[i] = lerp.Interpolate(data[lo:lo+2], frac)
	}

	return out
}
