package corrmath

// CorrelateOffset cross-correlates data against reference and returns the
// lag (positive: data should shift right) that maximizes their alignment.
//
// If radius is non-negative, the search is restricted to lags within
// ±radius of zero. boostX/boostY optionally scale a single correlation cell
// (at lag boostX) before the peak search, to bias the result toward a
// preferred lag (used for pitch-shift detection).
//
// Ties are broken by the first (left-most, i.e. most negative) maximal lag.
func CorrelateOffset(data, reference []float64, radius int, boostX int, boostY float64) (int, error) {
	n := len(data)

	corr, err := Correlate(data, reference)
	if err != nil {
		return 0, err
	}

	nCorr := 2*n - 1
	mid := n - 1

	lo, hi := 0, nCorr
	if radius >= 0 {
		lo = max(mid-radius, 0)
		hi = min(mid+radius+1, nCorr)
		corr = corr[lo:hi]
		mid -= lo
	}

	boostIdx := mid + boostX
	if boostIdx >= 0 && boostIdx < len(corr) {
		corr[boostIdx] *= boostY
	}

	peakIdx, _ := FindPeak(corr)

	return peakIdx - mid, nil
}
