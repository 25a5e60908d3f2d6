// Package spectrum provides a log-frequency-binned magnitude spectrum used
// for pitch-invariant correlation, built on top of per-bin Goertzel
// analysis.
package spectrum

import (
	"fmt"
	"math"

	dspspectrum "github.com/cwbudde/corrtrigger/dsp/spectrum"
	"github.com/cwbudde/corrtrigger/corrmath"
)

// Config controls how LogFreqSpectrum bins the magnitude spectrum.
type Config struct {
	MinHz          float64
	Octaves        int
	NotesPerOctave int
	Exponent       float64
	DivideByFreq   bool

	MinFramesBetweenRecompute int
	FramesToLookbehind        int
	PitchEstimateBoost        float64
	AddCurrentToHistory       float64
	MaxOctavesToResample      float64
}

// MaxNotesToResample returns the rounded note count derived from
// MaxOctavesToResample * NotesPerOctave.
func (c Config) MaxNotesToResample() int {
	return int(math.Round(float64(c.NotesPerOctave) * c.MaxOctavesToResample))
}

// LogFreqSpectrum computes a magnitude spectrum over log-spaced frequency
// bins ("notes"), using one Goertzel analyzer per FFT bin from 0 up to the
// last bin fencepost. The transform
// length NFFT is grown (in 5-smooth steps) until no two adjacent bin edges
// collide on the same FFT bin.
type LogFreqSpectrum struct {
	cfg      Config
	subsmpHz float64

	nfft           int
	binFenceposts  []int
	analyzerFreqHz []float64
}

// New builds a LogFreqSpectrum for data of the given length sampled at
// subsmpHz (the trigger's subsampled rate, i.e. wave rate / stride).
//
// Per spec §4.3 step 2 / Open Question #3, fenceposts beyond the Nyquist
// bin (nfft/2) are dropped rather than rejected: a channel whose
// configured min_hz*2^octaves exceeds subsmp_s/2 (e.g. a high trigger
// stride relative to the wave's sample rate) ends up with fewer, narrower
// top bins instead of failing to build. CalcSpectrum's callers already
// tolerate a shorter-than-configured bin count (spectrumRescaleBuffer
// truncates to the shared minimum length before correlating).
func New(cfg Config, subsmpHz float64, dummyLen int) (*LogFreqSpectrum, error) {
	if dummyLen <= 1 {
		return nil, fmt.Errorf("spectrum: dummy data length must be > 1, got %d", dummyLen)
	}

	n := corrmath.NextFastLen(dummyLen - 1)

	maxHz := cfg.MinHz * math.Pow(2, float64(cfg.Octaves))
	nFencepost := cfg.NotesPerOctave*cfg.Octaves + 1

	var binFenceposts []int

	for {
		fenceHz := corrmath.Geomspace(cfg.MinHz, maxHz, nFencepost)

		binFenceposts = make([]int, nFencepost)
		binStep := subsmpHz / float64(n)

		collided := false

		for i, hz := range fenceHz {
			binFenceposts[i] = int(hz / binStep)
			if i > 0 && binFenceposts[i] == binFenceposts[i-1] {
				collided = true
			}
		}

		if !collided {
			break
		}

		n = corrmath.NextFastLen(n + n/5 + 1)
	}

	maxBin := n / 2
	for len(binFenceposts) > 0 && binFenceposts[len(binFenceposts)-1] > maxBin {
		binFenceposts = binFenceposts[:len(binFenceposts)-1]
	}

	if len(binFenceposts) < 2 {
		return nil, fmt.Errorf("spectrum: min_hz=%v is at or beyond Nyquist (subsmp_hz/2=%v)", cfg.MinHz, subsmpHz/2)
	}

	lastBin := binFenceposts[len(binFenceposts)-1]
	analyzerFreqHz := make([]float64, lastBin+1)

	for i := range analyzerFreqHz {
		analyzerFreqHz[i] = float64(i) * (subsmpHz / float64(n))
	}

	return &LogFreqSpectrum{
		cfg:            cfg,
		subsmpHz:       subsmpHz,
		nfft:           n,
		binFenceposts:  binFenceposts,
		analyzerFreqHz: analyzerFreqHz,
	}, nil
}

// NFFT returns the effective FFT length used to compute bin fenceposts.
func (s *LogFreqSpectrum) NFFT() int { return s.nfft }

// CalcSpectrum computes the energy-per-note spectrum of data, zero-padded
// (or truncated) to NFFT samples before analysis.
//
// The transform is evaluated bin-by-bin with a MultiGoertzel analyzer
// instead of a general FFT: NFFT must stay an arbitrary 5-smooth integer so
// that bin_fenceposts indexes it exactly, and the FFT this module reaches
// for elsewhere (algo-fft, via corrmath.Correlate's delegation to
// dsp/conv.CorrelateFFT) only supports power-of-two lengths. A Goertzel
// bank reproduces exactly the bins this spectrum needs without requiring a
// general-radix transform.
func (s *LogFreqSpectrum) CalcSpectrum(data []float64) ([]float32, error) {
	block := make([]float64, s.nfft)
	copy(block, data)

	mg, err := dspspectrum.NewMultiGoertzel(s.analyzerFreqHz, s.subsmpHz)
	if err != nil {
		return nil, fmt.Errorf("spectrum: building goertzel bank: %w", err)
	}

	mg.ProcessBlock(block)
	powers := mg.Powers()

	magnitude := make([]float64, len(powers))
	for i, p := range powers {
		m := math.Sqrt(math.Max(p, 0))
		if s.cfg.Exponent != 1 {
			m = math.Pow(m, s.cfg.Exponent)
		}

		magnitude[i] = m
	}

	nBins := len(s.binFenceposts) - 1
	out := make([]float32, 0, nBins)

	for i := 0; i < nBins; i++ {
		start := s.binFenceposts[i]
		end := s.binFenceposts[i+1]

		if start >= len(magnitude) {
			break
		}

		if end > len(magnitude) {
			end = len(magnitude)
		}

		var sum float64
		for _, v := range magnitude[start:end] {
			sum += v
		}

		if s.cfg.DivideByFreq {
			sum /= float64(end - start)
		}

		out = append(out, float32(sum))
	}

	return out, nil
}
