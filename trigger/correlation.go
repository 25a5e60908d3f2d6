package trigger

import (
	"fmt"
	"math"

	"github.com/cwbudde/corrtrigger/corrmath"
	"github.com/cwbudde/corrtrigger/ring"
	"github.com/cwbudde/corrtrigger/spectrum"
	"github.com/cwbudde/corrtrigger/wave"
)

// CorrelationTriggerConfig configures a CorrelationTrigger.
type CorrelationTriggerConfig struct {
	// EdgeStrength scales the antisymmetric step function added to the
	// correlation buffer for approximate edge triggering.
	EdgeStrength float64

	// TriggerDiameter, if set, restricts the correlation search to
	// ±(TriggerDiameter/2 * N) samples around zero lag. Must be in (0, 1].
	TriggerDiameter *float64

	// TriggerFalloff is (diameter, falloff) as multiples of the estimated
	// period, shaping the window applied around a pitch change.
	TriggerFalloff [2]float64

	// RecalcSemitones is the pitch-change threshold (in semitones) below
	// which the trigger window is not recomputed.
	RecalcSemitones float64

	// LagPrevention, in [0, 1], controls how much of one frame's worth of
	// incoming data is tapered out to avoid correlating against
	// itself from the previous frame.
	LagPrevention float64

	// Responsiveness, in [0, 1], is the lerp factor between the existing
	// correlation buffer and newly observed (normalized) data.
	Responsiveness float64

	// BufferFalloff scales the Gaussian envelope (relative to the period)
	// applied to new data before it is blended into the buffer.
	BufferFalloff float64

	// PitchInvariance, if set, enables spectral pitch tracking and
	// resampling of the correlation buffer.
	PitchInvariance *spectrum.Config

	// Post optionally stacks a post-processing trigger underneath this
	// one, sharing the same FrameCache.
	Post Config
}

// Build validates the configuration and constructs a CorrelationTrigger.
func (c CorrelationTriggerConfig) Build(source wave.Source, tsamp, stride int, fps float64) (Trigger, error) {
	if c.LagPrevention < 0 || c.LagPrevention > 1 {
		return nil, fmt.Errorf("%w: LagPrevention=%v must be in [0,1]", ErrConfiguration, c.LagPrevention)
	}

	if c.Responsiveness < 0 || c.Responsiveness > 1 {
		return nil, fmt.Errorf("%w: Responsiveness=%v must be in [0,1]", ErrConfiguration, c.Responsiveness)
	}

	if c.BufferFalloff < 0 {
		return nil, fmt.Errorf("%w: BufferFalloff=%v must be >= 0", ErrConfiguration, c.BufferFalloff)
	}

	b, err := newBase(source, tsamp, stride, fps, c.Post)
	if err != nil {
		return nil, err
	}

	falloff := c.TriggerFalloff
	if falloff == [2]float64{} {
		falloff = [2]float64{4.0, 1.0}
	}

	recalc := c.RecalcSemitones
	if recalc == 0 {
		recalc = 1.0
	}

	t := &CorrelationTrigger{
		base:       b,
		cfg:        c,
		bufferNsamp: tsamp,
		falloff:    falloff,
		recalc:     recalc,
	}

	t.dataTaper = calcDataTaper(t.bufferNsamp, c.LagPrevention, b.realSampFrame, b.tsampFrame)
	t.buffer = make([]float64, t.bufferNsamp)
	t.windowedStep = corrmath.CalcStep(t.bufferNsamp, c.EdgeStrength*c.BufferFalloff, 1.0/3)

	if c.PitchInvariance != nil {
		sc, err := spectrum.New(*c.PitchInvariance, source.SampleRate()/float64(stride), t.bufferNsamp)
		if err != nil {
			return nil, fmt.Errorf("trigger: building spectrum: %w", err)
		}

		t.spectrumCalc = sc

		initial, err := sc.CalcSpectrum(t.buffer)
		if err != nil {
			return nil, err
		}

		t.spectrumBuf = initial
		t.history = ring.New(c.PitchInvariance.FramesToLookbehind, t.bufferNsamp)
	}

	return t, nil
}

// CorrelationTrigger is a correlation-based, pitch-invariant primary
// trigger: it maintains a correlation buffer of recent waveform shape, and
// each frame slides the incoming data against that buffer (plus an
// edge-triggering step function) to find the best-aligned rising edge.
type CorrelationTrigger struct {
	base
	cfg CorrelationTriggerConfig

	bufferNsamp int
	falloff     [2]float64
	recalc      float64

	dataTaper    []float64
	buffer       []float64
	windowedStep []float64

	prevPeriod *int
	prevWindow []float64

	framesSinceSpectrum int
	spectrumCalc         *spectrum.LogFreqSpectrum
	spectrumBuf          []float32
	history              *ring.Array
}

// GetTrigger implements Trigger.
func (t *CorrelationTrigger) GetTrigger(index int, cache *FrameCache) (int, error) {
	n := t.bufferNsamp

	raw, err := t.wave.GetAround(index, n, t.stride)
	if err != nil {
		return 0, err
	}

	data := toFloat64(raw)

	mean := meanOf(data)
	meanF32 := float32(mean)
	cache.Mean = &meanF32
	subtractScalar(data, mean)

	period, err := corrmath.GetPeriod(data)
	if err != nil {
		return 0, err
	}

	scaledPeriod := period * t.stride
	cache.Period = &scaledPeriod

	change := t.isWindowInvalid(period)

	var window []float64

	if change.Changed {
		diameter := int(math.Round(float64(period) * t.falloff[0]))
		falloffWidth := int(math.Round(float64(period) * t.falloff[1]))
		falloffWindow := corrmath.CosineFlat(n, diameter, falloffWidth)
		window = elementwiseMin(falloffWindow, t.dataTaper)

		if t.spectrumCalc != nil && anyNonZero(data) {
			var peakSemitones *float64
			if change.HasSemitones {
				s := change.Semitones
				peakSemitones = &s
			}

			if err := t.spectrumRescaleBuffer(data, peakSemitones, cache); err != nil {
				return 0, err
			}
		}

		p := period
		t.prevPeriod = &p
		t.prevWindow = window
	} else {
		window = t.prevWindow
	}

	if t.history != nil {
		t.history.Push(data)
	}

	windowed := make([]float64, n)
	for i := range windowed {
		windowed[i] = data[i] * window[i]
	}

	prevBuffer := make([]float64, n)
	for i := range prevBuffer {
		prevBuffer[i] = t.buffer[i] + t.windowedStep[i]
	}

	radius := -1
	if t.cfg.TriggerDiameter != nil {
		radius = int(math.Round(float64(n) * *t.cfg.TriggerDiameter / 2))
	}

	peakOffset, err := corrmath.CorrelateOffset(windowed, prevBuffer, radius, 0, 1)
	if err != nil {
		return 0, err
	}

	trigger := index + t.stride*peakOffset

	if t.post != nil {
		trigger, err = t.post.GetTrigger(trigger, cache)
		if err != nil {
			return 0, err
		}
	}

	alignedRaw, err := t.wave.GetAround(trigger, n, t.stride)
	if err != nil {
		return 0, err
	}

	if err := t.updateBuffer(toFloat64(alignedRaw), cache); err != nil {
		return 0, err
	}

	t.framesSinceSpectrum++

	return trigger, nil
}

type pitchChange struct {
	Changed      bool
	HasSemitones bool
	Semitones    float64
}

func (t *CorrelationTrigger) isWindowInvalid(period int) pitchChange {
	prev := t.prevPeriod

	if prev == nil {
		return pitchChange{Changed: true}
	}

	if *prev*period == 0 {
		return pitchChange{Changed: *prev != period}
	}

	semitones := math.Log(float64(period)/float64(*prev)) / math.Ln2 * -12
	if math.Abs(semitones) <= t.recalc {
		return pitchChange{Changed: false}
	}

	return pitchChange{Changed: true, HasSemitones: true, Semitones: semitones}
}

func (t *CorrelationTrigger) updateBuffer(data []float64, cache *FrameCache) error {
	if len(data) != t.bufferNsamp {
		return fmt.Errorf("%w: got %d want %d", ErrInvalidDataLength, len(data), t.bufferNsamp)
	}

	if cache.Period == nil {
		return ErrMissingPeriod
	}

	mean := 0.0
	if cache.Mean != nil {
		mean = float64(*cache.Mean)
	}

	subtractScalar(data, mean)
	corrmath.NormalizeBuffer(data)

	std := (float64(*cache.Period) / float64(t.stride)) * t.cfg.BufferFalloff
	envelope := corrmath.Gaussian(t.bufferNsamp, std)
	for i := range data {
		data[i] *= envelope[i]
	}

	corrmath.NormalizeBuffer(t.buffer)
	t.buffer = corrmath.Lerp(t.buffer, data, t.cfg.Responsiveness)

	return nil
}

func (t *CorrelationTrigger) spectrumRescaleBuffer(data []float64, peakSemitones *float64, cache *FrameCache) error {
	scfg := t.cfg.PitchInvariance

	if t.framesSinceSpectrum < scfg.MinFramesBetweenRecompute {
		return nil
	}

	t.framesSinceSpectrum = 0

	spectrumF32, err := t.spectrumCalc.CalcSpectrum(data)
	if err != nil {
		return err
	}

	cur := toFloat64(spectrumF32)
	corrmath.NormalizeBuffer(cur)

	prevF32, err := t.spectrumCalc.CalcSpectrum(t.history.Peek())
	if err != nil {
		return err
	}

	prev := toFloat64(prevF32)

	// Resolve a possibly-short CalcSpectrum result (Open Question in the
	// spec) by truncating both sides to their shared length before
	// correlating.
	n := min(len(cur), len(prev))
	cur = cur[:n]
	prev = prev[:n]

	for i := range prev {
		prev[i] += scfg.AddCurrentToHistory * cur[i]
	}

	t.spectrumBuf = toFloat32(cur)
	cache.Spectrum = t.spectrumBuf

	boostX := 0
	boostY := 1.0

	if peakSemitones != nil {
		boostX = int(math.Round(*peakSemitones / 12 * float64(scfg.NotesPerOctave)))
		boostY = scfg.PitchEstimateBoost
	}

	resampleNotes, err := corrmath.CorrelateOffset(cur, prev, scfg.MaxNotesToResample(), boostX, boostY)
	if err != nil {
		return err
	}

	if resampleNotes != 0 {
		newLen := int(math.Round(float64(t.bufferNsamp) / math.Pow(2, float64(resampleNotes)/float64(scfg.NotesPerOctave))))
		resampled := corrmath.ResampleLinear(t.buffer, newLen)
		t.buffer = corrmath.Midpad(resampled, t.bufferNsamp)
	}

	return nil
}

func calcDataTaper(n int, lagPrevention float64, realSampFrame, tsampFrame int) []float64 {
	halfN := n / 2

	transitionNsamp := int(math.Round(float64(realSampFrame) * lagPrevention))

	width := transitionNsamp
	if tsampFrame < width {
		width = tsampFrame
	}

	taper := corrmath.Hann(width * 2)
	if len(taper) > width {
		taper = taper[:width]
	}

	if width < tsampFrame {
		padded := make([]float64, tsampFrame)
		copy(padded, taper)
		for i := width; i < tsampFrame; i++ {
			padded[i] = 1
		}
		taper = padded
	}

	taper = corrmath.Leftpad(taper, halfN)

	dataTaper := make([]float64, n)
	for i := range dataTaper {
		dataTaper[i] = 1
	}

	for i := 0; i < halfN && i < len(taper); i++ {
		if taper[i] < dataTaper[i] {
			dataTaper[i] = taper[i]
		}
	}

	return dataTaper
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}

	return out
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}

	return out
}

func meanOf(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range data {
		sum += v
	}

	return sum / float64(len(data))
}

func subtractScalar(data []float64, v float64) {
	for i := range data {
		data[i] -= v
	}
}

func anyNonZero(data []float64) bool {
	for _, v := range data {
		if v != 0 {
			return true
		}
	}

	return false
}

func elementwiseMin(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		if a[i] < b[i] {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}

	return out
}
