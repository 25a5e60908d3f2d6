// Package trigger implements the per-channel trigger algorithms: stateful,
// correlation-based period tracking that keeps a periodic waveform's
// rendered phase stable across frames.
package trigger

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/corrtrigger/wave"
)

// PostProcessingNsamp is the fixed window size (in samples, stride 1)
// used for every post-processing trigger, regardless of the primary
// trigger's own window size.
const PostProcessingNsamp = 256

var (
	// ErrConfiguration is returned when a trigger's parameters are invalid.
	ErrConfiguration = errors.New("trigger: invalid configuration")

	// ErrInvalidDataLength is returned when a buffer fetched from a
	// wave.Source does not match the trigger's expected window size.
	ErrInvalidDataLength = errors.New("trigger: data length does not match buffer size")

	// ErrMissingPeriod is returned by post triggers that require
	// FrameCache.Period to already be populated by an earlier trigger in
	// the stack.
	ErrMissingPeriod = errors.New("trigger: missing cache.Period, stack a period-estimating trigger first")
)

// FrameCache carries state shared across every trigger stacked for a given
// (frame, channel): a primary trigger populates it, and any post trigger
// stacked below it may read (and is free to overwrite) the same fields.
type FrameCache struct {
	// Period is the non-subsampled period estimate (subsampled period *
	// stride), or nil before the first primary trigger has run.
	Period *int

	// Mean is the mean of the data window the primary trigger fetched.
	Mean *float32

	// Spectrum is the most recently computed log-frequency magnitude
	// spectrum, if pitch-invariant correlation is enabled.
	Spectrum []float32
}

// Trigger finds the sample index of a rising edge near index, using
// historical buffer state to keep the choice phase-stable across frames.
type Trigger interface {
	GetTrigger(index int, cache *FrameCache) (int, error)
}

// Config builds a Trigger bound to a wave.Source and a window/stride/fps
// configuration. Implementations may stack a nested post-processing
// Config, built with tsamp=PostProcessingNsamp and stride=1.
type Config interface {
	Build(source wave.Source, tsamp, stride int, fps float64) (Trigger, error)
}

// base holds the fields every Trigger implementation needs: its source,
// window geometry, and an optional nested post-processing trigger.
type base struct {
	wave   wave.Source
	tsamp  int
	stride int
	fps    float64

	tsampFrame    int
	realSampFrame int

	post Trigger
}

func newBase(source wave.Source, tsamp, stride int, fps float64, postCfg Config) (base, error) {
	if tsamp <= 0 {
		return base{}, fmt.Errorf("%w: tsamp=%d must be > 0", ErrConfiguration, tsamp)
	}

	if stride <= 0 {
		return base{}, fmt.Errorf("%w: stride=%d must be > 0", ErrConfiguration, stride)
	}

	b := base{wave: source, tsamp: tsamp, stride: stride, fps: fps}

	frameDur := 1 / fps
	b.tsampFrame = b.time2tsamp(frameDur)
	b.realSampFrame = int(math.Round(frameDur * source.SampleRate()))

	if postCfg != nil {
		post, err := postCfg.Build(source, PostProcessingNsamp, 1, fps)
		if err != nil {
			return base{}, err
		}

		b.post = post
	}

	return b, nil
}

func (b *base) time2tsamp(t float64) int {
	return int(math.Round(t * b.wave.SampleRate() / float64(b.stride)))
}
