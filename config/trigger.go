package config

import (
	"fmt"

	"github.com/cwbudde/corrtrigger/spectrum"
	"github.com/cwbudde/corrtrigger/trigger"
)

// CorrelationTriggerConfig is the YAML-tagged mirror of
// trigger.CorrelationTriggerConfig, with zero-value defaults applied by
// Build rather than at decode time (matching the teacher's pattern of
// validating at construction, not at parse time).
type CorrelationTriggerConfig struct {
	EdgeStrength    float64        `yaml:"edge_strength"`
	TriggerDiameter *float64       `yaml:"trigger_diameter"`
	TriggerFalloff  [2]float64     `yaml:"trigger_falloff"`
	RecalcSemitones float64        `yaml:"recalc_semitones"`
	LagPrevention   float64        `yaml:"lag_prevention"`
	Responsiveness  float64        `yaml:"responsiveness"`
	BufferFalloff   float64        `yaml:"buffer_falloff"`
	PitchInvariance *SpectrumConfig `yaml:"pitch_invariance"`
	Post            *TriggerUnion  `yaml:"post"`

	// UseEdgeTrigger is a legacy boolean: if true and Post is unset, Post
	// defaults to a ZeroCrossingTriggerConfig. If true and Post is set,
	// it is ignored (the caller should warn).
	UseEdgeTrigger bool `yaml:"use_edge_trigger"`
}

// SpectrumConfig is the YAML-tagged mirror of spectrum.Config.
type SpectrumConfig struct {
	MinHz                     float64 `yaml:"min_hz"`
	Octaves                   int     `yaml:"octaves"`
	NotesPerOctave            int     `yaml:"notes_per_octave"`
	Exponent                  float64 `yaml:"exponent"`
	DivideByFreq              bool    `yaml:"divide_by_freq"`
	MinFramesBetweenRecompute int     `yaml:"min_frames_between_recompute"`
	FramesToLookbehind        int     `yaml:"frames_to_lookbehind"`
	PitchEstimateBoost        float64 `yaml:"pitch_estimate_boost"`
	AddCurrentToHistory       float64 `yaml:"add_current_to_history"`
	MaxOctavesToResample      float64 `yaml:"max_octaves_to_resample"`
}

// Defaulted returns a copy of c with SpectrumConfig's documented defaults
// filled in for any zero-valued field.
func (c SpectrumConfig) Defaulted() SpectrumConfig {
	if c.MinHz == 0 {
		c.MinHz = 40
	}

	if c.Octaves == 0 {
		c.Octaves = 7
	}

	if c.NotesPerOctave == 0 {
		c.NotesPerOctave = 6
	}

	if c.Exponent == 0 {
		c.Exponent = 1
	}

	if c.MinFramesBetweenRecompute == 0 {
		c.MinFramesBetweenRecompute = 6
	}

	if c.FramesToLookbehind == 0 {
		c.FramesToLookbehind = 2
	}

	if c.PitchEstimateBoost == 0 {
		c.PitchEstimateBoost = 1.2
	}

	if c.AddCurrentToHistory == 0 {
		c.AddCurrentToHistory = 0.1
	}

	if c.MaxOctavesToResample == 0 {
		c.MaxOctavesToResample = 1.0
	}

	return c
}

func (c SpectrumConfig) toDomain() spectrum.Config {
	d := c.Defaulted()

	return spectrum.Config{
		MinHz:                     d.MinHz,
		Octaves:                   d.Octaves,
		NotesPerOctave:            d.NotesPerOctave,
		Exponent:                  d.Exponent,
		DivideByFreq:              d.DivideByFreq,
		MinFramesBetweenRecompute: d.MinFramesBetweenRecompute,
		FramesToLookbehind:        d.FramesToLookbehind,
		PitchEstimateBoost:        d.PitchEstimateBoost,
		AddCurrentToHistory:       d.AddCurrentToHistory,
		MaxOctavesToResample:      d.MaxOctavesToResample,
	}
}

// LocalPostTriggerConfig is the YAML-tagged mirror of
// trigger.LocalPostTriggerConfig.
type LocalPostTriggerConfig struct {
	Strength float64 `yaml:"strength"`
}

// ZeroCrossingTriggerConfig is the YAML-tagged mirror of
// trigger.ZeroCrossingTriggerConfig. It has no parameters.
type ZeroCrossingTriggerConfig struct{}

// NullTriggerConfig is the YAML-tagged mirror of trigger.NullTriggerConfig.
// It has no parameters.
type NullTriggerConfig struct{}

// Build constructs the corresponding trigger.Config, resolving nested
// post-triggers and applying CorrelationTriggerConfig's documented
// defaults (trigger_falloff, recalc_semitones) and legacy
// use_edge_trigger behavior.
func (c CorrelationTriggerConfig) Build() (trigger.Config, error) {
	falloff := c.TriggerFalloff
	if falloff == [2]float64{} {
		falloff = [2]float64{4.0, 1.0}
	}

	recalc := c.RecalcSemitones
	if recalc == 0 {
		recalc = 1.0
	}

	lagPrevention := c.LagPrevention
	if lagPrevention == 0 {
		lagPrevention = 0.25
	}

	post := c.Post
	if post == nil && c.UseEdgeTrigger {
		post = &TriggerUnion{ZeroCrossing: &ZeroCrossingTriggerConfig{}}
	}

	var postCfg trigger.Config

	if post != nil {
		built, err := post.Build()
		if err != nil {
			return nil, fmt.Errorf("config: building post trigger: %w", err)
		}

		postCfg = built
	}

	tc := trigger.CorrelationTriggerConfig{
		EdgeStrength:    c.EdgeStrength,
		TriggerDiameter: c.TriggerDiameter,
		TriggerFalloff:  falloff,
		RecalcSemitones: recalc,
		LagPrevention:   lagPrevention,
		Responsiveness:  c.Responsiveness,
		BufferFalloff:   c.BufferFalloff,
		Post:            postCfg,
	}

	if c.PitchInvariance != nil {
		sc := c.PitchInvariance.toDomain()
		tc.PitchInvariance = &sc
	}

	return tc, nil
}

// Build constructs a trigger.LocalPostTriggerConfig.
func (c LocalPostTriggerConfig) Build() (trigger.Config, error) {
	return trigger.LocalPostTriggerConfig{Strength: c.Strength}, nil
}

// Build constructs a trigger.ZeroCrossingTriggerConfig.
func (c ZeroCrossingTriggerConfig) Build() (trigger.Config, error) {
	return trigger.ZeroCrossingTriggerConfig{}, nil
}

// Build constructs a trigger.NullTriggerConfig.
func (c NullTriggerConfig) Build() (trigger.Config, error) {
	return trigger.NullTriggerConfig{}, nil
}
