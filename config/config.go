// Package config provides the YAML-tagged configuration tree consumed by
// channel.Binding: global and per-channel geometry, and the
// CorrelationTrigger / LocalPostTrigger / ZeroCrossingTrigger / NullTrigger
// parameter sets that back them.
package config

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTriggerConfig is returned when a per-channel trigger value is
// neither a full trigger config, an override map, nor absent.
var ErrInvalidTriggerConfig = errors.New("config: invalid per-channel trigger config")

// GlobalConfig is the top-level document: render geometry shared by every
// channel, plus the default trigger tree channels inherit from.
type GlobalConfig struct {
	FPS float64 `yaml:"fps"`

	TriggerMs          float64 `yaml:"trigger_ms"`
	RenderMs           float64 `yaml:"render_ms"`
	TriggerSubsampling int     `yaml:"trigger_subsampling"`
	RenderSubsampling  int     `yaml:"render_subsampling"`
	TriggerWidth       int     `yaml:"trigger_width"`
	RenderWidth        int     `yaml:"render_width"`
	Amplification      float64 `yaml:"amplification"`

	Trigger CorrelationTriggerConfig `yaml:"trigger"`

	Channels []ChannelConfig `yaml:"channels"`
}

// ChannelConfig is one channel's overrides on top of GlobalConfig.
type ChannelConfig struct {
	WavPath string `yaml:"wav_path"`

	// Trigger is a three-way union: absent (inherit Global.Trigger
	// verbatim), a full trigger config (used verbatim), or a partial
	// override map (merged field-by-field over Global.Trigger).
	Trigger ChannelTriggerConfig `yaml:"trigger"`

	TriggerWidth *int `yaml:"trigger_width"`
	RenderWidth  *int `yaml:"render_width"`

	AmplRatio float64 `yaml:"ampl_ratio"`
}

// LoadGlobalConfig decodes a GlobalConfig document from r.
func LoadGlobalConfig(r io.Reader) (*GlobalConfig, error) {
	var cfg GlobalConfig

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding global config: %w", err)
	}

	for i := range cfg.Channels {
		if cfg.Channels[i].AmplRatio == 0 {
			cfg.Channels[i].AmplRatio = 1.0
		}
	}

	return &cfg, nil
}
