package config

import (
	"strings"
	"testing"

	"github.com/cwbudde/corrtrigger/trigger"
)

func TestLoadGlobalConfigDefaultsAmplRatio(t *testing.T) {
	doc := `
fps: 60
trigger_ms: 50
render_ms: 50
trigger_subsampling: 1
render_subsampling: 1
trigger_width: 1
render_width: 1
amplification: 1
trigger:
  edge_strength: 1.0
  responsiveness: 0.5
channels:
  - wav_path: a.wav
  - wav_path: b.wav
    ampl_ratio: 2.0
`

	cfg, err := LoadGlobalConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}

	if len(cfg.Channels) != 2 {
		t.Fatalf("len(Channels)=%d, want 2", len(cfg.Channels))
	}

	if cfg.Channels[0].AmplRatio != 1.0 {
		t.Fatalf("Channels[0].AmplRatio=%v, want 1.0 default", cfg.Channels[0].AmplRatio)
	}

	if cfg.Channels[1].AmplRatio != 2.0 {
		t.Fatalf("Channels[1].AmplRatio=%v, want 2.0 (explicit)", cfg.Channels[1].AmplRatio)
	}
}

// TestChannelMergeOverride is scenario S6 from the spec: a channel-level
// override map must change only the overridden fields, leaving the rest
// inherited from the global trigger config.
func TestChannelMergeOverride(t *testing.T) {
	doc := `
fps: 60
trigger_ms: 50
render_ms: 50
trigger_subsampling: 1
render_subsampling: 1
trigger_width: 1
render_width: 1
amplification: 1
trigger:
  edge_strength: 1.0
  responsiveness: 0.5
channels:
  - wav_path: a.wav
    trigger:
      responsiveness: 0.2
`

	cfg, err := LoadGlobalConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}

	resolved, err := cfg.Channels[0].Trigger.Resolve(cfg.Trigger)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	corrCfg, ok := resolved.(trigger.CorrelationTriggerConfig)
	if !ok {
		t.Fatalf("resolved config has type %T, want trigger.CorrelationTriggerConfig", resolved)
	}

	if corrCfg.EdgeStrength != 1.0 {
		t.Fatalf("EdgeStrength=%v, want inherited 1.0", corrCfg.EdgeStrength)
	}

	if corrCfg.Responsiveness != 0.2 {
		t.Fatalf("Responsiveness=%v, want overridden 0.2", corrCfg.Responsiveness)
	}
}
