// Package channel derives per-channel window/stride geometry from a global
// config and instantiates that channel's trigger tree against a wave
// source, mirroring corrscope's Channel/ChannelConfig split.
package channel

import (
	"fmt"
	"math"

	"github.com/cwbudde/corrtrigger/config"
	"github.com/cwbudde/corrtrigger/trigger"
	"github.com/cwbudde/corrtrigger/wave"
)

// Binding is one channel's derived geometry plus its instantiated primary
// trigger, ready to be driven frame by frame.
type Binding struct {
	Wave wave.Source

	// TriggerStride/RenderStride are source-sample spacings; TriggerSamp/
	// RenderSamp are the corresponding strided window lengths.
	TriggerStride int
	RenderStride  int
	TriggerSamp   int
	RenderSamp    int

	Trigger trigger.Trigger
}

// NewBinding derives tsamp/stride geometry for one channel from global and
// chCfg, resolves chCfg's trigger field against global.Trigger, and builds
// the resulting trigger.Config against source.
func NewBinding(global config.GlobalConfig, chCfg config.ChannelConfig, source wave.Source) (*Binding, error) {
	triggerWidth := global.TriggerWidth
	if chCfg.TriggerWidth != nil {
		triggerWidth = *chCfg.TriggerWidth
	}

	renderWidth := global.RenderWidth
	if chCfg.RenderWidth != nil {
		renderWidth = *chCfg.RenderWidth
	}

	triggerStride := global.TriggerSubsampling * triggerWidth
	renderStride := global.RenderSubsampling * renderWidth

	smpS := source.SampleRate()
	triggerSamp := calcNsamp(global.TriggerMs, smpS, global.TriggerSubsampling)
	renderSamp := calcNsamp(global.RenderMs, smpS, global.RenderSubsampling)

	triggerCfg, err := chCfg.Trigger.Resolve(global.Trigger)
	if err != nil {
		return nil, fmt.Errorf("channel: resolving trigger config: %w", err)
	}

	built, err := triggerCfg.Build(source, triggerSamp, triggerStride, global.FPS)
	if err != nil {
		return nil, fmt.Errorf("channel: building trigger: %w", err)
	}

	return &Binding{
		Wave:          source,
		TriggerStride: triggerStride,
		RenderStride:  renderStride,
		TriggerSamp:   triggerSamp,
		RenderSamp:    renderSamp,
		Trigger:       built,
	}, nil
}

// calcNsamp rounds (widthMs/1000 * smpS / sub) to the nearest integer,
// matching corrscope's Channel.calculate_nsamp.
func calcNsamp(widthMs, smpS float64, sub int) int {
	widthS := widthMs / 1000
	return int(math.Round(widthS * smpS / float64(sub)))
}
