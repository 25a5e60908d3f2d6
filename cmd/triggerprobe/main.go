// Command triggerprobe loads a wave (a WAV file, or a synthesized tone)
// and a YAML trigger configuration, then prints the trigger index chosen
// for each of a requested number of frames, one line per channel.
//
// Usage:
//
//	triggerprobe -config corrscope.yaml -wav guitar.wav -frames 10
//	triggerprobe -tone 220 -frames 10
//
// This is a diagnostic surface for the trigger subsystem, not the
// oscilloscope renderer itself: it does not render or encode video.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/cwbudde/corrtrigger/channel"
	"github.com/cwbudde/corrtrigger/config"
	"github.com/cwbudde/corrtrigger/trigger"
	"github.com/cwbudde/corrtrigger/wave"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML global config document")
	wavPath := flag.String("wav", "", "path to a WAV file (overrides any wav_path in -config)")
	toneHz := flag.Float64("tone", 0, "synthesize a sine tone at this frequency instead of loading -wav")
	toneSecs := flag.Float64("tone-secs", 2.0, "duration of the synthesized tone, in seconds")
	frames := flag.Int("frames", 10, "number of frames to print per channel")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: triggerprobe [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the trigger index chosen for each frame of each configured channel.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*configPath, *wavPath, *toneHz, *toneSecs, *frames); err != nil {
		fmt.Fprintln(os.Stderr, "triggerprobe:", err)
		os.Exit(1)
	}
}

func run(configPath, wavPath string, toneHz, toneSecs float64, frames int) error {
	globalCfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	channels := globalCfg.Channels
	if len(channels) == 0 {
		channels = []config.ChannelConfig{{WavPath: wavPath, AmplRatio: 1}}
	}

	bindings := make([]*channel.Binding, len(channels))

	for i, ch := range channels {
		source, err := loadSource(ch, wavPath, toneHz, toneSecs, globalCfg.Amplification)
		if err != nil {
			return fmt.Errorf("channel %d: loading wave: %w", i, err)
		}

		b, err := channel.NewBinding(*globalCfg, ch, source)
		if err != nil {
			return fmt.Errorf("channel %d: building binding: %w", i, err)
		}

		bindings[i] = b
	}

	var wg sync.WaitGroup

	results := make([][]int, len(bindings))

	for i, b := range bindings {
		wg.Add(1)

		go func(i int, b *channel.Binding) {
			defer wg.Done()

			results[i] = probe(b, globalCfg.FPS, frames)
		}(i, b)
	}

	wg.Wait()

	for i, indices := range results {
		fmt.Printf("channel %d:", i)

		for _, idx := range indices {
			fmt.Printf(" %d", idx)
		}

		fmt.Println()
	}

	return nil
}

func probe(b *channel.Binding, fps float64, frames int) []int {
	realSampFrame := int(math.Round(b.Wave.SampleRate() / fps))

	indices := make([]int, 0, frames)
	index := 0

	for f := 0; f < frames; f++ {
		idx, err := b.Trigger.GetTrigger(index, &trigger.FrameCache{})
		if err != nil {
			indices = append(indices, -1)
			continue
		}

		indices = append(indices, idx)
		index += realSampFrame
	}

	return indices
}

func loadConfig(path string) (*config.GlobalConfig, error) {
	if path == "" {
		return defaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return config.LoadGlobalConfig(f)
}

func defaultConfig() *config.GlobalConfig {
	return &config.GlobalConfig{
		FPS:                60,
		TriggerMs:           50,
		RenderMs:            50,
		TriggerSubsampling:  1,
		RenderSubsampling:   1,
		TriggerWidth:        1,
		RenderWidth:         1,
		Amplification:       1,
		Trigger: config.CorrelationTriggerConfig{
			EdgeStrength:   1.0,
			Responsiveness: 0.5,
			BufferFalloff:  0.5,
		},
	}
}

func loadSource(ch config.ChannelConfig, wavPathFlag string, toneHz, toneSecs, amplification float64) (wave.Source, error) {
	if toneHz > 0 {
		return synthesizeTone(toneHz, toneSecs, amplification*ch.AmplRatio), nil
	}

	path := ch.WavPath
	if wavPathFlag != "" {
		path = wavPathFlag
	}

	return wave.LoadWavFile(path, amplification*ch.AmplRatio)
}

func synthesizeTone(hz, secs, amplitude float64) wave.Source {
	const sampleRate = 48000.0

	n := int(secs * sampleRate)
	samples := make([]float32, n)

	for i := range samples {
		samples[i] = float32(amplitude * math.Sin(2*math.Pi*hz*float64(i)/sampleRate))
	}

	return wave.NewMemSource(samples, sampleRate)
}
