package wave

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
)

// LoadWavFile decodes path entirely into memory and returns a mono Source.
// Multi-channel files are downmixed by averaging channels. amplification
// scales every sample after normalizing to [-1, 1].
func LoadWavFile(path string, amplification float64) (*MemSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wave: open %s: %w", path, err)
	}
	defer f.Close()

	return DecodeWav(f, amplification)
}

// DecodeWav decodes a WAV stream entirely into memory and returns a mono
// Source. The reference implementation never streams audio; this matches
// that behavior on purpose.
func DecodeWav(r io.Reader, amplification float64) (*MemSource, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("wave: not a valid WAV file")
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wave: decode PCM: %w", err)
	}

	numChans := buf.Format.NumChannels
	if numChans <= 0 {
		numChans = 1
	}

	peak := float32(int(1) << uint(buf.SourceBitDepth-1))
	if buf.SourceBitDepth <= 0 {
		peak = float32(1 << 15)
	}

	numFrames := len(buf.Data) / numChans
	samples := make([]float32, numFrames)

	for frame := 0; frame < numFrames; frame++ {
		var sum float32
		for ch := 0; ch < numChans; ch++ {
			sum += float32(buf.Data[frame*numChans+ch])
		}

		samples[frame] = (sum / float32(numChans) / peak) * float32(amplification)
	}

	return NewMemSource(samples, float64(buf.Format.SampleRate)), nil
}
