// Package wavfile writes the Encoder's int16 PCM output to a standard WAV
// file, for the demo binary's -out flag and the demo server's transmit
// endpoint.
package wavfile

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Writer incrementally appends int16 PCM to a 16-bit WAV file.
type Writer struct {
	f        *os.File
	enc      *wav.Encoder
	channels int
}

// Create opens path and writes a WAV header for 16-bit PCM at sampleRate
// with the given interleaved channel count.
func Create(path string, sampleRate, channels int) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wavfile: create %s: %w", path, err)
	}
	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	return &Writer{f: f, enc: enc, channels: channels}, nil
}

// Write appends interleaved int16 samples to the file.
func (w *Writer) Write(samples []int16) error {
	ints := make([]int, len(samples))
	for i, v := range samples {
		ints[i] = int(v)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: w.enc.SampleRate, NumChannels: w.channels},
		Data:           ints,
		SourceBitDepth: 16,
	}
	if err := w.enc.Write(buf); err != nil {
		return fmt.Errorf("wavfile: write: %w", err)
	}
	return nil
}

// Close finalizes the WAV header (frame count, data-chunk size) and closes
// the underlying file.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wavfile: close encoder: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("wavfile: close file: %w", err)
	}
	return nil
}
