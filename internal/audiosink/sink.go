// Package audiosink is the reference implementation of the host-platform
// audio I/O sink the cofdm core treats as an external collaborator: it
// plays the int16 PCM Encoder.Produce emits through the default PortAudio
// output device. Nothing in package cofdm imports this package — it is
// wired up only by the demo binary and the demo server.
package audiosink

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// framesPerBuffer is the PortAudio callback buffer size. It is independent
// of any OFDM symbol length: Write splits whatever it is given into
// framesPerBuffer-sized chunks.
const framesPerBuffer = 4096

// Init initializes the PortAudio library. Call once before any NewSink.
func Init() error {
	return portaudio.Initialize()
}

// Terminate releases PortAudio's resources. Call once at shutdown.
func Terminate() error {
	return portaudio.Terminate()
}

// Sink plays interleaved int16 PCM through the default output device.
type Sink struct {
	stream   *portaudio.Stream
	buf      []int16
	channels int
	mu       sync.Mutex
}

// NewSink opens and starts the default output stream at sampleRate with the
// given interleaved channel count (1 for mono produce() output, 2 for any
// of the stereo channel_select mappings).
func NewSink(sampleRate, channels int) (*Sink, error) {
	s := &Sink{
		buf:      make([]int16, framesPerBuffer*channels),
		channels: channels,
	}
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), framesPerBuffer, s.buf)
	if err != nil {
		return nil, fmt.Errorf("audiosink: open output stream: %w", err)
	}
	s.stream = stream
	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("audiosink: start output stream: %w", err)
	}
	return s, nil
}

// Write plays samples (interleaved per s.channels), blocking a buffer at a
// time until the device has consumed them. The final partial buffer is
// padded with silence rather than played short.
func (s *Sink) Write(samples []int16) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	frameSize := framesPerBuffer * s.channels
	for i := 0; i < len(samples); i += frameSize {
		end := i + frameSize
		if end > len(samples) {
			for j := range s.buf {
				s.buf[j] = 0
			}
			copy(s.buf, samples[i:])
		} else {
			copy(s.buf, samples[i:end])
		}
		if err := s.stream.Write(); err != nil {
			return fmt.Errorf("audiosink: write: %w", err)
		}
	}
	return nil
}

// Close stops and closes the output stream.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream == nil {
		return nil
	}
	if err := s.stream.Stop(); err != nil {
		return fmt.Errorf("audiosink: stop: %w", err)
	}
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("audiosink: close: %w", err)
	}
	s.stream = nil
	return nil
}
