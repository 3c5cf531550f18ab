package audiosink

import "github.com/gordonklaus/portaudio"

// DeviceInfo describes one PortAudio-visible audio device.
type DeviceInfo struct {
	Name              string
	MaxInputChannels  int
	MaxOutputChannels int
	DefaultSampleRate float64
	IsDefault         bool
}

// ListDevices returns every audio device PortAudio can see, for the demo
// binary's -list-devices flag.
func ListDevices() ([]DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	defaultOut, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return nil, err
	}

	result := make([]DeviceInfo, 0, len(devices))
	for _, d := range devices {
		result = append(result, DeviceInfo{
			Name:              d.Name,
			MaxInputChannels:  d.MaxInputChannels,
			MaxOutputChannels: d.MaxOutputChannels,
			DefaultSampleRate: d.DefaultSampleRate,
			IsDefault:         d.Name == defaultOut.Name,
		})
	}
	return result, nil
}
