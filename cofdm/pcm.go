package cofdm

import "math"

// quantize converts a real-valued sample to int16 PCM:
// clamp(round(32767*v), -32768, 32767).
func quantize(v float64) int16 {
	scaled := math.Round(32767 * v)
	if scaled > 32767 {
		scaled = 32767
	}
	if scaled < -32768 {
		scaled = -32768
	}
	return int16(scaled)
}

// channelsFor returns the number of interleaved int16 channels channelSelect
// produces: 2 for the three stereo mappings (1, 2, 4), 1 (mono) otherwise.
func channelsFor(channelSelect int) int {
	switch channelSelect {
	case 1, 2, 4:
		return 2
	default:
		return 1
	}
}

// writeSample writes one complex sample at frame index idx into buf per the
// channel_select mapping: 1 = real on left, 0 on right; 2 = real on right, 0
// on left; 4 = real on left, imag on right (analytic output); anything else
// = mono, real only.
func writeSample(buf []int16, channelSelect, idx int, v complex128) {
	base := idx * channelsFor(channelSelect)
	switch channelSelect {
	case 1:
		buf[base] = quantize(real(v))
		buf[base+1] = 0
	case 2:
		buf[base] = 0
		buf[base+1] = quantize(real(v))
	case 4:
		buf[base] = quantize(real(v))
		buf[base+1] = quantize(imag(v))
	default:
		buf[base] = quantize(real(v))
	}
}

// lerp linearly interpolates between a and b at t in [0,1].
func lerp(a, b complex128, t float64) complex128 {
	return a + complex(t, 0)*(b-a)
}

// emitPCM writes one OFDM symbol's worth of extended_length frames: a
// half-cosine overlap-add guard interval blending the previous symbol's
// saved leading guard_length samples (its cyclic continuation past its
// body) with the cyclic prefix of td, followed by td's body.
// guard[] is updated to td's leading guard_length samples for the next call.
func (e *Encoder) emitPCM(buf []int16, channelSelect int, td []complex128) {
	n := e.g.n
	guardLen := e.g.guardLen

	for i := 0; i < guardLen; i++ {
		weight := 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(guardLen-1)))
		v := lerp(e.guard[i], td[n-guardLen+i], weight)
		writeSample(buf, channelSelect, i, v)
	}
	for i := 0; i < guardLen; i++ {
		e.guard[i] = td[i]
	}
	for i := 0; i < n; i++ {
		writeSample(buf, channelSelect, guardLen+i, td[i])
	}
}
