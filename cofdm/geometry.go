package cofdm

import "math"

// geometry holds the per-sample-rate constants that would otherwise need a
// compile-time template specialization: the symbol length N, the guard
// interval, and the derived post-IFFT scale that keeps every symbol's
// time-domain RMS near a fixed value independent of N.
type geometry struct {
	sampleRate int
	n          int
	guardLen   int
	extLen     int
	postScale  float64
	lowRate    bool // true when PAPR reduction applies (sample_rate <= 16000)
}

// geometries is built once at package init from the sample-rate -> symbol
// geometry table, fixed bit-exactly since receivers depend on these
// N/guard_length pairs.
var geometries = buildGeometries()

func buildGeometries() map[int]geometry {
	rates := []int{8000, 16000, 32000, 44100, 48000}
	out := make(map[int]geometry, len(rates))
	for _, rate := range rates {
		n := (1280 * rate) / 8000
		guard := n / 8
		out[rate] = geometry{
			sampleRate: rate,
			n:          n,
			guardLen:   guard,
			extLen:     n + guard,
			postScale:  1 / math.Sqrt(8*float64(n)),
			lowRate:    rate <= 16000,
		}
	}
	return out
}

func lookupGeometry(sampleRate int) (geometry, bool) {
	g, ok := geometries[sampleRate]
	return g, ok
}

// bin maps a logical, possibly-negative carrier index to an FFT bin index
// in [0, n), using the DC-centered mapping
// bin(k) = (k + carrierOffset + n) mod n.
func bin(k, carrierOffset, n int) int {
	v := (k + carrierOffset) % n
	if v < 0 {
		v += n
	}
	return v
}

// carrierOffsetFor computes the integer DC bin offset for a requested
// carrier frequency: floor(carrierFrequency * n / sampleRate). The
// multiplication is done in int64 to keep headroom for the largest N
// (7680) at audio-band carrier frequencies.
func carrierOffsetFor(carrierFrequency, n, sampleRate int) int {
	return int(int64(carrierFrequency) * int64(n) / int64(sampleRate))
}

// payloadBin maps payload/pilot carrier index i in [0, payCarCnt) to an
// FFT bin, centered on DC but skipping the DC bin itself: i splits evenly
// around carrierOffset with the upper half shifted up by one slot so that
// no payload or pilot carrier ever lands on freq[carrierOffset].
func payloadBin(i, payCarCnt, carrierOffset, n int) int {
	rel := i - payCarCnt/2
	if rel >= 0 {
		rel++
	}
	return bin(rel, carrierOffset, n)
}
