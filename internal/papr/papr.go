// Package papr implements the bounded iterative clip-and-restore PAPR
// reducer (C8): given a frequency-domain OFDM symbol whose only meaningful
// content lives on a caller-specified set of bins, it returns a
// time-domain buffer with a lower crest factor than a plain inverse
// transform would produce.
package papr

import (
	"math"
	"math/cmplx"

	"github.com/jeongseonghan/cofdmtv/internal/fft"
)

// Iterations is the fixed clip-and-restore iteration count.
const Iterations = 4

// Reduce takes freq (length N, nonzero only on dataBins) and returns the
// length-N time-domain buffer, scaled by postScale (the 1/sqrt(8N) C9
// applies to every symbol), with its crest factor reduced by Iterations
// rounds of clip-and-restore. exact selects how dataBins are restored after
// each clip: true projects them back to their exact pre-clip complex value
// (pilot carriers, which a receiver treats as a bit-exact differential
// reference), false rescales only their magnitude while keeping the phase
// the clip introduced (preamble/payload carriers, where phase noise is an
// accepted cost of peak reduction). freq itself is left holding the final
// restored spectrum.
func Reduce(freq []complex128, dataBins []int, exact bool, postScale float64) []complex128 {
	n := len(freq)
	original := make(map[int]complex128, len(dataBins))
	originalMag := make(map[int]float64, len(dataBins))
	for _, b := range dataBins {
		original[b] = freq[b]
		originalMag[b] = cmplx.Abs(freq[b])
	}

	work := reduceIterations(freq, dataBins, original, originalMag, exact, postScale, Iterations)
	copy(freq, work)

	raw := fft.Transform(work, true)
	out := make([]complex128, n)
	scale := complex(postScale, 0)
	for i, v := range raw {
		out[i] = v * scale
	}
	return out
}

// reduceIterations runs `iterations` rounds of inverse-transform, clip,
// forward-transform, and spectrum restoration, returning the resulting
// frequency-domain buffer. Each round's forward transform recomputes every
// bin from the clipped time-domain signal, not just dataBins, so restoring
// dataBins from that regrown spectrum - rather than discarding it and
// replaying the original values untouched - is what lets a later round
// differ from, and generally improve on, the first clip alone.
func reduceIterations(freq []complex128, dataBins []int, original map[int]complex128, originalMag map[int]float64, exact bool, postScale float64, iterations int) []complex128 {
	n := len(freq)
	work := make([]complex128, n)
	copy(work, freq)

	for iter := 0; iter < iterations; iter++ {
		raw := fft.Transform(work, true)
		clipped := make([]complex128, n)
		scale := complex(postScale, 0)
		for i, v := range raw {
			clipped[i] = v * scale
		}

		threshold := math.Sqrt2 * rms(clipped)
		for i, v := range clipped {
			mag := cmplx.Abs(v)
			if mag > threshold && mag > 0 {
				clipped[i] = v * complex(threshold/mag, 0)
			}
		}

		unscaled := make([]complex128, n)
		inv := complex(1/postScale, 0)
		for i, v := range clipped {
			unscaled[i] = v * inv
		}
		spectrum := fft.Transform(unscaled, false)
		normalize := complex(1/float64(n), 0)

		for i := range work {
			work[i] = 0
		}
		for _, b := range dataBins {
			if exact {
				work[b] = original[b]
				continue
			}
			regrown := spectrum[b] * normalize
			mag := cmplx.Abs(regrown)
			if mag == 0 {
				work[b] = original[b]
				continue
			}
			work[b] = regrown * complex(originalMag[b]/mag, 0)
		}
	}

	return work
}

func rms(td []complex128) float64 {
	var sumSq float64
	for _, v := range td {
		m := cmplx.Abs(v)
		sumSq += m * m
	}
	return math.Sqrt(sumSq / float64(len(td)))
}
