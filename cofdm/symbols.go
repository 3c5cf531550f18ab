package cofdm

import (
	"math"

	"github.com/jeongseonghan/cofdmtv/internal/fft"
	"github.com/jeongseonghan/cofdmtv/internal/mls"
	"github.com/jeongseonghan/cofdmtv/internal/papr"
	"github.com/jeongseonghan/cofdmtv/internal/tables"
)

// corSeqOff, preSeqOff and fancyOff are the logical-index origins for the
// correlation, preamble, and fancy-header carrier placements, taken
// verbatim from the reference encoder (encoder.hh: cor_seq_off = 1 -
// cor_seq_len, pre_seq_off = -pre_seq_len/2, fancy_off =
// -(8*9*3)/2) rather than invented: all three center their carrier span on
// DC.
const (
	corSeqLen = 127
	preSeqLen = 255
	corSeqOff = 1 - corSeqLen
	preSeqOff = -preSeqLen / 2
	fancyOff  = -(8 * 9 * 3) / 2
)

// synthesize runs the IFFT (and, when applyPAPR is true and the configured
// sample rate qualifies, the PAPR reducer) over the current e.freq, returning
// the resulting time-domain buffer scaled by the geometry's post-scale.
// exact selects how the PAPR reducer restores dataBins after each clip:
// true projects them back to their exact pre-clip complex value (pilot
// carriers, which a receiver treats as a bit-exact differential reference),
// false rescales only their magnitude while keeping the phase the clip
// introduced (preamble/payload carriers, where some phase noise is the
// accepted cost of peak reduction).
func (e *Encoder) synthesize(dataBins []int, applyPAPR, exact bool) []complex128 {
	if applyPAPR && e.g.lowRate {
		return papr.Reduce(e.freq, dataBins, exact, e.g.postScale)
	}
	raw := fft.Transform(e.freq, true)
	td := make([]complex128, len(raw))
	scale := complex(e.g.postScale, 0)
	for i, v := range raw {
		td[i] = v * scale
	}
	return td
}

// schmidlCoxSymbol builds the length-127 Schmidl-Cox correlation preamble:
// ±1 MLS values on every other logical bin, then differentially encoded
// against a rolling predecessor seeded at sqrt(2N/127). No PAPR reduction:
// the correlation symbol's spectrum must be exact for receiver timing sync.
func (e *Encoder) schmidlCoxSymbol() []complex128 {
	n := e.g.n
	for i := range e.freq {
		e.freq[i] = 0
	}
	idx := make([]int, corSeqLen)
	for i := 0; i < corSeqLen; i++ {
		k := bin(2*i+corSeqOff, e.carrierOffset, n)
		idx[i] = k
		e.freq[k] = complex(mls.NRZ(e.corMLS.Next()), 0)
	}
	prevVal := complex(math.Sqrt(2*float64(n)/float64(corSeqLen)), 0)
	for _, k := range idx {
		cur := e.freq[k] * prevVal
		e.freq[k] = cur
		prevVal = cur
	}
	return e.synthesize(nil, false, false)
}

// preambleSymbol builds the BCH/CRC-protected 255-bit header symbol on
// consecutive logical bins, differentially encoded against a rolling
// predecessor seeded at sqrt(N/255), then scrambled bin-by-bin with the
// preamble MLS sequence. Full PAPR reduction at low sample rates.
func (e *Encoder) preambleSymbol() []complex128 {
	n := e.g.n
	for i := range e.freq {
		e.freq[i] = 0
	}
	idx := make([]int, preSeqLen)
	for i := 0; i < preSeqLen; i++ {
		k := bin(i+preSeqOff, e.carrierOffset, n)
		idx[i] = k
		e.freq[k] = complex(float64(e.headerBits[i]), 0)
	}
	prevVal := complex(math.Sqrt(float64(n)/float64(preSeqLen)), 0)
	for _, k := range idx {
		cur := e.freq[k] * prevVal
		e.freq[k] = cur
		prevVal = cur
	}
	for _, k := range idx {
		e.freq[k] *= complex(mls.NRZ(e.preMLS.Next()), 0)
	}
	return e.synthesize(idx, true, false)
}

// pilotBlock fills the pay_car_cnt DC-centered (DC-skipping) carriers with
// ±1*sqrt(N/pay_car_cnt) from the pilot MLS, also priming prev[] as the
// differential reference for the symbol that follows.
func (e *Encoder) pilotBlock() []complex128 {
	n := e.g.n
	for i := range e.freq {
		e.freq[i] = 0
	}
	amp := math.Sqrt(float64(n) / float64(e.payCarCnt))
	dataBins := make([]int, e.payCarCnt)
	for i := 0; i < e.payCarCnt; i++ {
		k := payloadBin(i, e.payCarCnt, e.carrierOffset, n)
		v := complex(amp*mls.NRZ(e.pilotMLS.Next()), 0)
		e.freq[k] = v
		e.prev[i] = v
		dataBins[i] = k
	}
	return e.synthesize(dataBins, true, true)
}

// payloadSymbol differentially encodes one payload symbol's pay_car_cnt
// constellation points against prev[] (the preceding pilot or payload
// symbol), updating prev[] in place for the next call.
func (e *Encoder) payloadSymbol(symbolNumber int) []complex128 {
	n := e.g.n
	for i := range e.freq {
		e.freq[i] = 0
	}
	base := e.payCarCnt * symbolNumber
	dataBins := make([]int, e.payCarCnt)
	for i := 0; i < e.payCarCnt; i++ {
		v := e.prev[i] * e.cons[base+i]
		k := payloadBin(i, e.payCarCnt, e.carrierOffset, n)
		e.freq[k] = v
		e.prev[i] = v
		dataBins[i] = k
	}
	return e.synthesize(dataBins, true, false)
}

// fancySymbol builds row `row` of the optional 11-row call-sign "image"
// header: one carrier per glyph bit set in the base-37 bitmap font, with
// amplitude sqrt(N/active_carriers), where active_carriers is 1 plus the
// number of set bits (no carrier is placed for the "+1"). A
// first pass counts the set bits (to know the amplitude) before a second
// pass consumes the pilot MLS, so the MLS sequence advances only once per
// active carrier, in column order, regardless of which call-sign digits
// are blank.
func (e *Encoder) fancySymbol(row int) []complex128 {
	n := e.g.n
	for i := range e.freq {
		e.freq[i] = 0
	}
	digits := callSignDigits(e.callSign)

	type column struct{ glyph, bit int }
	var active []column
	for j := 0; j < maxCallSignChars; j++ {
		glyphRow := tables.Base37Bitmap[digits[j]+37*(10-row)]
		for i := 0; i < 8; i++ {
			if (glyphRow>>uint(7-i))&1 != 0 {
				active = append(active, column{j, i})
			}
		}
	}

	activeCarriers := 1 + len(active)
	amp := math.Sqrt(float64(n) / float64(activeCarriers))
	for _, c := range active {
		k := bin((8*c.glyph+c.bit)*3+fancyOff, e.carrierOffset, n)
		e.freq[k] = complex(amp*mls.NRZ(e.pilotMLS.Next()), 0)
	}
	return e.synthesize(nil, false, false)
}

// silenceSymbol returns an all-zero time-domain buffer, letting emitPCM's
// overlap-add guard drain the previous symbol's tail without adding any new
// energy.
func (e *Encoder) silenceSymbol() []complex128 {
	return make([]complex128, e.g.n)
}
