// Package cofdm implements the COFDMTV physical-layer transmitter core: a
// single-threaded encoder that turns a fixed-size payload, call sign, and
// operation mode into a stream of 16-bit PCM samples. The produce path is
// not allocation-free: each symbol allocates its own carrier-index, FFT,
// and PAPR scratch buffers. The public surface is deliberately small: New, Configure,
// Produce, Rate — a constructor and three methods, Go's idiomatic stand-in
// for the template-specialized, virtual-dispatch Interface the original
// design used.
package cofdm

import (
	"fmt"

	"github.com/jeongseonghan/cofdmtv/internal/bch"
	"github.com/jeongseonghan/cofdmtv/internal/constellation"
	"github.com/jeongseonghan/cofdmtv/internal/mls"
	"github.com/jeongseonghan/cofdmtv/internal/modes"
	"github.com/jeongseonghan/cofdmtv/internal/polar"
	"github.com/jeongseonghan/cofdmtv/internal/scrambler"
)

// Transmitter is the Configure/Produce/Rate contract callers that want to
// mock or substitute the encoder in tests can depend on instead of the
// concrete *Encoder type.
type Transmitter interface {
	Configure(payload []byte, callSign string, operationMode, carrierFrequency int, fancyHeader bool) error
	Produce(buf []int16, channelSelect int) (bool, error)
	Rate() int
}

var _ Transmitter = (*Encoder)(nil)

// Encoder is one COFDMTV transmission's full state: the fixed geometry for
// its sample rate, the shared BCH encoder, the current transmission's
// payload-derived constellation buffer, and the frame-assembler state
// machine (count_down/symbol_number/fancy_line) that Produce advances one
// OFDM symbol at a time.
type Encoder struct {
	g      geometry
	bchEnc *bch.Encoder

	mode             int
	callSign         string
	meta             uint64
	headerBits       [255]int8
	carrierOffset    int
	fancyHeader      bool
	payCarCnt        int
	symbolCount      int
	modBits          int
	cons             []complex128

	freq []complex128
	prev []complex128
	guard []complex128

	countDown    int
	symbolNumber int
	fancyLine    int

	corMLS   *mls.MLS
	preMLS   *mls.MLS
	pilotMLS *mls.MLS
}

// New builds an Encoder for one of the five supported sample rates,
// allocating its frequency-domain and guard buffers up front; prev[] is
// allocated by the first Configure.
func New(sampleRate int) (*Encoder, error) {
	g, ok := lookupGeometry(sampleRate)
	if !ok {
		return nil, fmt.Errorf("cofdm: unsupported sample rate %d", sampleRate)
	}
	return &Encoder{
		g:      g,
		bchEnc: bch.New(),
		freq:   make([]complex128, g.n),
		guard:  make([]complex128, g.guardLen),
	}, nil
}

// Rate returns the sample rate this Encoder was constructed for.
func (e *Encoder) Rate() int {
	return e.g.sampleRate
}

// FrameLen returns extended_length, the number of PCM frames Produce writes
// per symbol (before the channel_select interleave factor). Callers size
// their audio_buffer as FrameLen() * channels.
func (e *Encoder) FrameLen() int {
	return e.g.extLen
}

// maxPayCarCnt is the largest pay_car_cnt across every operation mode (512,
// mode 10): prev[]'s fixed capacity so Configure never reallocates it.
const maxPayCarCnt = 512

// Configure prepares one transmission: it validates operationMode, whitens
// and polar-encodes payload (skipped for the silence-only mode 0), builds
// the BCH/CRC-protected header from callSign and operationMode, and resets
// the frame-assembler state machine including the zeroed guard interval. A
// second Configure before a previous transmission drains is permitted and
// discards the previous transmission's partial state.
func (e *Encoder) Configure(payload []byte, callSign string, operationMode, carrierFrequency int, fancyHeader bool) error {
	if !modes.Valid(operationMode) {
		return fmt.Errorf("cofdm: invalid operation mode %d", operationMode)
	}

	e.mode = operationMode
	e.callSign = callSign
	e.fancyHeader = fancyHeader
	e.meta = metaWord(callSign, operationMode)
	e.headerBits = buildHeaderBits(e.bchEnc, e.meta)
	e.carrierOffset = carrierOffsetFor(carrierFrequency, e.g.n, e.g.sampleRate)

	if modes.IsSilence(operationMode) {
		e.payCarCnt = 0
		e.symbolCount = 0
		e.modBits = 0
		e.cons = nil
	} else {
		p, _ := modes.Lookup(operationMode)
		if len(payload) != modes.PayloadBytes {
			return fmt.Errorf("cofdm: payload must be %d bytes, got %d", modes.PayloadBytes, len(payload))
		}
		whitened := make([]byte, modes.PayloadBytes)
		scrambler.Whiten(whitened, payload)
		code, err := polar.Encode(whitened, operationMode)
		if err != nil {
			return fmt.Errorf("cofdm: polar encode: %w", err)
		}
		e.payCarCnt = p.PayCarCnt
		e.symbolCount = p.SymbolCount
		e.modBits = p.ModBits
		e.cons = constellation.MapCodeBits(code, e.modBits)
	}

	if e.prev == nil {
		e.prev = make([]complex128, maxPayCarCnt)
	}
	for i := range e.prev {
		e.prev[i] = 0
	}
	for i := range e.guard {
		e.guard[i] = 0
	}

	e.countDown = 6
	if fancyHeader {
		e.countDown = 7
	}
	e.symbolNumber = 0
	e.fancyLine = 0
	e.corMLS = mls.New(mls.CorrelationPoly)
	e.preMLS = mls.New(mls.PreamblePoly)
	e.pilotMLS = mls.New(mls.PilotPoly)

	return nil
}

// Produce advances the frame assembler by one step, emitting one OFDM
// symbol's worth of PCM into buf (extended_length frames, channelsFor(
// channelSelect) channels each) and returning true, or returning false once
// the transmission is complete. If buf is too small to hold the next
// symbol, Produce returns false without advancing any state.
func (e *Encoder) Produce(buf []int16, channelSelect int) (bool, error) {
	needed := e.g.extLen * channelsFor(channelSelect)
	if len(buf) < needed {
		return false, nil
	}

	var td []complex128
	switch e.countDown {
	case 0:
		return false, nil
	case 7:
		td = e.fancySymbol(e.fancyLine)
		e.fancyLine++
		if e.fancyLine == 11 {
			e.countDown--
		}
	case 6:
		td = e.pilotBlock()
		e.countDown--
	case 5:
		td = e.schmidlCoxSymbol()
		e.countDown--
	case 4:
		td = e.preambleSymbol()
		e.countDown--
	case 3:
		td = e.pilotBlock()
		e.countDown--
	case 2:
		td = e.payloadSymbol(e.symbolNumber)
		e.symbolNumber++
		if e.symbolNumber >= e.symbolCount {
			e.countDown--
		}
	case 1:
		td = e.silenceSymbol()
		e.countDown--
	default:
		return false, fmt.Errorf("cofdm: invalid frame-assembler state %d", e.countDown)
	}

	e.emitPCM(buf, channelSelect, td)
	return true, nil
}
