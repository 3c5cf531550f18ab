// Package bch implements the systematic binary BCH(255,71) encoder that
// protects the COFDMTV header: 184 parity bits computed from a 71-bit
// message, correcting up to 23 errors. No decoder is needed — the
// transmitter only ever divides.
package bch

import "github.com/jeongseonghan/cofdmtv/internal/bitops"

const (
	// N is the BCH codeword length.
	N = 255
	// K is the BCH message length.
	K = 71
	// ParityBits is N-K, the number of parity bits produced.
	ParityBits = N - K
)

// minimalPolynomials are the 24 GF(2) minimal-polynomial factors whose
// product is the BCH(255,71) generator polynomial. Each value packs
// coefficients of x^0 (bit 0) up to x^8 (bit 8); the polynomial's degree is
// the position of its highest set bit.
var minimalPolynomials = [24]uint32{
	0b100011101, 0b101110111, 0b111110011, 0b101101001,
	0b110111101, 0b111100111, 0b100101011, 0b111010111,
	0b000010011, 0b101100101, 0b110001011, 0b101100011,
	0b100011011, 0b100111111, 0b110001101, 0b100101101,
	0b101011111, 0b111111001, 0b111000011, 0b100111001,
	0b110101001, 0b000011111, 0b110000111, 0b110110001,
}

// Encoder is a systematic BCH(255,71) encoder.
type Encoder struct {
	// generatorTaps holds the generator polynomial's coefficients for
	// x^(ParityBits-1) down to x^0, generatorTaps[0] being the highest.
	// The implicit x^ParityBits leading term is not stored.
	generatorTaps [ParityBits]byte
}

// New builds the BCH(255,71) encoder, computing its generator polynomial
// as the GF(2) product of the 24 minimal polynomials once at construction.
func New() *Encoder {
	gen := multiplyAll(minimalPolynomials[:])
	if len(gen) != ParityBits+1 {
		panic("bch: generator polynomial degree mismatch")
	}
	e := &Encoder{}
	// gen[ParityBits] is the monic leading coefficient (must be 1); the
	// remaining coefficients, highest degree first, are the division taps.
	for i := 0; i < ParityBits; i++ {
		e.generatorTaps[i] = gen[ParityBits-1-i]
	}
	return e
}

// multiplyAll computes the GF(2) polynomial product of polys, returning
// coefficients indexed by power of x (index 0 = x^0).
func multiplyAll(polys []uint32) []byte {
	acc := []byte{1} // the multiplicative identity, "1"
	for _, p := range polys {
		acc = multiply(acc, polyBits(p))
	}
	return acc
}

// polyBits unpacks a 9-bit-packed polynomial into coefficients (index 0 = x^0).
func polyBits(p uint32) []byte {
	degree := 0
	for b := p; b != 0; b >>= 1 {
		degree++
	}
	if degree == 0 {
		degree = 1
	}
	out := make([]byte, degree)
	for i := range out {
		out[i] = byte((p >> uint(i)) & 1)
	}
	return out
}

// multiply computes the GF(2) (XOR-convolution) product of two coefficient
// lists, each indexed by power of x.
func multiply(a, b []byte) []byte {
	out := make([]byte, len(a)+len(b)-1)
	for i, av := range a {
		if av == 0 {
			continue
		}
		for j, bv := range b {
			out[i+j] ^= av & bv
		}
	}
	return out
}

// Encode computes the 184 systematic parity bits for a 71-bit message.
// message is 9 bytes, MSB-first, with bit 71 (the one padding bit in the
// last byte) ignored. parity is written MSB-first into 23 bytes.
func (e *Encoder) Encode(message [9]byte, parity *[ParityBits / 8]byte) {
	var remainder [ParityBits]byte
	for i := 0; i < K; i++ {
		msgBit := byte(bitops.GetBEBit(message[:], i))
		feedback := remainder[0] ^ msgBit
		copy(remainder[:ParityBits-1], remainder[1:])
		remainder[ParityBits-1] = 0
		if feedback != 0 {
			for j := 0; j < ParityBits; j++ {
				remainder[j] ^= e.generatorTaps[j]
			}
		}
	}
	for i := 0; i < ParityBits; i++ {
		bitops.SetBEBit(parity[:], i, int(remainder[i]))
	}
}
