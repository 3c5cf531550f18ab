// Package constellation implements the Gray-coded PSK mapper (C6): groups
// of 2 or 3 polar-coded bits become one unit-magnitude complex symbol,
// QPSK for mod_bits=2 and 8-PSK for mod_bits=3.
package constellation

import "math"

// invSqrt2 is 1/sqrt(2), the QPSK normalization.
const invSqrt2 = 0.70710678118654752440

// MapQPSK maps two bits to a unit-magnitude QPSK symbol:
// ((1-2*b0) + j*(1-2*b1)) / sqrt(2).
func MapQPSK(b0, b1 int) complex128 {
	re := float64(1-2*(b0&1)) * invSqrt2
	im := float64(1-2*(b1&1)) * invSqrt2
	return complex(re, im)
}

// gray2 maps the top two bits of an 8-PSK group to a quadrant index in
// Gray order: 00->0, 01->1, 11->2, 10->3.
func gray2(b0, b1 int) int {
	switch {
	case b0 == 0 && b1 == 0:
		return 0
	case b0 == 0 && b1 == 1:
		return 1
	case b0 == 1 && b1 == 1:
		return 2
	default: // b0==1, b1==0
		return 3
	}
}

// Map8PSK maps three bits to a unit-magnitude 8-PSK symbol. b0,b1 select
// one of four quadrant diagonals (pi/4, 3pi/4, 5pi/4, 7pi/4 at odd
// multiples of pi/4), and b2 rotates the point off that diagonal by +pi/8
// when clear or -pi/8 when set, splitting each diagonal into two
// neighboring constellation points pi/4 apart. The eight resulting angles
// are all the odd multiples of pi/8.
func Map8PSK(b0, b1, b2 int) complex128 {
	theta := (math.Pi/4)*float64(2*gray2(b0, b1)+1) + math.Pi/8
	if b2&1 != 0 {
		theta -= math.Pi / 4
	}
	s, c := math.Sincos(theta)
	return complex(c, s)
}

// Map maps one mod_bits-wide group of bits (each entry 0 or 1, MSB to LSB
// b0,b1[,b2]) to a complex constellation symbol. modBits must be 2 or 3.
func Map(bits []int, modBits int) complex128 {
	switch modBits {
	case 2:
		return MapQPSK(bits[0], bits[1])
	case 3:
		return Map8PSK(bits[0], bits[1], bits[2])
	default:
		panic("constellation: modBits must be 2 or 3")
	}
}

// MapCodeBits maps a full ±1 code-bit buffer (as produced by the polar
// encoder: +1 = bit 0, -1 = bit 1) into cons_cnt = len(code)/modBits
// complex constellation symbols.
func MapCodeBits(code []int8, modBits int) []complex128 {
	n := len(code) / modBits
	out := make([]complex128, n)
	group := make([]int, modBits)
	for i := 0; i < n; i++ {
		for k := 0; k < modBits; k++ {
			group[k] = bitOf(code[i*modBits+k])
		}
		out[i] = Map(group, modBits)
	}
	return out
}

// bitOf converts a ±1 code sample back to a 0/1 bit: +1 -> 0, -1 -> 1.
func bitOf(v int8) int {
	if v < 0 {
		return 1
	}
	return 0
}
