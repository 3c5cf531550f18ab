// Package fft implements the length-N, unscaled, complex-to-complex
// transform every OFDM symbol is synthesized through. The sign convention:
// inverse=true uses sign +1 (the inverse transform used to go from the
// frequency-domain symbol to the time domain), inverse=false uses sign -1
// (the forward transform the PAPR reducer's restoration step needs). Neither
// direction is scaled; callers apply their own post-scale (1/sqrt(8N) for
// symbol synthesis).
//
// Power-of-two lengths use the iterative radix-2 Cooley-Tukey kernel
// directly. None of the five supported symbol lengths is a power of two
// (1280 = 2^8*5, 2560 = 2^9*5, 5120 = 2^10*5, 7056 = 2^4*3^2*7^2,
// 7680 = 2^9*3*5), so every symbol goes through Bluestein's algorithm, the
// fallback for any non-power-of-two length, itself built on top of the same
// radix-2 kernel (zero-padded to the next power of two) for the
// convolution step.
package fft

import (
	"math"
	"math/cmplx"
)

// Transform computes the length-len(x) DFT of x with direction sign +1
// (inverse=true) or -1 (inverse=false), unscaled. The input is not
// modified; the result is a freshly allocated slice of the same length.
func Transform(x []complex128, inverse bool) []complex128 {
	n := len(x)
	if n <= 1 {
		out := make([]complex128, n)
		copy(out, x)
		return out
	}
	sign := -1.0
	if inverse {
		sign = 1.0
	}
	if isPowerOfTwo(n) {
		out := make([]complex128, n)
		copy(out, x)
		radix2InPlace(out, sign)
		return out
	}
	return bluestein(x, sign)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// radix2InPlace runs the standard iterative bit-reversal-permutation +
// butterfly-stage Cooley-Tukey transform on x, in place, unscaled. len(x)
// must be a power of two.
func radix2InPlace(x []complex128, sign float64) {
	n := len(x)
	bitReverse(x)
	for size := 2; size <= n; size <<= 1 {
		halfSize := size >> 1
		wn := cmplx.Exp(complex(0, sign*2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1.0, 0)
			for j := 0; j < halfSize; j++ {
				u := x[start+j]
				v := w * x[start+j+halfSize]
				x[start+j] = u + v
				x[start+j+halfSize] = u - v
				w *= wn
			}
		}
	}
}

func bitReverse(x []complex128) {
	n := len(x)
	bits := 0
	for tmp := n; tmp > 1; tmp >>= 1 {
		bits++
	}
	for i := 0; i < n; i++ {
		j := reverseBits(i, bits)
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}
}

func reverseBits(x, bits int) int {
	result := 0
	for i := 0; i < bits; i++ {
		result = (result << 1) | (x & 1)
		x >>= 1
	}
	return result
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// bluestein computes the length-n DFT of x with direction sign via the
// chirp-z transform: a DFT of arbitrary length n is rewritten as a
// length-n pointwise product of chirped inputs with a circular convolution,
// and the convolution is computed as a power-of-two radix-2 transform.
func bluestein(x []complex128, sign float64) []complex128 {
	n := len(x)
	m := nextPowerOfTwo(2*n - 1)

	w := make([]complex128, n)
	for i := 0; i < n; i++ {
		// i*i mod 2n keeps the chirp angle's argument bounded regardless
		// of how large n grows, without changing exp(j*theta)'s value.
		sq := (i * i) % (2 * n)
		angle := sign * math.Pi * float64(sq) / float64(n)
		w[i] = cmplx.Exp(complex(0, angle))
	}

	a := make([]complex128, m)
	for i := 0; i < n; i++ {
		a[i] = x[i] * w[i]
	}
	b := make([]complex128, m)
	b[0] = cmplx.Conj(w[0])
	for i := 1; i < n; i++ {
		bv := cmplx.Conj(w[i])
		b[i] = bv
		b[m-i] = bv
	}

	radix2InPlace(a, -1)
	radix2InPlace(b, -1)
	c := make([]complex128, m)
	for i := range c {
		c[i] = a[i] * b[i]
	}
	radix2InPlace(c, 1)
	scale := complex(1/float64(m), 0)
	for i := range c {
		c[i] *= scale
	}

	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		out[k] = w[k] * c[k]
	}
	return out
}
