// Package polar implements the rate-matched systematic polar encoder (C5):
// payload + CRC-32 are placed at the polar code's information positions,
// the code is mapped forward through Arikan's systematic transform, and the
// result is shortened down to the mode's transmitted bit count.
package polar

import (
	"fmt"

	"github.com/jeongseonghan/cofdmtv/internal/bitops"
	"github.com/jeongseonghan/cofdmtv/internal/crc"
	"github.com/jeongseonghan/cofdmtv/internal/modes"
)

// Encode rate-matches one payload into cons_bits ±1-valued code bits for
// the given operation mode. payload must be modes.PayloadBytes bytes.
func Encode(payload []byte, mode int) ([]int8, error) {
	if len(payload) != modes.PayloadBytes {
		return nil, fmt.Errorf("polar: payload must be %d bytes, got %d", modes.PayloadBytes, len(payload))
	}
	p, ok := modes.Lookup(mode)
	if !ok {
		return nil, fmt.Errorf("polar: unknown operation mode %d", mode)
	}

	mesg := make([]int8, p.MesgBits)
	for i := 0; i < modes.DataBits; i++ {
		mesg[i] = nrz(bitops.GetLEBit(payload, i))
	}

	payloadCRC := crc.NewPayload32()
	for _, b := range payload {
		payloadCRC.UpdateByte(b)
	}
	sum := payloadCRC.Sum()
	for i := 0; i < 32; i++ {
		mesg[modes.DataBits+i] = nrz(int((sum >> uint(i)) & 1))
	}
	for i := modes.CRCBits; i < p.MesgBits; i++ {
		mesg[i] = 1
	}

	frozen := p.FrozenBits()
	code := systematicEncode(mesg, frozen)
	return shorten(code, frozen, modes.CRCBits, p.ConsBits), nil
}

func nrz(bit int) int8 {
	if bit != 0 {
		return -1
	}
	return 1
}

func isFrozen(frozen *[tables_codeWords]uint32, i int) bool {
	return (frozen[i/32]>>uint(i%32))&1 != 0
}

// tables_codeWords is the frozen bitmap's word count (K/32), named locally
// to avoid importing internal/tables just for its constant.
const tables_codeWords = 65536 / 32

// systematicEncode places mesg's values into the code's non-frozen
// positions (in index order) with frozen positions fixed at +1 ("0" in the
// NRZ convention), then applies Arikan's systematic construction: transform,
// force frozen outputs back to +1, transform again. Because the polar
// butterfly is its own GF(2) inverse, the result's non-frozen positions
// equal mesg exactly.
func systematicEncode(mesg []int8, frozen *[tables_codeWords]uint32) []int8 {
	const K = 65536
	x := make([]int8, K)
	mi := 0
	for i := 0; i < K; i++ {
		if isFrozen(frozen, i) {
			x[i] = 1
		} else {
			x[i] = mesg[mi]
			mi++
		}
	}

	transform(x)
	for i := 0; i < K; i++ {
		if isFrozen(frozen, i) {
			x[i] = 1
		}
	}
	transform(x)
	return x
}

// transform is the standard iterative in-place polar butterfly: for each
// stage size 2m, XOR (multiply, in the ±1 domain) the first half of every
// block into itself from its paired second half.
func transform(x []int8) {
	n := len(x)
	for m := 1; m < n; m <<= 1 {
		for i := 0; i < n; i += 2 * m {
			for j := i; j < i+m; j++ {
				x[j] = prod(x[j], x[j+m])
			}
		}
	}
}

func prod(a, b int8) int8 {
	return a * b
}

// shorten compacts code from K=65536 bits down to consBits, keeping a
// position if it is frozen, or if it is among the first crcBits non-frozen
// positions encountered in index order.
func shorten(code []int8, frozen *[tables_codeWords]uint32, crcBits, consBits int) []int8 {
	out := make([]int8, 0, consBits)
	nonFrozenSeen := 0
	for i := 0; i < len(code); i++ {
		keep := false
		if isFrozen(frozen, i) {
			keep = true
		} else {
			keep = nonFrozenSeen < crcBits
			nonFrozenSeen++
		}
		if keep {
			out = append(out, code[i])
		}
	}
	if len(out) != consBits {
		panic(fmt.Sprintf("polar: shortened length %d != expected %d", len(out), consBits))
	}
	return out
}
